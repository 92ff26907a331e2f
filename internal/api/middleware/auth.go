package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/omerbhr129/meety-sub000/internal/api/handlers"
)

// UserIDHeader заголовок, в котором шлюз передает ID аутентифицированного пользователя
const UserIDHeader = "X-User-ID"

const msgUnauthorized = "отсутствует или некорректен заголовок X-User-ID"

type contextKey string

const userIDKey contextKey = "userID"

// Auth требует заголовок X-User-ID и кладет ID пользователя в контекст.
// Выпуск и проверка токенов происходят до сервиса.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(UserIDHeader), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID возвращает контекст с ID пользователя
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID извлекает ID пользователя, положенный Auth
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
