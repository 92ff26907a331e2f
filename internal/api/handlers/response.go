// Package handlers общие помощники HTTP слоя: разбор тела запроса и JSON ответы.
// Каждый эндпоинт живет в своем подпакете.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/omerbhr129/meety-sub000/internal/domain"
)

const (
	// maxBodyBytes ограничение размера тела запроса
	maxBodyBytes = 1 << 20

	msgInternalError = "внутренняя ошибка сервера"
)

var (
	// ErrEmptyBody возвращается, когда тело запроса отсутствует
	ErrEmptyBody = errors.New("request body is empty")

	// ErrInvalidPathParam возвращается, когда параметр пути не является положительным числом
	ErrInvalidPathParam = errors.New("invalid path parameter")
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// DecodeJSON разбирает JSON тело запроса. Неизвестные поля запрещены.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrEmptyBody
	}

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	return decoder.Decode(dst)
}

// PathID извлекает числовой ID из параметра пути
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidPathParam
	}
	return id, nil
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload == nil {
		return
	}

	_ = json.NewEncoder(w).Encode(payload)
}

// RespondNoContent отправляет пустой ответ 204
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// RespondError отправляет JSON ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict 409
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondInternalError 500, детали ошибки клиенту не отдаются
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
