package participantservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omerbhr129/meety-sub000/pkg/logger"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/internal/participants/7", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"name":"Dana","email":"dana@example.com"}`))
	})
	mux.HandleFunc("/internal/participants/8", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	mux.HandleFunc("/internal/participants/9", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetParticipant(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, time.Second, logger.NewNop())

	t.Run("found", func(t *testing.T) {
		p, err := client.GetParticipant(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, &Participant{ID: 7, Name: "Dana", Email: "dana@example.com"}, p)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := client.GetParticipant(context.Background(), 100)
		assert.ErrorIs(t, err, ErrParticipantNotFound)
	})

	t.Run("unexpected status", func(t *testing.T) {
		_, err := client.GetParticipant(context.Background(), 8)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := client.GetParticipant(context.Background(), 9)
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("unreachable", func(t *testing.T) {
		down := NewClient("http://127.0.0.1:1", 200*time.Millisecond, logger.NewNop())
		_, err := down.GetParticipant(context.Background(), 7)
		assert.ErrorIs(t, err, ErrInternal)
	})
}
