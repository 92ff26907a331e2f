package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Title string `json:"title"`
	}

	t.Run("valid", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Intro"}`))
		var p payload
		require.NoError(t, DecodeJSON(r, &p))
		assert.Equal(t, "Intro", p.Title)
	})

	t.Run("unknown field", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Intro","extra":1}`))
		var p payload
		assert.Error(t, DecodeJSON(r, &p))
	})

	t.Run("empty body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
		var p payload
		assert.ErrorIs(t, DecodeJSON(r, &p), ErrEmptyBody)
	})
}

func TestPathID(t *testing.T) {
	tests := []struct {
		value   string
		want    int64
		wantErr bool
	}{
		{value: "42", want: 42},
		{value: "0", wantErr: true},
		{value: "-1", wantErr: true},
		{value: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			r := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"meetingId": tt.value})

			got, err := PathID(r, "meetingId")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPathParam)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondConflict(rec, "занято")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrorResponse{Code: http.StatusConflict, Message: "занято"}, body)
}

func TestRespondInternalError_HidesDetails(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondInternalError(rec)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInternalError)
}
