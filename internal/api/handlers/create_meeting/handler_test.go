package create_meeting

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omerbhr129/meety-sub000/internal/api/middleware"
	"github.com/omerbhr129/meety-sub000/internal/service/meetings"
	"github.com/omerbhr129/meety-sub000/internal/service/meetings/models"
	"github.com/omerbhr129/meety-sub000/pkg/logger"
)

const validBody = `{"title":"Созвон","durationMinutes":30,"availability":{"friday":{"enabled":true,"windows":[{"start":"14:00","end":"16:00"}]}}}`

type fakeService struct {
	gotReq *models.CreateMeetingRequest
	err    error
}

func (s *fakeService) Create(_ context.Context, req *models.CreateMeetingRequest) (*models.MeetingResponse, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.MeetingResponse{ID: 7, HostID: req.UserID, Title: req.Title}, nil
}

func serve(svc *fakeService, userID int64, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/meetings", strings.NewReader(body))
	if userID != 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, 10, validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, svc.gotReq)
	assert.Equal(t, int64(10), svc.gotReq.UserID)
	assert.Equal(t, "Созвон", svc.gotReq.Title)
	require.NotNil(t, svc.gotReq.DurationMinutes)
	assert.Equal(t, 30, *svc.gotReq.DurationMinutes)
	assert.True(t, svc.gotReq.Availability[time.Friday].IsBookable())
	assert.Contains(t, rec.Body.String(), `"id":7`)
}

func TestHandler_RequestErrors(t *testing.T) {
	tests := []struct {
		name   string
		userID int64
		body   string
		want   int
	}{
		{name: "missing user", userID: 0, body: validBody, want: http.StatusUnauthorized},
		{name: "empty body", userID: 10, body: "", want: http.StatusBadRequest},
		{name: "malformed json", userID: 10, body: `{"title":`, want: http.StatusBadRequest},
		{name: "unknown field", userID: 10, body: `{"title":"a","hostId":3}`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			rec := serve(svc, tt.userID, tt.body)

			assert.Equal(t, tt.want, rec.Code)
			assert.Nil(t, svc.gotReq)
		})
	}
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: meetings.ErrInvalidInput, want: http.StatusBadRequest},
		{err: meetings.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, 10, validBody)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
