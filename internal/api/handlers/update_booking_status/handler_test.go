package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/omerbhr129/meety-sub000/internal/api/middleware"
	"github.com/omerbhr129/meety-sub000/internal/service/bookings"
	"github.com/omerbhr129/meety-sub000/internal/service/bookings/models"
	"github.com/omerbhr129/meety-sub000/pkg/logger"
)

type fakeService struct {
	gotID  int64
	gotReq *models.UpdateStatusRequest
	err    error
}

func (s *fakeService) UpdateStatus(_ context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.gotID = id
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id, Status: req.Status}, nil
}

func serve(svc *fakeService, userID int64, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/3/status", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": "3"})
	if userID != 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()

	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandler_OK(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, 10, `{"status":"missed"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), svc.gotID)
	assert.Equal(t, &models.UpdateStatusRequest{UserID: 10, Status: "missed"}, svc.gotReq)
}

func TestHandler_MissingUser(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, 0, `{"status":"missed"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, svc.gotReq)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{err: bookings.ErrAccessDenied, want: http.StatusForbidden},
		{err: bookings.ErrInvalidStatus, want: http.StatusBadRequest},
		{err: bookings.ErrInvalidTransition, want: http.StatusBadRequest},
		{err: bookings.ErrStatusConflict, want: http.StatusConflict},
		{err: bookings.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, 10, `{"status":"completed"}`)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
