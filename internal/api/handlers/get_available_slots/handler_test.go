package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omerbhr129/meety-sub000/internal/domain"
	getAvailableSlots "github.com/omerbhr129/meety-sub000/internal/usecase/get_available_slots"
	"github.com/omerbhr129/meety-sub000/pkg/logger"
)

type fakeUseCase struct {
	err error
}

func (u *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	if u.err != nil {
		return nil, u.err
	}
	return &getAvailableSlots.Response{
		MeetingID: req.MeetingID,
		Date:      req.Date,
		Slots: []domain.AvailableSlot{
			{StartTime: 9 * 60, DurationMinutes: 30},
			{StartTime: 9*60 + 30, DurationMinutes: 30},
		},
	}, nil
}

func serve(uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = mux.SetURLVars(req, map[string]string{"meetingId": "5"})
	rec := httptest.NewRecorder()

	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandler_OK(t *testing.T) {
	rec := serve(&fakeUseCase{}, "/api/v1/meetings/5/available-slots?date=2026-10-26")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-10-26", resp.Date)
	assert.Equal(t, []AvailableSlot{
		{StartTime: "09:00", EndTime: "09:30", DurationMinutes: 30},
		{StartTime: "09:30", EndTime: "10:00", DurationMinutes: 30},
	}, resp.Slots)
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, "/api/v1/meetings/5/available-slots").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, "/api/v1/meetings/5/available-slots?date=tomorrow").Code)
	assert.Equal(t, http.StatusNotFound,
		serve(&fakeUseCase{err: getAvailableSlots.ErrMeetingNotFound}, "/api/v1/meetings/5/available-slots?date=2026-10-26").Code)
	assert.Equal(t, http.StatusInternalServerError,
		serve(&fakeUseCase{err: getAvailableSlots.ErrInternal}, "/api/v1/meetings/5/available-slots?date=2026-10-26").Code)
}
