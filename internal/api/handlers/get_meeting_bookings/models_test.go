package get_meeting_bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest(5, 10, "2026-10-01", "2026-10-31", "pending", "true")
	require.NoError(t, err)

	assert.Equal(t, int64(5), req.MeetingID)
	assert.Equal(t, int64(10), req.UserID)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), *req.StartDate)
	assert.Equal(t, time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC), *req.EndDate)
	assert.Equal(t, "pending", *req.Status)
	assert.True(t, req.IncludeCancelled)
}

func TestToServiceRequest_Optional(t *testing.T) {
	req, err := ToServiceRequest(5, 10, "", "", "", "")
	require.NoError(t, err)

	assert.Nil(t, req.StartDate)
	assert.Nil(t, req.EndDate)
	assert.Nil(t, req.Status)
	assert.False(t, req.IncludeCancelled)
}

func TestToServiceRequest_Invalid(t *testing.T) {
	_, err := ToServiceRequest(5, 10, "yesterday", "", "", "")
	assert.Error(t, err)

	_, err = ToServiceRequest(5, 10, "", "2026-13-01", "", "")
	assert.Error(t, err)

	_, err = ToServiceRequest(5, 10, "", "", "", "maybe")
	assert.Error(t, err)
}
