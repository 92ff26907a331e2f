package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omerbhr129/meety-sub000/pkg/types"
)

func window(t *testing.T, start, end string) TimeWindow {
	t.Helper()
	s, err := types.NewTimeStringFromString(start)
	require.NoError(t, err)
	e, err := types.NewTimeStringFromString(end)
	require.NoError(t, err)
	return TimeWindow{Start: s, End: e}
}

func TestTimeWindow_Validate(t *testing.T) {
	assert.NoError(t, window(t, "09:00", "17:00").Validate())
	assert.NoError(t, window(t, "22:00", "24:00").Validate())
	assert.ErrorIs(t, window(t, "10:00", "10:00").Validate(), ErrInvalidWindow)
	assert.ErrorIs(t, window(t, "12:00", "09:00").Validate(), ErrInvalidWindow)
	assert.ErrorIs(t, TimeWindow{Start: -5, End: 60}.Validate(), ErrInvalidWindow)
}

func TestTimeWindow_Overlaps(t *testing.T) {
	morning := window(t, "09:00", "12:00")

	assert.True(t, morning.Overlaps(window(t, "11:00", "13:00")))
	assert.False(t, morning.Overlaps(window(t, "12:00", "13:00")), "touching windows do not overlap")
	assert.False(t, morning.Overlaps(window(t, "07:00", "09:00")))
}

func TestWeekdayAvailability_Validate(t *testing.T) {
	t.Run("overlapping windows rejected", func(t *testing.T) {
		day := WeekdayAvailability{
			Enabled: true,
			Windows: []TimeWindow{window(t, "13:00", "15:00"), window(t, "09:00", "13:30")},
		}
		assert.ErrorIs(t, day.Validate(), ErrOverlappingWindows)
	})

	t.Run("adjacent windows accepted", func(t *testing.T) {
		day := WeekdayAvailability{
			Enabled: true,
			Windows: []TimeWindow{window(t, "09:00", "12:00"), window(t, "12:00", "15:00")},
		}
		assert.NoError(t, day.Validate())
	})

	t.Run("disabled day ignores stale windows", func(t *testing.T) {
		day := WeekdayAvailability{
			Enabled: false,
			Windows: []TimeWindow{window(t, "12:00", "09:00")},
		}
		assert.NoError(t, day.Validate())
		assert.False(t, day.IsBookable())
	})
}

func TestWeeklyAvailability_ValidateNamesWeekday(t *testing.T) {
	var week WeeklyAvailability
	week[time.Wednesday] = WeekdayAvailability{
		Enabled: true,
		Windows: []TimeWindow{window(t, "10:00", "09:00")},
	}

	err := week.Validate()

	assert.ErrorIs(t, err, ErrInvalidWindow)
	assert.Contains(t, err.Error(), "wednesday")
}

func TestWeeklyAvailability_JSON(t *testing.T) {
	var week WeeklyAvailability
	week[time.Monday] = WeekdayAvailability{Enabled: true, Windows: []TimeWindow{window(t, "09:00", "10:00")}}

	data, err := json.Marshal(week)
	require.NoError(t, err)

	var decoded WeeklyAvailability
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, week[time.Monday], decoded[time.Monday])
	assert.False(t, decoded[time.Sunday].Enabled)

	err = json.Unmarshal([]byte(`{"funday":{"enabled":true,"windows":[]}}`), &decoded)
	assert.ErrorIs(t, err, ErrUnknownWeekday)
}

func TestWeeklyAvailability_ForDate(t *testing.T) {
	var week WeeklyAvailability
	week[time.Monday] = WeekdayAvailability{Enabled: true, Windows: []TimeWindow{window(t, "09:00", "10:00")}}

	monday := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

	assert.True(t, week.ForDate(monday).IsBookable())
	assert.False(t, week.ForDate(monday.AddDate(0, 0, 1)).IsBookable())
	assert.True(t, week.HasBookableDays())
}

func TestWeeklyAvailability_Scan(t *testing.T) {
	var week WeeklyAvailability

	require.NoError(t, week.Scan([]byte(`{"friday":{"enabled":true,"windows":[{"start":"08:00","end":"12:00"}]}}`)))
	assert.True(t, week[time.Friday].IsBookable())

	require.NoError(t, week.Scan(nil))
	assert.False(t, week.HasBookableDays())
}
