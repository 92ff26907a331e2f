package availability

import (
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omerbhr129/meety-sub000/internal/domain"
	"github.com/omerbhr129/meety-sub000/pkg/types"
)

var hostLocation = time.FixedZone("host", 3*60*60)

// 2026-10-19 - понедельник
var (
	monday     = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	nextMonday = monday.AddDate(0, 0, 7)
)

func newMeeting(duration int, windows ...domain.TimeWindow) *domain.Meeting {
	m := &domain.Meeting{
		ID:              1,
		HostID:          10,
		DurationMinutes: duration,
		Status:          domain.MeetingStatusActive,
	}
	m.Availability[time.Monday] = domain.WeekdayAvailability{Enabled: true, Windows: windows}
	return m
}

func booked(date time.Time, start types.TimeString, status domain.BookingStatus) *domain.BookedSlot {
	return &domain.BookedSlot{MeetingID: 1, Date: date, Time: start, Status: status}
}

func TestResolve_Scenario(t *testing.T) {
	meeting := newMeeting(30, domain.TimeWindow{Start: hm(9, 0), End: hm(10, 0)})
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, hostLocation)

	slots := Resolve(meeting, monday, nil, now)
	assert.Equal(t, []types.TimeString{hm(9, 0), hm(9, 30)}, slots)

	bookings := []*domain.BookedSlot{booked(monday, hm(9, 0), domain.StatusPending)}
	assert.Equal(t, []types.TimeString{hm(9, 30)}, Resolve(meeting, monday, bookings, now))
	assert.False(t, IsAvailable(meeting, monday, hm(9, 0), bookings, now))
	assert.True(t, IsAvailable(meeting, monday, hm(9, 30), bookings, now))
}

func TestResolve_LongDuration(t *testing.T) {
	meeting := newMeeting(45, domain.TimeWindow{Start: hm(9, 0), End: hm(10, 0)})
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, hostLocation)

	assert.Equal(t, []types.TimeString{hm(9, 0)}, Resolve(meeting, monday, nil, now))
}

func TestResolve_ExclusionLaw(t *testing.T) {
	meeting := newMeeting(20,
		domain.TimeWindow{Start: hm(8, 0), End: hm(12, 0)},
		domain.TimeWindow{Start: hm(13, 0), End: hm(17, 0)},
	)
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, hostLocation)

	var bookings []*domain.BookedSlot
	for _, s := range Resolve(meeting, nextMonday, nil, now) {
		bookings = append(bookings, booked(nextMonday, s, domain.StatusPending))
		after := Resolve(meeting, nextMonday, bookings, now)
		assert.NotContains(t, after, s)
	}

	assert.Empty(t, Resolve(meeting, nextMonday, bookings, now))
}

func TestResolve_IgnoresCancelledAndOtherDates(t *testing.T) {
	meeting := newMeeting(30, domain.TimeWindow{Start: hm(9, 0), End: hm(10, 0)})
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, hostLocation)

	bookings := []*domain.BookedSlot{
		booked(monday, hm(9, 0), domain.StatusCancelled),
		booked(nextMonday, hm(9, 30), domain.StatusPending),
		booked(monday, hm(9, 30), domain.StatusMissed),
	}

	assert.Equal(t, []types.TimeString{hm(9, 0)}, Resolve(meeting, monday, bookings, now))
}

func TestResolve_PastDay(t *testing.T) {
	meeting := newMeeting(30, domain.TimeWindow{Start: hm(0, 0), End: hm(24, 0)})
	now := time.Date(2026, 10, 27, 0, 5, 0, 0, hostLocation)

	assert.Empty(t, Resolve(meeting, nextMonday, nil, now))
}

func TestResolve_SameDay(t *testing.T) {
	meeting := newMeeting(30, domain.TimeWindow{Start: hm(9, 0), End: hm(12, 0)})

	t.Run("slot at exactly now is dropped", func(t *testing.T) {
		now := time.Date(2026, 10, 19, 10, 0, 0, 0, hostLocation)
		assert.Equal(t, []types.TimeString{hm(10, 30), hm(11, 0), hm(11, 30)}, Resolve(meeting, monday, nil, now))
	})

	t.Run("seconds matter", func(t *testing.T) {
		now := time.Date(2026, 10, 19, 9, 59, 30, 0, hostLocation)
		assert.Equal(t, []types.TimeString{hm(10, 0), hm(10, 30), hm(11, 0), hm(11, 30)}, Resolve(meeting, monday, nil, now))
	})

	t.Run("after the last window", func(t *testing.T) {
		now := time.Date(2026, 10, 19, 18, 0, 0, 0, hostLocation)
		assert.Empty(t, Resolve(meeting, monday, nil, now))
	})
}

func TestResolve_DisabledDay(t *testing.T) {
	meeting := newMeeting(30, domain.TimeWindow{Start: hm(9, 0), End: hm(10, 0)})
	meeting.Availability[time.Tuesday] = domain.WeekdayAvailability{
		Enabled: false,
		Windows: []domain.TimeWindow{{Start: hm(9, 0), End: hm(10, 0)}},
	}
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, hostLocation)

	assert.Empty(t, Resolve(meeting, monday.AddDate(0, 0, 1), nil, now))
	assert.Empty(t, Resolve(meeting, monday.AddDate(0, 0, 2), nil, now))
}

func TestResolve_IdempotentAndParallel(t *testing.T) {
	meeting := newMeeting(15, domain.TimeWindow{Start: hm(9, 0), End: hm(17, 0)})
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, hostLocation)
	bookings := []*domain.BookedSlot{booked(monday, hm(11, 0), domain.StatusCompleted)}

	want := Resolve(meeting, monday, bookings, now)

	var wg sync.WaitGroup
	results := make([][]types.TimeString, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Resolve(meeting, monday, bookings, now)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestResolve_SameDayOnDaylightSavingDay(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 2026-03-29 - воскресенье, день перехода на летнее время в Берлине
	sunday := time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC)
	meeting := &domain.Meeting{ID: 1, HostID: 10, DurationMinutes: 30, Status: domain.MeetingStatusActive}
	meeting.Availability[time.Sunday] = domain.WeekdayAvailability{
		Enabled: true,
		Windows: []domain.TimeWindow{{Start: hm(9, 0), End: hm(10, 0)}},
	}

	before := time.Date(2026, 3, 29, 8, 45, 0, 0, berlin)
	assert.Equal(t, []types.TimeString{hm(9, 0), hm(9, 30)}, Resolve(meeting, sunday, nil, before))

	between := time.Date(2026, 3, 29, 9, 15, 0, 0, berlin)
	assert.Equal(t, []types.TimeString{hm(9, 30)}, Resolve(meeting, sunday, nil, between))
	assert.False(t, IsAvailable(meeting, sunday, hm(9, 0), nil, between))

	after := time.Date(2026, 3, 29, 9, 45, 0, 0, berlin)
	assert.Empty(t, Resolve(meeting, sunday, nil, after))
}
