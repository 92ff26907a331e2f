package create_booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omerbhr129/meety-sub000/internal/domain"
	"github.com/omerbhr129/meety-sub000/internal/events"
	bookingRepo "github.com/omerbhr129/meety-sub000/internal/infra/storage/booking"
	meetingRepo "github.com/omerbhr129/meety-sub000/internal/infra/storage/meeting"
	"github.com/omerbhr129/meety-sub000/internal/integrations/participantservice"
	"github.com/omerbhr129/meety-sub000/pkg/logger"
	"github.com/omerbhr129/meety-sub000/pkg/txmanager"
	"github.com/omerbhr129/meety-sub000/pkg/types"
)

var hostLocation = time.FixedZone("host", 2*60*60)

// 2026-10-26 - понедельник
var futureMonday = time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC)

type fakeMeetingRepo struct {
	meeting *domain.Meeting
	err     error
}

func (r *fakeMeetingRepo) GetByID(_ context.Context, id int64) (*domain.Meeting, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.meeting == nil || r.meeting.ID != id {
		return nil, meetingRepo.ErrMeetingNotFound
	}
	copied := *r.meeting
	return &copied, nil
}

// memBookingRepo хранилище в памяти с той же гарантией уникальности, что и индекс в Postgres
type memBookingRepo struct {
	mu        sync.Mutex
	nextID    int64
	bookings  []*domain.BookedSlot
	createErr error
}

func (r *memBookingRepo) Create(_ context.Context, b *domain.BookedSlot) (*domain.BookedSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}

	for _, existing := range r.bookings {
		if existing.IsActive() && existing.MeetingID == b.MeetingID &&
			domain.IsSameDay(existing.Date, b.Date) && existing.Time == b.Time {
			return nil, fmt.Errorf("%w: duplicate", bookingRepo.ErrSlotNotAvailable)
		}
	}

	r.nextID++
	stored := *b
	stored.ID = r.nextID
	r.bookings = append(r.bookings, &stored)

	result := stored
	return &result, nil
}

func (r *memBookingRepo) GetByMeetingWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.BookedSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.BookedSlot, 0)
	for _, b := range r.bookings {
		if b.MeetingID != filter.MeetingID || !b.IsActive() {
			continue
		}
		if filter.StartDate != nil && !domain.IsSameDay(b.Date, *filter.StartDate) {
			continue
		}
		copied := *b
		result = append(result, &copied)
	}
	return result, nil
}

func (r *memBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

type fakeParticipants struct {
	known map[int64]bool
	err   error
}

func (c *fakeParticipants) GetParticipant(_ context.Context, id int64) (*participantservice.Participant, error) {
	if c.err != nil {
		return nil, c.err
	}
	if !c.known[id] {
		return nil, participantservice.ErrParticipantNotFound
	}
	return &participantservice.Participant{ID: id, Name: "participant"}, nil
}

type passthroughTx struct {
	commitErr error
}

func (m *passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return m.commitErr
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *fakePublisher) Emit(e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

type fakeMetrics struct {
	mu        sync.Mutex
	created   map[string]int
	conflicts int
}

func (m *fakeMetrics) BookingCreated(status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.created == nil {
		m.created = make(map[string]int)
	}
	m.created[status]++
}

func (m *fakeMetrics) BookingConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conflicts++
}

// steppedClock возвращает times по очереди, последнее значение повторяется
type steppedClock struct {
	mu    sync.Mutex
	times []time.Time
}

func (c *steppedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.times[0]
	if len(c.times) > 1 {
		c.times = c.times[1:]
	}
	return now
}

type fixture struct {
	uc        *UseCase
	meetings  *fakeMeetingRepo
	bookings  *memBookingRepo
	people    *fakeParticipants
	tx        *passthroughTx
	publisher *fakePublisher
	metrics   *fakeMetrics
}

func newFixture(now ...time.Time) *fixture {
	meeting := &domain.Meeting{
		ID:              1,
		HostID:          10,
		Title:           "Intro call",
		DurationMinutes: 30,
		Status:          domain.MeetingStatusActive,
	}
	meeting.Availability[time.Monday] = domain.WeekdayAvailability{
		Enabled: true,
		Windows: []domain.TimeWindow{{Start: types.TimeString(9 * 60), End: types.TimeString(10 * 60)}},
	}

	if len(now) == 0 {
		now = []time.Time{time.Date(2026, 10, 20, 12, 0, 0, 0, hostLocation)}
	}

	f := &fixture{
		meetings:  &fakeMeetingRepo{meeting: meeting},
		bookings:  &memBookingRepo{},
		people:    &fakeParticipants{known: map[int64]bool{7: true, 8: true}},
		tx:        &passthroughTx{},
		publisher: &fakePublisher{},
		metrics:   &fakeMetrics{},
	}
	f.uc = NewUseCase(f.meetings, f.bookings, f.people, f.tx, f.publisher, f.metrics, hostLocation, logger.NewNop())
	f.uc.timeProvider = &steppedClock{times: now}
	return f
}

func request(date time.Time, start string) *Request {
	ts, err := types.NewTimeStringFromString(start)
	if err != nil {
		panic(err)
	}
	return &Request{MeetingID: 1, ParticipantID: 7, Date: date, StartTime: ts}
}

func TestExecute_BookThenConflict(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request(futureMonday, "09:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "09:00", resp.StartTime.String())
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 30, resp.DurationMinutes)

	_, err = f.uc.Execute(context.Background(), request(futureMonday, "09:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	resp, err = f.uc.Execute(context.Background(), request(futureMonday, "09:30"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.ID)

	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, events.TypeBookingCreated, f.publisher.events[0].Type)
	assert.Equal(t, 2, f.metrics.created[string(domain.StatusPending)])
	assert.Equal(t, 1, f.metrics.conflicts)
}

func TestExecute_ConcurrentSameSlot(t *testing.T) {
	f := newFixture()
	const n = 32

	var wg sync.WaitGroup
	errs := make([]error, n)
	start := make(chan struct{})

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.uc.Execute(context.Background(), request(futureMonday, "09:30"))
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotNotAvailable):
			conflicts++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, n-1, conflicts)
	assert.Equal(t, 1, f.bookings.count())
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{name: "missing meeting id", req: &Request{ParticipantID: 7, Date: futureMonday, StartTime: 540}, wantErr: ErrInvalidInput},
		{name: "missing participant", req: &Request{MeetingID: 1, Date: futureMonday, StartTime: 540}, wantErr: ErrInvalidInput},
		{name: "missing date", req: &Request{MeetingID: 1, ParticipantID: 7, StartTime: 540}, wantErr: ErrInvalidInput},
		{name: "start at midnight end", req: &Request{MeetingID: 1, ParticipantID: 7, Date: futureMonday, StartTime: types.MinutesPerDay}, wantErr: ErrInvalidInput},
		{name: "unknown meeting", req: &Request{MeetingID: 99, ParticipantID: 7, Date: futureMonday, StartTime: 540}, wantErr: ErrMeetingNotFound},
		{name: "past date", req: request(futureMonday.AddDate(0, 0, -14), "09:00"), wantErr: ErrInvalidDate},
		{name: "not aligned to duration", req: request(futureMonday, "09:10"), wantErr: ErrInvalidTimeSlot},
		{name: "outside windows", req: request(futureMonday, "10:00"), wantErr: ErrInvalidTimeSlot},
		{name: "disabled weekday", req: request(futureMonday.AddDate(0, 0, 1), "09:00"), wantErr: ErrInvalidTimeSlot},
		{name: "unknown participant", req: &Request{MeetingID: 1, ParticipantID: 404, Date: futureMonday, StartTime: 540}, wantErr: ErrParticipantNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()

			_, err := f.uc.Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, f.bookings.count(), "no mutation on error")
			assert.Empty(t, f.publisher.events)
		})
	}
}

func TestExecute_DeletedMeeting(t *testing.T) {
	f := newFixture()
	f.meetings.meeting.Status = domain.MeetingStatusDeleted

	_, err := f.uc.Execute(context.Background(), request(futureMonday, "09:00"))

	assert.ErrorIs(t, err, ErrMeetingNotFound)
}

func TestExecute_ParticipantServiceDown(t *testing.T) {
	f := newFixture()
	f.people.err = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background(), request(futureMonday, "09:00"))

	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, f.bookings.count())
}

func TestExecute_SameDayElapsedSlot(t *testing.T) {
	f := newFixture(time.Date(2026, 10, 26, 9, 0, 0, 0, hostLocation))

	_, err := f.uc.Execute(context.Background(), request(futureMonday, "09:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	_, err = f.uc.Execute(context.Background(), request(futureMonday, "09:30"))
	assert.NoError(t, err)
}

func TestExecute_ElapsedAtCommitIsCompleted(t *testing.T) {
	// проверки проходят до 09:30, статус определяется уже после начала слота
	f := newFixture(
		time.Date(2026, 10, 26, 9, 29, 0, 0, hostLocation),
		time.Date(2026, 10, 26, 9, 29, 59, 0, hostLocation),
		time.Date(2026, 10, 26, 9, 30, 0, 0, hostLocation),
	)

	resp, err := f.uc.Execute(context.Background(), request(futureMonday, "09:30"))

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), resp.Status)
	assert.Equal(t, 1, f.metrics.created[string(domain.StatusCompleted)])
}

func TestExecute_SerializationFailureIsConflict(t *testing.T) {
	f := newFixture()
	f.tx.commitErr = fmt.Errorf("%w: pq: could not serialize access", txmanager.ErrSerializationFailure)

	_, err := f.uc.Execute(context.Background(), request(futureMonday, "09:00"))

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1, f.metrics.conflicts)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_RepositoryConcurrentUpdateIsConflict(t *testing.T) {
	f := newFixture()
	f.bookings.createErr = fmt.Errorf("%w: 40001", bookingRepo.ErrConcurrentUpdate)

	_, err := f.uc.Execute(context.Background(), request(futureMonday, "09:00"))

	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_RepositoryFailureIsInternal(t *testing.T) {
	f := newFixture()
	f.bookings.createErr = fmt.Errorf("%w: connection reset", bookingRepo.ErrExecQuery)

	_, err := f.uc.Execute(context.Background(), request(futureMonday, "09:00"))

	assert.ErrorIs(t, err, ErrInternal)
}
