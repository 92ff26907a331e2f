// Package events публикует доменные события бронирований.
// Доставка асинхронная: бизнес-операции не ждут и не зависят от ее результата.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/omerbhr129/meety-sub000/internal/domain"
)

// Type тип доменного события
type Type string

const (
	TypeBookingCreated       Type = "booking.created"
	TypeBookingStatusChanged Type = "booking.status_changed"
)

// Event доменное событие по забронированному слоту
type Event struct {
	ID             string               `json:"id"`
	Type           Type                 `json:"type"`
	OccurredAt     time.Time            `json:"occurredAt"`
	MeetingID      int64                `json:"meetingId"`
	BookingID      int64                `json:"bookingId"`
	ParticipantID  int64                `json:"participantId"`
	Date           string               `json:"date"`
	Time           string               `json:"time"`
	Status         domain.BookingStatus `json:"status"`
	PreviousStatus domain.BookingStatus `json:"previousStatus,omitempty"`
}

// NewBookingCreated событие о новом бронировании
func NewBookingCreated(b *domain.BookedSlot, now time.Time) Event {
	return newEvent(TypeBookingCreated, b, now)
}

// NewBookingStatusChanged событие о смене статуса бронирования
func NewBookingStatusChanged(b *domain.BookedSlot, previous domain.BookingStatus, now time.Time) Event {
	e := newEvent(TypeBookingStatusChanged, b, now)
	e.PreviousStatus = previous
	return e
}

func newEvent(t Type, b *domain.BookedSlot, now time.Time) Event {
	return Event{
		ID:            uuid.NewString(),
		Type:          t,
		OccurredAt:    now,
		MeetingID:     b.MeetingID,
		BookingID:     b.ID,
		ParticipantID: b.ParticipantID,
		Date:          b.Date.Format(domain.DateFormat),
		Time:          b.Time.String(),
		Status:        b.Status,
	}
}
