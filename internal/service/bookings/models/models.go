package models

import (
	"time"

	"github.com/omerbhr129/meety-sub000/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на ручную смену статуса бронирования
type UpdateStatusRequest struct {
	UserID int64  `json:"-"`
	Status string `json:"status"`
}

// ListBookingsRequest запрос на получение бронирований встречи
type ListBookingsRequest struct {
	UserID           int64
	MeetingID        int64
	StartDate        *time.Time // Начало периода (опционально)
	EndDate          *time.Time // Конец периода (опционально)
	Status           *string    // Фильтр по статусу (опционально)
	IncludeCancelled bool       // Включить отмененные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		MeetingID:        r.MeetingID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64  `json:"id"`
	MeetingID     int64  `json:"meetingId"`
	ParticipantID int64  `json:"participantId"`
	Date          string `json:"date"` // "2025-10-15"
	Time          string `json:"time"` // "10:00"
	Status        string `json:"status"`

	// Ожидающее бронирование, время которого прошло: хосту нужно выбрать completed или missed
	NeedsStatusDecision bool `json:"needsStatusDecision"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// ReconcileResponse результат перевода прошедших ожидающих бронирований в completed
type ReconcileResponse struct {
	MeetingID  int64   `json:"meetingId"`
	Completed  int     `json:"completed"`
	BookingIDs []int64 `json:"bookingIds"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO. now нужен для NeedsStatusDecision.
func FromDomainBooking(b *domain.BookedSlot, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                  b.ID,
		MeetingID:           b.MeetingID,
		ParticipantID:       b.ParticipantID,
		Date:                b.Date.Format(domain.DateFormat),
		Time:                b.Time.String(),
		Status:              string(b.Status),
		NeedsStatusDecision: b.NeedsStatusDecision(now),
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.BookedSlot, now time.Time) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, now); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
