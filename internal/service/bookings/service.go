package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/omerbhr129/meety-sub000/internal/domain"
	"github.com/omerbhr129/meety-sub000/internal/events"
	bookingRepo "github.com/omerbhr129/meety-sub000/internal/infra/storage/booking"
	meetingRepo "github.com/omerbhr129/meety-sub000/internal/infra/storage/meeting"
	"github.com/omerbhr129/meety-sub000/internal/service/bookings/models"
)

// maxStatusAttempts сколько раз UpdateStatus перечитывает бронирование, если статус изменился конкурентно
const maxStatusAttempts = 3

// Service сервис для работы с бронированиями встреч хоста
type Service struct {
	bookingRepo  BookingRepository
	meetingRepo  MeetingRepository
	publisher    EventPublisher
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	meetingRepo MeetingRepository,
	publisher EventPublisher,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		meetingRepo:  meetingRepo,
		publisher:    publisher,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID. Доступно только хосту встречи.
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetBooking: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetBooking", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkHostAccess(ctx, "GetBooking", booking.MeetingID, userID); err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking, s.timeProvider.Now()), nil
}

// ListByMeeting возвращает бронирования встречи за период.
// Прошедшие ожидающие бронирования помечаются needsStatusDecision, статус при этом не меняется.
func (s *Service) ListByMeeting(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListBookings: fetching bookings for meeting=%d by user=%d", req.MeetingID, req.UserID)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("ListBookings: invalid period for meeting=%d", req.MeetingID)
		return nil, fmt.Errorf("%w: end date is before start date", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid status filter for meeting=%d: %v", req.MeetingID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}
	if filter.Status != nil && *filter.Status == domain.StatusCancelled {
		filter.IncludeCancelled = true
	}

	if err := s.checkHostAccess(ctx, "ListBookings", req.MeetingID, req.UserID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByMeetingWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error for meeting=%d: %v", req.MeetingID, err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBookings: found %d bookings for meeting=%d", len(bookings), req.MeetingID)
	return models.FromDomainBookingList(bookings, s.timeProvider.Now()), nil
}

// UpdateStatus ручная смена статуса хостом.
// Повторная установка текущего статуса ничего не меняет и событие не публикует.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateBookingStatus: booking id=%d to %q by user=%d", id, req.Status, req.UserID)

	target := domain.BookingStatus(req.Status)
	if !target.IsManual() {
		s.logger.Warn("UpdateBookingStatus: status %q is not allowed", req.Status)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	booking, err := s.getBooking(ctx, "UpdateBookingStatus", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkHostAccess(ctx, "UpdateBookingStatus", booking.MeetingID, req.UserID); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		if booking.Status == target {
			s.logger.Info("UpdateBookingStatus: booking id=%d already %s", id, target)
			return models.FromDomainBooking(booking, s.timeProvider.Now()), nil
		}

		if err := booking.CanTransitionTo(target); err != nil {
			s.logger.Warn("UpdateBookingStatus: booking id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		}

		previous := booking.Status
		updated, err := s.bookingRepo.UpdateStatusIf(ctx, id, previous, target)
		if err != nil {
			s.logger.Error("UpdateBookingStatus: repository error for booking id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateBookingStatus - repository error: %v", ErrInternal, err)
		}

		if updated {
			now := s.timeProvider.Now()
			booking.Status = target
			booking.UpdatedAt = now
			s.statusChanged(booking, previous, now)

			s.logger.Info("UpdateBookingStatus: booking id=%d %s -> %s", id, previous, target)
			return models.FromDomainBooking(booking, now), nil
		}

		if attempt == maxStatusAttempts {
			s.logger.Warn("UpdateBookingStatus: booking id=%d keeps changing, giving up", id)
			return nil, ErrStatusConflict
		}

		s.logger.Warn("UpdateBookingStatus: booking id=%d changed concurrently, re-reading", id)
		booking, err = s.getBooking(ctx, "UpdateBookingStatus", id)
		if err != nil {
			return nil, err
		}
	}
}

// Delete физически удаляет бронирование. Слот сразу становится доступным.
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("DeleteBooking: deleting booking id=%d by user=%d", id, userID)

	booking, err := s.getBooking(ctx, "DeleteBooking", id)
	if err != nil {
		return err
	}

	if err := s.checkHostAccess(ctx, "DeleteBooking", booking.MeetingID, userID); err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("DeleteBooking: booking id=%d already deleted", id)
			return ErrBookingNotFound
		}
		s.logger.Error("DeleteBooking: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteBooking - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBooking: booking id=%d deleted, slot %s %s released",
		id, booking.Date.Format(domain.DateFormat), booking.Time)
	return nil
}

// Reconcile переводит все прошедшие ожидающие бронирования встречи в completed.
// Обновление условное (только из pending), поэтому решение хоста, принятое параллельно, не перезаписывается.
// Повторный вызов ничего не меняет.
func (s *Service) Reconcile(ctx context.Context, meetingID int64, userID int64) (*models.ReconcileResponse, error) {
	s.logger.Info("ReconcileBookings: meeting=%d by user=%d", meetingID, userID)

	if err := s.checkHostAccess(ctx, "ReconcileBookings", meetingID, userID); err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	pending := domain.StatusPending

	bookings, err := s.bookingRepo.GetByMeetingWithFilter(ctx, domain.BookingsFilter{
		MeetingID: meetingID,
		EndDate:   &now,
		Status:    &pending,
	})
	if err != nil {
		s.logger.Error("ReconcileBookings: repository error for meeting=%d: %v", meetingID, err)
		return nil, fmt.Errorf("%w: ReconcileBookings - repository error: %v", ErrInternal, err)
	}

	resp := &models.ReconcileResponse{
		MeetingID:  meetingID,
		BookingIDs: make([]int64, 0),
	}

	for _, booking := range bookings {
		if !booking.NeedsStatusDecision(now) {
			continue
		}

		updated, err := s.bookingRepo.UpdateStatusIf(ctx, booking.ID, domain.StatusPending, domain.StatusCompleted)
		if err != nil {
			s.logger.Error("ReconcileBookings: repository error for booking id=%d: %v", booking.ID, err)
			return nil, fmt.Errorf("%w: ReconcileBookings - repository error: %v", ErrInternal, err)
		}
		if !updated {
			s.logger.Info("ReconcileBookings: booking id=%d was decided concurrently, skipping", booking.ID)
			continue
		}

		booking.Status = domain.StatusCompleted
		booking.UpdatedAt = now
		s.statusChanged(booking, domain.StatusPending, now)

		resp.BookingIDs = append(resp.BookingIDs, booking.ID)
	}

	resp.Completed = len(resp.BookingIDs)
	s.logger.Info("ReconcileBookings: meeting=%d, %d bookings completed", meetingID, resp.Completed)
	return resp, nil
}

// statusChanged публикует событие и обновляет метрики после смены статуса
func (s *Service) statusChanged(booking *domain.BookedSlot, previous domain.BookingStatus, now time.Time) {
	s.metrics.BookingStatusChanged(string(booking.Status))
	s.publisher.Emit(events.NewBookingStatusChanged(booking, previous, now))
}

// getBooking загружает бронирование и транслирует ошибки репозитория
func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.BookedSlot, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// checkHostAccess проверяет, что пользователь является хостом встречи.
// Удаленная встреча остается доступной хосту: история бронирований сохраняется.
func (s *Service) checkHostAccess(ctx context.Context, op string, meetingID int64, userID int64) error {
	meeting, err := s.meetingRepo.GetByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
			s.logger.Warn("%s: meeting id=%d not found", op, meetingID)
			return ErrMeetingNotFound
		}
		s.logger.Error("%s: repository error for meeting id=%d: %v", op, meetingID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !meeting.IsOwnedBy(userID) {
		s.logger.Warn("%s: user=%d is not the host of meeting id=%d", op, userID, meetingID)
		return ErrAccessDenied
	}

	return nil
}
