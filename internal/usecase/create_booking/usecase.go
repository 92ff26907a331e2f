package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/omerbhr129/meety-sub000/internal/availability"
	"github.com/omerbhr129/meety-sub000/internal/domain"
	"github.com/omerbhr129/meety-sub000/internal/events"
	bookingRepo "github.com/omerbhr129/meety-sub000/internal/infra/storage/booking"
	meetingRepo "github.com/omerbhr129/meety-sub000/internal/infra/storage/meeting"
	participantClient "github.com/omerbhr129/meety-sub000/internal/integrations/participantservice"
	"github.com/omerbhr129/meety-sub000/pkg/txmanager"
	"github.com/omerbhr129/meety-sub000/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	meetingRepo       MeetingRepository
	bookingRepo       BookingRepository
	participantClient ParticipantServiceClient
	txManager         TransactionManager
	publisher         EventPublisher
	metrics           Metrics
	timeProvider      TimeProvider
	logger            Logger
}

// NewUseCase создает новый экземпляр use case.
// location часовой пояс хоста, в котором интерпретируются дата и время слота.
func NewUseCase(
	meetingRepo MeetingRepository,
	bookingRepo BookingRepository,
	participantClient ParticipantServiceClient,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		meetingRepo:       meetingRepo,
		bookingRepo:       bookingRepo,
		participantClient: participantClient,
		txManager:         txManager,
		publisher:         publisher,
		metrics:           metrics,
		timeProvider:      &RealTimeProvider{Location: location},
		logger:            logger,
	}
}

// Execute выполняет use case создания бронирования.
//
// Порядок проверок: слот свободен по расписанию и бронированиям, затем участник существует.
// Запись выполняется в сериализуемой транзакции: встреча и бронирования на дату перечитываются,
// слот проверяется повторно, вставка условная (уникальный индекс по активным слотам).
// Любой проигрыш гонки за слот возвращается как ErrSlotNotAvailable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: meeting=%d, participant=%d, date=%s, time=%s",
		req.MeetingID, req.ParticipantID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	now := uc.timeProvider.Now()

	// 2. Получаем встречу
	meeting, err := uc.getMeeting(ctx, req.MeetingID)
	if err != nil {
		return nil, err
	}

	// 3. Дата не в прошлом и время совпадает со слотом расписания
	if domain.IsDateInPast(date, now) {
		uc.logger.Warn("CreateBooking: date %s is in the past", date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	if err := validateTimeSlot(meeting, req); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 4. Предварительная проверка доступности (без блокировок)
	if err := uc.checkAvailable(ctx, meeting, date, req.StartTime, now); err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.metrics.BookingConflict()
		}
		return nil, err
	}

	// 5. Проверяем участника
	if _, err := uc.participantClient.GetParticipant(ctx, req.ParticipantID); err != nil {
		if errors.Is(err, participantClient.ErrParticipantNotFound) {
			uc.logger.Warn("CreateBooking: participant id=%d not found", req.ParticipantID)
			return nil, ErrParticipantNotFound
		}
		uc.logger.Error("CreateBooking: failed to get participant id=%d: %v", req.ParticipantID, err)
		return nil, fmt.Errorf("%w: failed to get participant: %v", ErrInternal, err)
	}

	// 6. Атомарная запись в сериализуемой транзакции
	var result *domain.BookedSlot
	var durationMinutes int

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		txNow := uc.timeProvider.Now()

		// 6.1. Перечитываем встречу: бронирование валидируется по актуальному расписанию
		current, err := uc.getMeeting(txCtx, req.MeetingID)
		if err != nil {
			return err
		}

		// 6.2. Повторная проверка с блокировкой бронирований на дату (FOR UPDATE)
		if err := uc.checkAvailable(txCtx, current, date, req.StartTime, txNow); err != nil {
			return err
		}

		// 6.3. Условная вставка. Статус определяется по времени фиксации.
		booking := &domain.BookedSlot{
			MeetingID:     req.MeetingID,
			ParticipantID: req.ParticipantID,
			Date:          date,
			Time:          req.StartTime,
			Status:        domain.InitialStatus(date, req.StartTime, uc.timeProvider.Now()),
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotNotAvailable) || errors.Is(err, bookingRepo.ErrConcurrentUpdate) {
				uc.logger.Warn("CreateBooking: slot taken concurrently: %v", err)
				return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		durationMinutes = current.DurationMinutes
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: transaction lost the race for the slot: %v", err)
			err = fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.metrics.BookingConflict()
			return nil, err
		}
		if isUsecaseError(err) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s", result.ID, result.Status)

	uc.metrics.BookingCreated(string(result.Status))
	uc.publisher.Emit(events.NewBookingCreated(result, uc.timeProvider.Now()))

	return &Response{
		ID:              result.ID,
		MeetingID:       result.MeetingID,
		ParticipantID:   result.ParticipantID,
		Date:            result.Date,
		StartTime:       result.Time,
		DurationMinutes: durationMinutes,
		Status:          string(result.Status),
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// getMeeting получает активную встречу
func (uc *UseCase) getMeeting(ctx context.Context, meetingID int64) (*domain.Meeting, error) {
	meeting, err := uc.meetingRepo.GetByID(ctx, meetingID)
	if err != nil {
		if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
			uc.logger.Warn("CreateBooking: meeting id=%d not found", meetingID)
			return nil, ErrMeetingNotFound
		}
		uc.logger.Error("CreateBooking: failed to get meeting id=%d: %v", meetingID, err)
		return nil, fmt.Errorf("%w: failed to get meeting: %v", ErrInternal, err)
	}

	if meeting.IsDeleted() {
		uc.logger.Warn("CreateBooking: meeting id=%d is deleted", meetingID)
		return nil, ErrMeetingNotFound
	}

	return meeting, nil
}

// checkAvailable проверяет, что start входит в список свободных слотов на дату
func (uc *UseCase) checkAvailable(ctx context.Context, meeting *domain.Meeting, date time.Time, start types.TimeString, now time.Time) error {
	filter := domain.BookingsFilter{
		MeetingID: meeting.ID,
		StartDate: &date,
		EndDate:   &date,
	}

	bookings, err := uc.bookingRepo.GetByMeetingWithFilter(ctx, filter)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrConcurrentUpdate) {
			return fmt.Errorf("%w: %v", ErrSlotNotAvailable, err)
		}
		uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
		return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	if availability.IsAvailable(meeting, date, start, bookings, now) {
		return nil
	}

	uc.logger.Warn("CreateBooking: slot %s on %s is not available", start, date.Format(domain.DateFormat))
	return fmt.Errorf("%w: %s %s", ErrSlotNotAvailable, date.Format(domain.DateFormat), start)
}

// isUsecaseError проверяет, что ошибка уже переведена в ошибку use case
func isUsecaseError(err error) bool {
	for _, target := range []error{
		ErrMeetingNotFound,
		ErrParticipantNotFound,
		ErrInvalidDate,
		ErrInvalidTimeSlot,
		ErrSlotNotAvailable,
		ErrInvalidInput,
		ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
