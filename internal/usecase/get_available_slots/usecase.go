package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/omerbhr129/meety-sub000/internal/availability"
	"github.com/omerbhr129/meety-sub000/internal/domain"
	meetingRepo "github.com/omerbhr129/meety-sub000/internal/infra/storage/meeting"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	meetingRepo  MeetingRepository
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// location часовой пояс хоста, в котором определяется "сегодня".
func NewUseCase(
	meetingRepo MeetingRepository,
	bookingRepo BookingRepository,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		meetingRepo:  meetingRepo,
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{Location: location},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Для даты в прошлом и выключенного дня недели возвращается пустой список, не ошибка.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: meeting=%d, date=%s", req.MeetingID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	now := uc.timeProvider.Now()

	// 2. Получаем встречу
	meeting, err := uc.meetingRepo.GetByID(ctx, req.MeetingID)
	if err != nil {
		if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
			uc.logger.Warn("GetAvailableSlots: meeting id=%d not found", req.MeetingID)
			return nil, ErrMeetingNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get meeting id=%d: %v", req.MeetingID, err)
		return nil, fmt.Errorf("%w: failed to get meeting: %v", ErrInternal, err)
	}

	if meeting.IsDeleted() {
		uc.logger.Warn("GetAvailableSlots: meeting id=%d is deleted", req.MeetingID)
		return nil, ErrMeetingNotFound
	}

	response := &Response{
		MeetingID: meeting.ID,
		Date:      date,
		Slots:     []domain.AvailableSlot{},
	}

	// 3. Без запроса в БД: прошедшая дата или выключенный день
	if domain.IsDateInPast(date, now) || !meeting.Availability.ForDate(date).IsBookable() {
		uc.logger.Info("GetAvailableSlots: no slots for meeting=%d on %s", meeting.ID, date.Format(domain.DateFormat))
		return response, nil
	}

	// 4. Получаем активные бронирования на дату
	filter := domain.BookingsFilter{
		MeetingID: meeting.ID,
		StartDate: &date,
		EndDate:   &date,
	}

	bookings, err := uc.bookingRepo.GetByMeetingWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 5. Вычисляем свободные слоты
	for _, start := range availability.Resolve(meeting, date, bookings, now) {
		response.Slots = append(response.Slots, domain.AvailableSlot{
			StartTime:       start,
			DurationMinutes: meeting.DurationMinutes,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d slots for meeting=%d on %s",
		len(response.Slots), meeting.ID, date.Format(domain.DateFormat))

	return response, nil
}
