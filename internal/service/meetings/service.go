package meetings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/omerbhr129/meety-sub000/internal/domain"
	meetingRepo "github.com/omerbhr129/meety-sub000/internal/infra/storage/meeting"
	"github.com/omerbhr129/meety-sub000/internal/service/meetings/models"
)

// Service сервис для работы со встречами хоста
type Service struct {
	meetingRepo MeetingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса встреч
func NewService(meetingRepo MeetingRepository, logger Logger) *Service {
	return &Service{
		meetingRepo: meetingRepo,
		logger:      logger,
	}
}

// Create создает встречу. Хостом становится текущий пользователь.
func (s *Service) Create(ctx context.Context, req *models.CreateMeetingRequest) (*models.MeetingResponse, error) {
	s.logger.Info("CreateMeeting: creating meeting %q by user=%d", req.Title, req.UserID)

	title := strings.TrimSpace(req.Title)
	if err := validateTitle(title); err != nil {
		s.logger.Warn("CreateMeeting: validation failed: %v", err)
		return nil, err
	}

	duration := domain.DefaultMeetingDurationMinutes
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}

	if err := validateSchedule(duration, req.Availability); err != nil {
		s.logger.Warn("CreateMeeting: validation failed: %v", err)
		return nil, err
	}

	meeting := &domain.Meeting{
		HostID:          req.UserID,
		Title:           title,
		Description:     req.Description,
		DurationMinutes: duration,
		Availability:    req.Availability,
		Status:          domain.MeetingStatusActive,
	}

	created, err := s.meetingRepo.Create(ctx, meeting)
	if err != nil {
		s.logger.Error("CreateMeeting: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateMeeting: successfully created meeting id=%d", created.ID)
	return models.FromDomainMeeting(created), nil
}

// GetByID получает активную встречу по ID
// Публичный метод - доступен всем (страница бронирования)
func (s *Service) GetByID(ctx context.Context, id int64) (*models.MeetingResponse, error) {
	s.logger.Info("GetMeeting: fetching meeting id=%d", id)

	meeting, err := s.getActive(ctx, "GetMeeting", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainMeeting(meeting), nil
}

// ListByHost получает активные встречи хоста
func (s *Service) ListByHost(ctx context.Context, userID int64) (*models.MeetingListResponse, error) {
	s.logger.Info("ListMeetings: fetching meetings of host=%d", userID)

	meetings, err := s.meetingRepo.GetByHost(ctx, domain.MeetingsFilter{HostID: userID})
	if err != nil {
		s.logger.Error("ListMeetings: repository error for host=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByHost - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListMeetings: successfully fetched %d meetings for host=%d", len(meetings), userID)
	return models.FromDomainMeetingList(meetings), nil
}

// UpdateAvailability заменяет длительность и недельное расписание встречи.
// Пересекающиеся и некорректные окна отклоняются. Уже забронированные слоты не затрагиваются.
func (s *Service) UpdateAvailability(ctx context.Context, id int64, req *models.UpdateAvailabilityRequest) (*models.MeetingResponse, error) {
	s.logger.Info("UpdateAvailability: updating meeting id=%d by user=%d", id, req.UserID)

	// 1. Получаем встречу и проверяем права доступа
	meeting, err := s.getActive(ctx, "UpdateAvailability", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkHostAccess("UpdateAvailability", meeting, req.UserID); err != nil {
		return nil, err
	}

	// 2. Валидируем новое расписание
	duration := meeting.DurationMinutes
	if req.DurationMinutes != nil {
		duration = *req.DurationMinutes
	}

	if err := validateSchedule(duration, req.Availability); err != nil {
		s.logger.Warn("UpdateAvailability: validation failed for meeting id=%d: %v", id, err)
		return nil, err
	}

	// 3. Сохраняем
	if err := s.meetingRepo.UpdateAvailability(ctx, id, duration, req.Availability); err != nil {
		if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
			s.logger.Warn("UpdateAvailability: meeting id=%d not found during update", id)
			return nil, ErrMeetingNotFound
		}
		s.logger.Error("UpdateAvailability: repository error for meeting id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateAvailability - repository error: %v", ErrInternal, err)
	}

	meeting.DurationMinutes = duration
	meeting.Availability = req.Availability

	s.logger.Info("UpdateAvailability: successfully updated meeting id=%d", id)
	return models.FromDomainMeeting(meeting), nil
}

// Delete мягко удаляет встречу. Бронирования сохраняются, новые слоты больше не выдаются.
func (s *Service) Delete(ctx context.Context, id int64, userID int64) error {
	s.logger.Info("DeleteMeeting: deleting meeting id=%d by user=%d", id, userID)

	meeting, err := s.getActive(ctx, "DeleteMeeting", id)
	if err != nil {
		return err
	}

	if err := s.checkHostAccess("DeleteMeeting", meeting, userID); err != nil {
		return err
	}

	if err := s.meetingRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
			s.logger.Warn("DeleteMeeting: meeting id=%d already deleted", id)
			return ErrMeetingNotFound
		}
		s.logger.Error("DeleteMeeting: repository error for meeting id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteMeeting: successfully deleted meeting id=%d", id)
	return nil
}

// Вспомогательные методы

// getActive получает встречу, удаленная считается не найденной
func (s *Service) getActive(ctx context.Context, op string, id int64) (*domain.Meeting, error) {
	meeting, err := s.meetingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, meetingRepo.ErrMeetingNotFound) {
			s.logger.Warn("%s: meeting id=%d not found", op, id)
			return nil, ErrMeetingNotFound
		}
		s.logger.Error("%s: repository error for meeting id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if meeting.IsDeleted() {
		s.logger.Warn("%s: meeting id=%d is deleted", op, id)
		return nil, ErrMeetingNotFound
	}

	return meeting, nil
}

// checkHostAccess проверяет, что пользователь является хостом встречи
func (s *Service) checkHostAccess(op string, meeting *domain.Meeting, userID int64) error {
	if meeting.IsOwnedBy(userID) {
		return nil
	}
	s.logger.Warn("%s: user=%d is not the host of meeting id=%d", op, userID, meeting.ID)
	return ErrAccessDenied
}

// validateTitle проверяет название встречи
func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > domain.MaxMeetingTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrInvalidInput, domain.MaxMeetingTitleLength)
	}
	return nil
}

// validateSchedule проверяет длительность и недельное расписание
func validateSchedule(duration int, availability domain.WeeklyAvailability) error {
	if err := domain.ValidateDuration(duration); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := availability.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
