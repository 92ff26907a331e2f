package create_booking

import (
	"errors"
	"net/http"

	"github.com/omerbhr129/meety-sub000/internal/api/handlers"
	createBooking "github.com/omerbhr129/meety-sub000/internal/usecase/create_booking"
)

const (
	msgInvalidMeetingID    = "некорректный ID встречи"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime         = "некорректный формат времени начала, ожидается HH:MM"
	msgSlotNotAvailable    = "выбранный временной слот недоступен"
	msgMeetingNotFound     = "встреча не найдена"
	msgParticipantNotFound = "участник не найден"
	msgInvalidBookingDate  = "нельзя забронировать прошедшую дату"
	msgInvalidTimeSlot     = "время не совпадает ни с одним слотом расписания"
	msgInvalidInput        = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/meetings/{meetingId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	meetingID, err := handlers.PathID(r, "meetingId")
	if err != nil {
		h.logger.Warn("POST /meetings/{id}/bookings - Invalid meeting ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMeetingID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /meetings/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(meetingID)
	if err != nil {
		h.logger.Warn("POST /meetings/{id}/bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /meetings/{id}/bookings - Slot not available: meeting_id=%d, date=%s, time=%s",
				meetingID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrMeetingNotFound):
			h.logger.Warn("POST /meetings/{id}/bookings - Meeting not found: meeting_id=%d", meetingID)
			handlers.RespondNotFound(w, msgMeetingNotFound)

		case errors.Is(err, createBooking.ErrParticipantNotFound):
			h.logger.Warn("POST /meetings/{id}/bookings - Participant not found: participant_id=%d", req.ParticipantID)
			handlers.RespondBadRequest(w, msgParticipantNotFound)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /meetings/{id}/bookings - Date in the past: meeting_id=%d, date=%s", meetingID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /meetings/{id}/bookings - Invalid time slot: meeting_id=%d, time=%s", meetingID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /meetings/{id}/bookings - Invalid input: meeting_id=%d, error=%v", meetingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /meetings/{id}/bookings - Failed to create booking: meeting_id=%d, participant_id=%d, error=%v",
				meetingID, req.ParticipantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /meetings/{id}/bookings - Booking created successfully: booking_id=%d, meeting_id=%d, participant_id=%d",
		result.ID, meetingID, req.ParticipantID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
