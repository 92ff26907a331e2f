package create_booking

import "errors"

var (
	// ErrMeetingNotFound возвращается, когда встреча не найдена или удалена
	ErrMeetingNotFound = errors.New("create_booking: meeting not found")

	// ErrParticipantNotFound возвращается, когда участник не найден
	ErrParticipantNotFound = errors.New("create_booking: participant not found")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним слотом расписания на эту дату
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrSlotNotAvailable возвращается, когда слот занят или уже начался
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
