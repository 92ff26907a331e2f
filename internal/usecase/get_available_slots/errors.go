package get_available_slots

import "errors"

var (
	// ErrMeetingNotFound возвращается, когда встреча не найдена или удалена
	ErrMeetingNotFound = errors.New("get_available_slots: meeting not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
