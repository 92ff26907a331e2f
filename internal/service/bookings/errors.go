package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrMeetingNotFound возвращается, когда встреча не найдена
	ErrMeetingNotFound = errors.New("meeting not found")

	// ErrAccessDenied возвращается, когда пользователь не является хостом встречи
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidStatus возвращается, когда статус не входит в {completed, missed, cancelled}
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTransition возвращается при запрещенном переходе между статусами
	ErrInvalidTransition = errors.New("invalid booking status transition")

	// ErrStatusConflict возвращается, когда статус постоянно меняется конкурентными запросами
	ErrStatusConflict = errors.New("booking status changed concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
