package meetings

import "errors"

var (
	// ErrMeetingNotFound возвращается, когда встреча не найдена или удалена
	ErrMeetingNotFound = errors.New("meeting not found")

	// ErrAccessDenied возвращается, когда пользователь не является хостом встречи
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
