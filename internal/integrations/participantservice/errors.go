package participantservice

import "errors"

var (
	// ErrParticipantNotFound возвращается, когда участник не найден
	ErrParticipantNotFound = errors.New("participant not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("participantservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("participantservice client: invalid response")
)
