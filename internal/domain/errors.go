package domain

import "errors"

var (
	// ErrInvalidWindow окно доступности некорректно (start >= end или вне суток)
	ErrInvalidWindow = errors.New("domain: invalid time window")

	// ErrOverlappingWindows окна одного дня недели пересекаются
	ErrOverlappingWindows = errors.New("domain: overlapping time windows")

	// ErrTooManyWindows слишком много окон в одном дне
	ErrTooManyWindows = errors.New("domain: too many time windows")

	// ErrUnknownWeekday неизвестный день недели в расписании
	ErrUnknownWeekday = errors.New("domain: unknown weekday")

	// ErrInvalidDuration длительность встречи вне допустимого диапазона
	ErrInvalidDuration = errors.New("domain: invalid meeting duration")

	// ErrInvalidStatus статус не входит в допустимый набор
	ErrInvalidStatus = errors.New("domain: invalid booking status")

	// ErrInvalidTransition переход между статусами запрещен
	ErrInvalidTransition = errors.New("domain: invalid booking status transition")
)
