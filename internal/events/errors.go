package events

import "errors"

var (
	// ErrPublish возвращается, когда событие не удалось опубликовать
	ErrPublish = errors.New("events: failed to publish event")
)
