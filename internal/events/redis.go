package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// RedisPublisher публикует события в канал Redis Pub/Sub
type RedisPublisher struct {
	client  RedisClient
	channel string
	timeout time.Duration
}

// NewRedisPublisher создает публикатор в канал channel
func NewRedisPublisher(client RedisClient, channel string, timeout time.Duration) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		channel: channel,
		timeout: timeout,
	}
}

// Publish сериализует событие в JSON и отправляет его в канал
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event %s: %v", ErrPublish, event.ID, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("%w: channel %s: %v", ErrPublish, p.channel, err)
	}

	return nil
}

// LogPublisher пишет события в лог. Используется, когда Redis выключен в конфигурации.
type LogPublisher struct {
	log Logger
}

// NewLogPublisher создает публикатор в лог
func NewLogPublisher(log Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// Publish логирует событие
func (p *LogPublisher) Publish(_ context.Context, event Event) error {
	p.log.Info("Event %s: id=%s meeting=%d booking=%d %s %s status=%s",
		event.Type, event.ID, event.MeetingID, event.BookingID, event.Date, event.Time, event.Status)
	return nil
}
