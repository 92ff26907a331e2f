package events

import (
	"context"

	"github.com/go-redis/redis/v8"
)

// Publisher доставляет событие подписчикам
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisClient часть *redis.Client, нужная для публикации
type RedisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
