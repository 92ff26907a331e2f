package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать или разобрать
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server             ServerConfig             `toml:"server"`
	Database           DatabaseConfig           `toml:"database"`
	Logs               LogsConfig               `toml:"logs"`
	Metrics            MetricsConfig            `toml:"metrics"`
	ParticipantService ParticipantServiceConfig `toml:"participant_service"`
	Scheduling         SchedulingConfig         `toml:"scheduling"`
	Events             EventsConfig             `toml:"events"`
}

// ServerConfig настройки HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к Postgres
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ParticipantServiceConfig настройки клиента сервиса участников
type ParticipantServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// SchedulingConfig настройки расписания
type SchedulingConfig struct {
	// Timezone часовой пояс хоста (IANA), в нем считаются "сегодня" и время слотов
	Timezone string `toml:"timezone"`
}

// Location загружает часовой пояс хоста
func (c SchedulingConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// EventsConfig настройки публикации доменных событий
type EventsConfig struct {
	Enabled        bool   `toml:"enabled"` // false - события только пишутся в лог
	RedisAddr      string `toml:"redis_addr"`
	RedisPassword  string `toml:"redis_password"`
	RedisDB        int    `toml:"redis_db"`
	Channel        string `toml:"channel"`
	PublishTimeout int    `toml:"publish_timeout"` // миллисекунды
	BufferSize     int    `toml:"buffer_size"`
}

// Load читает конфигурацию из TOML файла, подставляет значения по умолчанию
// и переопределения из окружения (DB_PASSWORD, HTTP_PORT, REDIS_PASSWORD)
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.ParticipantService.URL == "" {
		return fmt.Errorf("%w: participant_service.url is required", ErrInvalidConfig)
	}
	if _, err := c.Scheduling.Location(); err != nil {
		return fmt.Errorf("%w: scheduling.timezone %q: %v", ErrInvalidConfig, c.Scheduling.Timezone, err)
	}
	if c.Events.Enabled && c.Events.RedisAddr == "" {
		return fmt.Errorf("%w: events.redis_addr is required when events are enabled", ErrInvalidConfig)
	}
	if c.Events.BufferSize <= 0 {
		return fmt.Errorf("%w: events.buffer_size must be positive", ErrInvalidConfig)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "meety",
		},
		ParticipantService: ParticipantServiceConfig{
			Timeout: 5,
		},
		Scheduling: SchedulingConfig{
			Timezone: "UTC",
		},
		Events: EventsConfig{
			Channel:        "meety.bookings",
			PublishTimeout: 500,
			BufferSize:     256,
		},
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Events.RedisPassword = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT %q", ErrInvalidConfig, v)
		}
		cfg.Server.HTTPPort = port
	}
	return nil
}
