package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/omerbhr129/meety-sub000/internal/api/handlers/create_booking"
	createMeetingHandler "github.com/omerbhr129/meety-sub000/internal/api/handlers/create_meeting"
	deleteBookingHandler "github.com/omerbhr129/meety-sub000/internal/api/handlers/delete_booking"
	deleteMeetingHandler "github.com/omerbhr129/meety-sub000/internal/api/handlers/delete_meeting"
	getAvailableSlotsHandler "github.com/omerbhr129/meety-sub000/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/omerbhr129/meety-sub000/internal/api/handlers/get_booking"
	getMeetingHandler "github.com/omerbhr129/meety-sub000/internal/api/handlers/get_meeting"
	getMeetingBookingsHandler "github.com/omerbhr129/meety-sub000/internal/api/handlers/get_meeting_bookings"
	listMeetingsHandler "github.com/omerbhr129/meety-sub000/internal/api/handlers/list_meetings"
	reconcileBookingsHandler "github.com/omerbhr129/meety-sub000/internal/api/handlers/reconcile_bookings"
	updateAvailabilityHandler "github.com/omerbhr129/meety-sub000/internal/api/handlers/update_availability"
	updateBookingStatusHandler "github.com/omerbhr129/meety-sub000/internal/api/handlers/update_booking_status"
	"github.com/omerbhr129/meety-sub000/internal/api/middleware"
	"github.com/omerbhr129/meety-sub000/internal/config"
	"github.com/omerbhr129/meety-sub000/internal/events"
	bookingRepo "github.com/omerbhr129/meety-sub000/internal/infra/storage/booking"
	meetingRepo "github.com/omerbhr129/meety-sub000/internal/infra/storage/meeting"
	participantServiceClient "github.com/omerbhr129/meety-sub000/internal/integrations/participantservice"
	bookingsService "github.com/omerbhr129/meety-sub000/internal/service/bookings"
	meetingsService "github.com/omerbhr129/meety-sub000/internal/service/meetings"
	createBookingUC "github.com/omerbhr129/meety-sub000/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/omerbhr129/meety-sub000/internal/usecase/get_available_slots"
	"github.com/omerbhr129/meety-sub000/pkg/dbmetrics"
	"github.com/omerbhr129/meety-sub000/pkg/logger"
	"github.com/omerbhr129/meety-sub000/pkg/metrics"
	"github.com/omerbhr129/meety-sub000/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting meety...")
	log.Info("Configuration loaded from config.toml")

	// Часовой пояс хоста: в нем считаются "сегодня" и время слотов
	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Scheduling.Timezone, err)
	}
	log.Info("Scheduling timezone: %s", location)

	// Инициализируем метрики (если включены). nil коллектор ничего не пишет.
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil, cfg.Metrics.ServiceName)
	}

	// Репозитории и transaction manager
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	meetingRepository := meetingRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем интеграционных клиентов
	participantClient := participantServiceClient.NewClient(
		cfg.ParticipantService.URL,
		time.Duration(cfg.ParticipantService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ParticipantService=%s timeout=%ds)",
		cfg.ParticipantService.URL, cfg.ParticipantService.Timeout)

	// Публикация доменных событий: Redis pub/sub или только лог
	var (
		publisher   events.Publisher
		redisClient *redis.Client
	)
	if cfg.Events.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Events.RedisAddr,
			Password: cfg.Events.RedisPassword,
			DB:       cfg.Events.RedisDB,
		})

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// События не критичны для бронирования, сервис продолжает работу
			log.Warn("Redis is not reachable at %s: %v", cfg.Events.RedisAddr, err)
		}
		cancelPing()

		publisher = events.NewRedisPublisher(
			redisClient,
			cfg.Events.Channel,
			time.Duration(cfg.Events.PublishTimeout)*time.Millisecond,
		)
		log.Info("Events are published to redis channel %q (%s)", cfg.Events.Channel, cfg.Events.RedisAddr)
	} else {
		publisher = events.NewLogPublisher(log)
		log.Info("Events publishing disabled, events are logged only")
	}

	dispatcher := events.NewDispatcher(publisher, cfg.Events.BufferSize, log)

	// Инициализируем сервисы
	meetingSvc := meetingsService.NewService(
		meetingRepository,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		meetingRepository,
		dispatcher,
		metricsCollector,
		&bookingsService.RealTimeProvider{Location: location},
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		meetingRepository,
		bookingRepository,
		participantClient,
		txMgr,
		dispatcher,
		metricsCollector,
		location,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		meetingRepository,
		bookingRepository,
		location,
		log,
	)

	// Инициализируем handlers
	createMeeting := createMeetingHandler.NewHandler(meetingSvc, log)
	getMeeting := getMeetingHandler.NewHandler(meetingSvc, log)
	listMeetings := listMeetingsHandler.NewHandler(meetingSvc, log)
	updateAvailability := updateAvailabilityHandler.NewHandler(meetingSvc, log)
	deleteMeeting := deleteMeetingHandler.NewHandler(meetingSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getMeetingBookings := getMeetingBookingsHandler.NewHandler(bookingSvc, log)
	reconcileBookings := reconcileBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Встреча и ее расписание
	api.HandleFunc("/meetings/{meetingId:[0-9]+}", getMeeting.Handle).Methods(http.MethodGet)

	// Свободные слоты на дату
	api.HandleFunc("/meetings/{meetingId:[0-9]+}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Бронирование слота участником
	api.HandleFunc("/meetings/{meetingId:[0-9]+}/bookings", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Встречи хоста ---
	protected.HandleFunc("/meetings", createMeeting.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/meetings", listMeetings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/meetings/{meetingId:[0-9]+}/availability", updateAvailability.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/meetings/{meetingId:[0-9]+}", deleteMeeting.Handle).Methods(http.MethodDelete)

	// --- Журнал бронирований встречи ---
	protected.HandleFunc("/meetings/{meetingId:[0-9]+}/bookings", getMeetingBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/meetings/{meetingId:[0-9]+}/bookings/reconcile", reconcileBookings.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", deleteBooking.Handle).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Дожидаемся отправки накопленных событий
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn("Events dispatcher stopped with pending events: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn("Failed to close redis client: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
