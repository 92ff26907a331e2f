package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus метрик сервиса
type Metrics struct {
	service string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec
	DBConnections   *prometheus.GaugeVec

	BookingsCreated      *prometheus.CounterVec
	BookingConflicts     *prometheus.CounterVec
	BookingStatusChanges *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном registry prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики в указанном registry (используется в тестах)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		service: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),

		DBQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		}, []string{"service", "operation", "status"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),

		DBConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections",
			Help: "Database connection pool state",
		}, []string{"service", "state"}),

		BookingsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total number of committed bookings by initial status",
		}, []string{"service", "status"}),

		BookingConflicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_conflicts_total",
			Help: "Total number of booking attempts rejected because the slot was taken",
		}, []string{"service"}),

		BookingStatusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_status_changes_total",
			Help: "Total number of booking status transitions by target status",
		}, []string{"service", "status"}),
	}
}

// Service возвращает имя сервиса, используемое в лейблах
func (m *Metrics) Service() string {
	return m.service
}

// Методы ниже безопасно вызывать на nil (метрики выключены)

// BookingCreated учитывает успешно созданное бронирование
func (m *Metrics) BookingCreated(status string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(m.service, status).Inc()
}

// BookingConflict учитывает попытку забронировать занятый слот
func (m *Metrics) BookingConflict() {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(m.service).Inc()
}

// BookingStatusChanged учитывает смену статуса бронирования
func (m *Metrics) BookingStatusChanged(status string) {
	if m == nil {
		return
	}
	m.BookingStatusChanges.WithLabelValues(m.service, status).Inc()
}
