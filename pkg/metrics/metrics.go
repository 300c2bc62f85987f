package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus метрик сервиса на собственном реестре
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBWaitCount       prometheus.Gauge

	BookingsCreated      prometheus.Counter
	BookingConflicts     *prometheus.CounterVec
	BookingStatusChanges *prometheus.CounterVec
	BookingReschedules   prometheus.Counter
	NotificationsRelayed *prometheus.CounterVec
}

// New создает и регистрирует метрики. serviceName добавляется константной меткой
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database pool connections by state",
			ConstLabels: labels,
		}, []string{"state"}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_connections_wait_total",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),
		BookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings successfully created",
			ConstLabels: labels,
		}),
		BookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_conflicts_total",
			Help:        "Booking mutations rejected because capacity was exhausted",
			ConstLabels: labels,
		}, []string{"operation"}),
		BookingStatusChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_status_changes_total",
			Help:        "Booking status changes by target status",
			ConstLabels: labels,
		}, []string{"status"}),
		BookingReschedules: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "booking_reschedules_total",
			Help:        "Bookings successfully rescheduled",
			ConstLabels: labels,
		}),
		NotificationsRelayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_relayed_total",
			Help:        "Notification payloads handed to the relay",
			ConstLabels: labels,
		}, []string{"event", "result"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBWaitCount,
		m.BookingsCreated,
		m.BookingConflicts,
		m.BookingStatusChanges,
		m.BookingReschedules,
		m.NotificationsRelayed,
	)

	return m
}

// Handler HTTP обработчик для /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry возвращает реестр (для тестов)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Методы ниже безопасны для nil-получателя: usecases работают и без метрик

func (m *Metrics) BookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreated.Inc()
}

func (m *Metrics) BookingConflict(operation string) {
	if m == nil {
		return
	}
	m.BookingConflicts.WithLabelValues(operation).Inc()
}

func (m *Metrics) BookingStatusChanged(status string) {
	if m == nil {
		return
	}
	m.BookingStatusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) BookingRescheduled() {
	if m == nil {
		return
	}
	m.BookingReschedules.Inc()
}

func (m *Metrics) NotificationRelayed(event string, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.NotificationsRelayed.WithLabelValues(event, result).Inc()
}
