package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-коллекторов сервиса
// Все методы безопасны для nil-получателя: при выключенных метриках передается nil
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration  *prometheus.HistogramVec
	dbOpenConns      *prometheus.GaugeVec
	dbInUseConns     *prometheus.GaugeVec
	dbIdleConns      *prometheus.GaugeVec
	dbWaitCount      *prometheus.GaugeVec
	txRetriesTotal   *prometheus.CounterVec
	transitionsTotal *prometheus.CounterVec
	settlementsTotal *prometheus.CounterVec
	settledAmount    *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в указанном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		dbOpenConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		dbInUseConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of database connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		dbIdleConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),
		txRetriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_tx_retries_total",
			Help:        "Transactions retried after serialization failure or deadlock",
			ConstLabels: constLabels,
		}, []string{"isolation"}),
		transitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_transitions_total",
			Help:        "Appointment status transitions by target status",
			ConstLabels: constLabels,
		}, []string{"status"}),
		settlementsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "commission_settlements_total",
			Help:        "Commission settlements by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
		settledAmount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "commission_settled_amount_total",
			Help:        "Sum of settled commission amounts",
			ConstLabels: constLabels,
		}, []string{}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.dbWaitCount,
		m.txRetriesTotal,
		m.transitionsTotal,
		m.settlementsTotal,
		m.settledAmount,
	)

	return m
}

// ObserveHTTPRequest учитывает HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery учитывает запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBStats обновляет метрики пула соединений
func (m *Metrics) SetDBStats(db string, open, inUse, idle int, waitCount int64) {
	if m == nil {
		return
	}
	m.dbOpenConns.WithLabelValues(db).Set(float64(open))
	m.dbInUseConns.WithLabelValues(db).Set(float64(inUse))
	m.dbIdleConns.WithLabelValues(db).Set(float64(idle))
	m.dbWaitCount.WithLabelValues(db).Set(float64(waitCount))
}

// IncTxRetry учитывает повтор транзакции
func (m *Metrics) IncTxRetry(isolation string) {
	if m == nil {
		return
	}
	m.txRetriesTotal.WithLabelValues(isolation).Inc()
}

// IncAppointmentTransition учитывает переход записи в статус
func (m *Metrics) IncAppointmentTransition(status string) {
	if m == nil {
		return
	}
	m.transitionsTotal.WithLabelValues(status).Inc()
}

// ObserveSettlement учитывает результат расчета комиссии
// outcome: "created" или "skipped"
func (m *Metrics) ObserveSettlement(outcome string, amount float64) {
	if m == nil {
		return
	}
	m.settlementsTotal.WithLabelValues(outcome).Inc()
	if amount > 0 {
		m.settledAmount.WithLabelValues().Add(amount)
	}
}
