// metrics — прикладные метрики Prometheus: HTTP, опрос лент, кэш статей.
// Все методы безопасны для nil-получателя: компоненты можно собирать без метрик.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "cms"

// Значения метки result.
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultEmpty = "empty"
	ResultHit   = "hit"
	ResultMiss  = "miss"
)

// Metrics — набор коллекторов сервиса.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	FeedFetches  *prometheus.CounterVec
	CacheLookups *prometheus.CounterVec
}

// New регистрирует коллекторы в reg. Если reg == nil, создаётся собственный реестр
// без runtime-коллекторов (удобно для тестов).
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "news_feed_fetches_total",
			Help:      "RSS feed fetches by source and result.",
		}, []string{"source", "result"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_cache_lookups_total",
			Help:      "Article list cache lookups by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.FeedFetches, m.CacheLookups)

	return m
}

// NewRegistry — реестр с runtime- и process-коллекторами для /metrics.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// ObserveHTTP фиксирует завершённый HTTP-запрос.
func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}

	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveFeed фиксирует результат опроса одной ленты.
func (m *Metrics) ObserveFeed(source, result string) {
	if m == nil {
		return
	}

	m.FeedFetches.WithLabelValues(source, result).Inc()
}

// ObserveCache фиксирует попадание/промах кэша списка статей.
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}

	m.CacheLookups.WithLabelValues(result).Inc()
}
