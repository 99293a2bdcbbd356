package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics - все метрики сервиса рассылок
type Metrics struct {
	// Broadcast CRUD
	BroadcastsCreated prometheus.Counter
	BroadcastsUpdated prometheus.Counter
	BroadcastsDeleted prometheus.Counter

	// Visibility
	VisibilityChecks  *prometheus.CounterVec
	BroadcastsServed  prometheus.Counter
	Acknowledgements  prometheus.Counter
	AncestorCacheHits *prometheus.CounterVec
	ActiveBroadcasts  prometheus.Gauge

	// HTTP
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

var (
	defaultMetrics *Metrics
	once           sync.Once
)

// GetDefaultMetrics - promauto регистрирует в глобальном реестре, поэтому экземпляр один
func GetDefaultMetrics() *Metrics {
	once.Do(func() {
		defaultMetrics = newMetrics()
	})
	return defaultMetrics
}

func newMetrics() *Metrics {
	return &Metrics{
		BroadcastsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "broadcast_created_total",
			Help: "Total number of broadcasts created",
		}),
		BroadcastsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "broadcast_updated_total",
			Help: "Total number of broadcasts updated",
		}),
		BroadcastsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "broadcast_deleted_total",
			Help: "Total number of broadcasts deleted",
		}),
		VisibilityChecks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "broadcast_visibility_checks_total",
				Help: "Total number of presence checks by result",
			},
			[]string{"result"},
		),
		BroadcastsServed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "broadcast_served_total",
			Help: "Total number of broadcasts returned to users",
		}),
		Acknowledgements: promauto.NewCounter(prometheus.CounterOpts{
			Name: "broadcast_acknowledgements_total",
			Help: "Total number of acknowledgements recorded",
		}),
		AncestorCacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "broadcast_context_cache_lookups_total",
				Help: "Ancestor chain cache lookups by outcome",
			},
			[]string{"outcome"},
		),
		ActiveBroadcasts: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "broadcast_active",
			Help: "Number of broadcasts inside their display window",
		}),
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "broadcast_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "broadcast_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// RecordCheck учитывает результат легкого опроса
func (m *Metrics) RecordCheck(found bool) {
	if found {
		m.VisibilityChecks.WithLabelValues("found").Inc()
		return
	}
	m.VisibilityChecks.WithLabelValues("empty").Inc()
}

func (m *Metrics) RecordCacheLookup(hit bool) {
	if hit {
		m.AncestorCacheHits.WithLabelValues("hit").Inc()
		return
	}
	m.AncestorCacheHits.WithLabelValues("miss").Inc()
}
