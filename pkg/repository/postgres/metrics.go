package postgres

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"domainkit/pkg/metrics"
)

// Metrics holds the optional prometheus instrumentation for repositories.
type Metrics struct {
	// QueryDuration observes the time repository operations spend against the
	// database, labelled by table and operation.
	QueryDuration *prometheus.HistogramVec
	// Fallbacks counts queries that could not be translated to SQL and were
	// answered by in-memory filtering, labelled by table.
	Fallbacks *prometheus.CounterVec
}

// NewMetrics registers and returns repository metrics on the given
// registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "domainkit",
			Subsystem: "repository",
			Name:      "query_duration_seconds",
			Help:      "Time spent executing repository operations.",
			Buckets:   metrics.DefaultBuckets,
		}, []string{"table", "operation"}),
		Fallbacks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "domainkit",
			Subsystem: "repository",
			Name:      "query_fallbacks_total",
			Help:      "Queries answered by in-memory filtering because the specification has no filter translation.",
		}, []string{"table"}),
	}
}

func (m *Metrics) observe(table, operation string, start time.Time) {
	if m == nil {
		return
	}
	m.QueryDuration.WithLabelValues(table, operation).Observe(time.Since(start).Seconds())
}

func (m *Metrics) fallback(table string) {
	if m == nil {
		return
	}
	m.Fallbacks.WithLabelValues(table).Inc()
}
