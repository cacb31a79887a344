package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	repositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "asset_repository",
		Name:      "operations_total",
		Help:      "Count of registry repository operations.",
	}, []string{"backend", "operation", "coin", "network", "status"})
	repositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "asset_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of registry repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"backend", "operation", "coin", "network", "status"})
)

// Repository tracks metrics for one registry storage backend.
type Repository struct {
	backend string
}

// NewRepository creates a Repository metrics collector for the named backend.
func NewRepository(backend string) *Repository {
	if backend == "" {
		backend = "unknown"
	}
	return &Repository{backend: backend}
}

// Observe records duration and status of a repository operation.
func (m Repository) Observe(operation string, coin model.Coin, network model.Network, err error, started time.Time) {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}

	status := statusOf(err)
	repositoryRequestsTotal.WithLabelValues(m.backend, operation, string(coin), string(network), status).Inc()
	repositoryRequestDuration.WithLabelValues(m.backend, operation, string(coin), string(network), status).Observe(time.Since(started).Seconds())
}
