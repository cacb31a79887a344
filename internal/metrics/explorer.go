package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	explorerQueryTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "asset_explorer",
		Name:      "queries_total",
		Help:      "Count of transfer history queries by data source.",
	}, []string{"coin", "network", "source", "degraded"})

	explorerQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "asset_explorer",
		Name:      "query_duration_seconds",
		Help:      "Duration of transfer history queries.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "source"})
)

// Explorer tracks metrics for the read boundary.
type Explorer struct {
	coin    model.Coin
	network model.Network
}

// NewExplorer constructs an Explorer collector.
func NewExplorer(coin model.Coin, network model.Network) *Explorer {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &Explorer{coin: coin, network: network}
}

// ObserveQuery records one transfer history query.
func (m Explorer) ObserveQuery(source model.DataSource, degraded bool, started time.Time) {
	d := "false"
	if degraded {
		d = "true"
	}
	explorerQueryTotal.WithLabelValues(string(m.coin), string(m.network), string(source), d).Inc()
	explorerQueryDuration.WithLabelValues(string(m.coin), string(m.network), string(source)).
		Observe(time.Since(started).Seconds())
}
