package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-assets/internal/asset/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncBlockTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "sync_controller",
		Name:      "blocks_total",
		Help:      "Count of block processing attempts.",
	}, []string{"coin", "network", "status"})

	syncBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "sync_controller",
		Name:      "block_duration_seconds",
		Help:      "Duration of processing a single block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	syncBlockTransactions = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "sync_controller",
		Name:      "block_transactions",
		Help:      "Number of transactions per processed block.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"coin", "network"})

	syncOutputsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "sync_controller",
		Name:      "asset_outputs_total",
		Help:      "Count of asset outputs by outcome.",
	}, []string{"coin", "network", "outcome"})

	syncCursorHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "sync_controller",
		Name:      "cursor_height",
		Help:      "Last fully processed block height.",
	}, []string{"coin", "network"})

	syncState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "sync_controller",
		Name:      "state",
		Help:      "Current controller state, 1 for the active state.",
	}, []string{"coin", "network", "state"})

	syncBackoffSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "sync_controller",
		Name:      "backoff_seconds",
		Help:      "Backoff delays applied after transport failures.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
	}, []string{"coin", "network"})

	syncResyncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "sync_controller",
		Name:      "resync_total",
		Help:      "Count of executed resyncs.",
	}, []string{"coin", "network", "mode", "reason", "status"})
)

// Outcome labels for asset outputs.
const (
	OutcomeInserted          = "inserted"
	OutcomeDuplicate         = "duplicate"
	OutcomeSkippedMalformed  = "skipped_malformed"
	OutcomeSkippedUnresolved = "skipped_unresolved"
)

// SyncController tracks metrics for the sync controller loop.
type SyncController struct {
	coin    model.Coin
	network model.Network
	states  []string
}

// NewSyncController constructs a SyncController collector. states lists every
// state name so that exactly one of them reports 1.
func NewSyncController(coin model.Coin, network model.Network, states ...string) *SyncController {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &SyncController{coin: coin, network: network, states: states}
}

// ObserveBlock records processing of one block.
func (m SyncController) ObserveBlock(err error, transactions int, started time.Time) {
	status := statusOf(err)
	syncBlockTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	syncBlockDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
	if err == nil {
		syncBlockTransactions.WithLabelValues(string(m.coin), string(m.network)).Observe(float64(transactions))
	}
}

// ObserveOutputs adds per-outcome asset output counts of a block.
func (m SyncController) ObserveOutputs(inserted, duplicates, malformed, unresolved int) {
	add := func(outcome string, n int) {
		if n > 0 {
			syncOutputsTotal.WithLabelValues(string(m.coin), string(m.network), outcome).Add(float64(n))
		}
	}
	add(OutcomeInserted, inserted)
	add(OutcomeDuplicate, duplicates)
	add(OutcomeSkippedMalformed, malformed)
	add(OutcomeSkippedUnresolved, unresolved)
}

// ObserveCursor exports the persisted cursor height.
func (m SyncController) ObserveCursor(height uint64) {
	syncCursorHeight.WithLabelValues(string(m.coin), string(m.network)).Set(float64(height))
}

// ObserveState marks state as the active controller state.
func (m SyncController) ObserveState(state string) {
	for _, s := range m.states {
		v := 0.0
		if s == state {
			v = 1
		}
		syncState.WithLabelValues(string(m.coin), string(m.network), s).Set(v)
	}
}

// ObserveBackoff records a backoff delay.
func (m SyncController) ObserveBackoff(d time.Duration) {
	syncBackoffSeconds.WithLabelValues(string(m.coin), string(m.network)).Observe(d.Seconds())
}

// ObserveResync records an executed resync.
func (m SyncController) ObserveResync(mode model.ResyncMode, reason string, err error) {
	syncResyncTotal.WithLabelValues(string(m.coin), string(m.network), string(mode), reason, statusOf(err)).Inc()
}
