package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	syncPassesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "send",
			Subsystem: "mirror",
			Name:      "sync_passes_total",
			Help:      "Synchronization passes by outcome",
		},
		[]string{"outcome"},
	)

	barrierSkipsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "send",
			Subsystem: "mirror",
			Name:      "barrier_skips_total",
			Help:      "Writes skipped because the target field was focused",
		},
		[]string{"field"},
	)

	guardRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "send",
			Subsystem: "inputguard",
			Name:      "rejections_total",
			Help:      "Input rejected by the guard layer",
		},
		[]string{"reason"},
	)

	priceFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "send",
			Subsystem: "price",
			Name:      "fetches_total",
			Help:      "Price fetch attempts by result",
		},
		[]string{"result"},
	)

	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "send",
			Subsystem: "ws",
			Name:      "sessions_active",
			Help:      "Currently connected send-flow sessions",
		},
	)
)

func RecordSyncPass(outcome string) {
	syncPassesTotal.WithLabelValues(outcome).Inc()
}

func RecordBarrierSkip(field string) {
	barrierSkipsTotal.WithLabelValues(field).Inc()
}

func RecordGuardRejection(reason string) {
	guardRejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordPriceFetch takes one of: ok, unavailable, error, superseded.
func RecordPriceFetch(result string) {
	priceFetchesTotal.WithLabelValues(result).Inc()
}

func SessionOpened() {
	sessionsActive.Inc()
}

func SessionClosed() {
	sessionsActive.Dec()
}
