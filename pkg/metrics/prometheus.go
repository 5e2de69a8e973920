package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics for the service.
type Metrics struct {
	SwapsCompleted       prometheus.Counter
	SwapsFailed          prometheus.Counter
	CollectionsCompleted prometheus.Counter
	CollectionsFailed    prometheus.Counter
	ScanRejections       *prometheus.CounterVec
	LedgerWriteFailures  *prometheus.CounterVec
	PortalRequestSeconds *prometheus.HistogramVec
}

// NewMetrics creates and registers the service metrics.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		SwapsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swaps_completed_total",
			Help:      "The total number of completed device swaps",
		}),
		SwapsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "swaps_failed_total",
			Help:      "The total number of failed swap confirmations",
		}),
		CollectionsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collections_completed_total",
			Help:      "The total number of completed device collections",
		}),
		CollectionsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collections_failed_total",
			Help:      "The total number of failed collection commits",
		}),
		ScanRejections: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scan_rejections_total",
			Help:      "Scans rejected during identifier resolution or validation",
		}, []string{"workflow", "reason"}),
		LedgerWriteFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_write_failures_total",
			Help:      "Ledger inserts rejected by the backend",
		}, []string{"table"}),
		PortalRequestSeconds: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "portal_request_seconds",
			Help:      "Latency of calls to the remote inventory portal",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}
