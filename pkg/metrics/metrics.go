package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	Namespace = "exporter"

	// Policy label values for decode failure metrics
	PolicyFatal     = "fatal"
	PolicyRecovered = "recovered"
)

// Metrics tracks the export pipeline: cursor throughput, decode outcomes and
// batch artifact output.
type Metrics struct {
	// Scan progress, by namespace (blocks/states)
	itemsSeen      *prometheus.CounterVec
	itemsProcessed *prometheus.CounterVec
	maxSlotSeen    *prometheus.GaugeVec

	// Decode outcomes, by namespace and policy
	decodeFailures *prometheus.CounterVec

	// Batch output, by record kind
	batchesWritten *prometheus.CounterVec
	rowsWritten    *prometheus.CounterVec
	flushDuration  prometheus.Histogram
}

// New creates a Metrics instance and registers all metrics with the provided
// registerer. Returns an error if any metric registration fails.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		itemsSeen: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "items_seen_total",
			Help:      "Total key/value pairs pulled off the store cursor by namespace",
		}, []string{"namespace"}),
		itemsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "items_processed_total",
			Help:      "Total items that passed the slot filter and were extracted by namespace",
		}, []string{"namespace"}),
		maxSlotSeen: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "max_slot_seen",
			Help:      "Running maximum slot observed across all seen items by namespace",
		}, []string{"namespace"}),
		decodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "decode_failures_total",
			Help:      "Total values that failed to decode by namespace and policy (fatal/recovered)",
		}, []string{"namespace", "policy"}),
		batchesWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "batches_written_total",
			Help:      "Total batch artifacts written by record kind",
		}, []string{"kind"}),
		rowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rows_written_total",
			Help:      "Total data rows written to batch artifacts by record kind",
		}, []string{"kind"}),
		flushDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "flush_duration_seconds",
			Help:      "Time to write one full batch across all record kinds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
	}

	err := errors.Join(
		reg.Register(m.itemsSeen),
		reg.Register(m.itemsProcessed),
		reg.Register(m.maxSlotSeen),
		reg.Register(m.decodeFailures),
		reg.Register(m.batchesWritten),
		reg.Register(m.rowsWritten),
		reg.Register(m.flushDuration),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ItemSeen records one key/value pair pulled off the cursor.
func (m *Metrics) ItemSeen(namespace string) {
	m.itemsSeen.WithLabelValues(namespace).Inc()
}

// ItemProcessed records one item that passed the filter and was extracted.
func (m *Metrics) ItemProcessed(namespace string) {
	m.itemsProcessed.WithLabelValues(namespace).Inc()
}

// SetMaxSlot updates the running maximum observed slot.
func (m *Metrics) SetMaxSlot(namespace string, slot uint64) {
	m.maxSlotSeen.WithLabelValues(namespace).Set(float64(slot))
}

// DecodeFailure records one value that failed to decode under the given policy.
func (m *Metrics) DecodeFailure(namespace, policy string) {
	m.decodeFailures.WithLabelValues(namespace, policy).Inc()
}

// BatchWritten records one flushed artifact and its row count for a kind.
func (m *Metrics) BatchWritten(kind string, rows int) {
	m.batchesWritten.WithLabelValues(kind).Inc()
	m.rowsWritten.WithLabelValues(kind).Add(float64(rows))
}

// ObserveFlushDuration records how long one full batch flush took, in seconds.
func (m *Metrics) ObserveFlushDuration(seconds float64) {
	m.flushDuration.Observe(seconds)
}
