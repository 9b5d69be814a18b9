package export

import (
	"time"

	"github.com/attestantio/go-eth2-client/spec/phase0"
	"go.uber.org/zap"

	"github.com/barnabemonnot/lighthouse-block-export/pkg/metrics"
)

// Progress tracks the two scan counters and the running maximum observed slot.
// seen counts every key/value pair pulled off the cursor; processed counts
// items per the configured filter policy. The max slot doubles as an
// approximate denominator since the total item count of a forward-only scan
// is unknown up front.
type Progress struct {
	log       *zap.SugaredLogger
	m         *metrics.Metrics
	namespace string
	step      uint64
	started   time.Time

	seen      uint64
	processed uint64
	maxSlot   phase0.Slot
}

// NewProgress creates a tracker for one namespace scan. step must be >= 1;
// metrics may be nil.
func NewProgress(log *zap.SugaredLogger, m *metrics.Metrics, namespace string, step uint64) *Progress {
	return &Progress{
		log:       log,
		m:         m,
		namespace: namespace,
		step:      step,
		started:   time.Now(),
	}
}

// Seen records one item pulled off the cursor and folds its slot into the
// running maximum. Emits a status line every step items seen.
func (p *Progress) Seen(slot phase0.Slot) {
	p.seen++
	if slot > p.maxSlot {
		p.maxSlot = slot
	}
	if p.m != nil {
		p.m.ItemSeen(p.namespace)
		p.m.SetMaxSlot(p.namespace, uint64(p.maxSlot))
	}
	if p.seen%p.step == 0 {
		p.log.Infow("scan progress",
			"namespace", p.namespace,
			"seen", p.seen,
			"maxSlot", uint64(p.maxSlot),
			"elapsed", time.Since(p.started).Round(time.Millisecond),
		)
	}
}

// Processed records one item that counts towards batch-boundary arithmetic
// and returns the new processed count. Emits a status line every step items
// processed.
func (p *Progress) Processed() uint64 {
	p.processed++
	if p.m != nil {
		p.m.ItemProcessed(p.namespace)
	}
	if p.processed%p.step == 0 {
		p.log.Infow("items processed",
			"namespace", p.namespace,
			"processed", p.processed,
			"elapsed", time.Since(p.started).Round(time.Millisecond),
		)
	}
	return p.processed
}

// SeenCount returns the number of items pulled off the cursor so far.
func (p *Progress) SeenCount() uint64 { return p.seen }

// ProcessedCount returns the number of items counted as processed so far.
func (p *Progress) ProcessedCount() uint64 { return p.processed }

// MaxSlot returns the running maximum observed slot.
func (p *Progress) MaxSlot() phase0.Slot { return p.maxSlot }
