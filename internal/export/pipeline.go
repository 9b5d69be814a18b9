package export

import (
	"context"
	"fmt"
	"time"

	"github.com/attestantio/go-eth2-client/spec/phase0"
	"go.uber.org/zap"

	"github.com/barnabemonnot/lighthouse-block-export/internal/chaindb"
	"github.com/barnabemonnot/lighthouse-block-export/internal/records"
	"github.com/barnabemonnot/lighthouse-block-export/pkg/metrics"
)

// Namespace names one of the two disjoint key-prefix namespaces of the store.
type Namespace string

const (
	NamespaceBlocks Namespace = "blocks"
	NamespaceStates Namespace = "states"
)

// ParseNamespace validates a namespace name from configuration.
func ParseNamespace(s string) (Namespace, error) {
	switch Namespace(s) {
	case NamespaceBlocks:
		return NamespaceBlocks, nil
	case NamespaceStates:
		return NamespaceStates, nil
	default:
		return "", fmt.Errorf("invalid namespace: %q (want %q or %q)", s, NamespaceBlocks, NamespaceStates)
	}
}

// Options configures one export run.
type Options struct {
	Range        SlotRange
	StepSize     uint64
	FilterPolicy FilterPolicy
	Schema       records.Schema

	// Decode failure policy per namespace. By default a block that fails
	// to decode aborts the run, while a state that fails to decode is
	// logged and skipped.
	BlockDecodePolicy chaindb.DecodePolicy
	StateDecodePolicy chaindb.DecodePolicy
}

// DefaultOptions returns Options with the documented defaults: step size
// 1000, unbounded range, in-range-only counting, extended attestation
// columns, fatal block decode, recovered state decode.
func DefaultOptions() Options {
	return Options{
		StepSize:          1000,
		FilterPolicy:      FilterCount,
		Schema:            records.Schema{AttestationData: true},
		BlockDecodePolicy: chaindb.DecodeFatal,
		StateDecodePolicy: chaindb.DecodeRecovered,
	}
}

// Pipeline drives one forward sequential pass per namespace: cursor, decode,
// filter, extract, accumulate, flush on threshold, final flush. Fully
// synchronous; peak memory is bounded by the step size, not the store size.
type Pipeline struct {
	store  chaindb.Store
	writer BatchWriter
	log    *zap.SugaredLogger
	m      *metrics.Metrics
	opts   Options
}

// NewPipeline validates opts and creates a pipeline. metrics may be nil.
func NewPipeline(store chaindb.Store, writer BatchWriter, log *zap.SugaredLogger, m *metrics.Metrics, opts Options) (*Pipeline, error) {
	if opts.StepSize < 1 {
		return nil, fmt.Errorf("invalid step size: %d (minimum 1)", opts.StepSize)
	}
	if _, err := ParseFilterPolicy(string(opts.FilterPolicy)); err != nil {
		return nil, err
	}
	if opts.Range.End != nil && *opts.Range.End <= opts.Range.Start {
		return nil, fmt.Errorf("invalid slot range: end %d <= start %d", *opts.Range.End, opts.Range.Start)
	}
	return &Pipeline{store: store, writer: writer, log: log, m: m, opts: opts}, nil
}

// parseFunc decodes one value and appends the extracted records to the batch
// when the object's slot is in range. Returns the slot and whether records
// were extracted.
type parseFunc func(key, value []byte, batch *records.Batch) (phase0.Slot, bool, error)

// Export runs a full scan of one namespace.
func (p *Pipeline) Export(ctx context.Context, ns Namespace) error {
	switch ns {
	case NamespaceBlocks:
		return p.scan(ctx, ns, chaindb.BlockPrefix, records.BlockKinds, p.opts.BlockDecodePolicy, p.parseBlock)
	case NamespaceStates:
		return p.scan(ctx, ns, chaindb.StatePrefix, records.StateKinds, p.opts.StateDecodePolicy, p.parseState)
	default:
		return fmt.Errorf("invalid namespace: %q", ns)
	}
}

func (p *Pipeline) scan(
	ctx context.Context,
	ns Namespace,
	prefix []byte,
	kinds []records.Kind,
	decodePolicy chaindb.DecodePolicy,
	parse parseFunc,
) error {
	it := p.store.NewIterator(prefix)
	defer it.Release()

	batch := records.NewBatch(kinds...)
	progress := NewProgress(p.log, p.m, string(ns), p.opts.StepSize)

	for it.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}

		slot, extracted, err := parse(it.Key(), it.Value(), batch)
		if err != nil {
			if p.m != nil {
				p.m.DecodeFailure(string(ns), decodePolicy.String())
			}
			if decodePolicy == chaindb.DecodeRecovered {
				p.log.Warnw("skipping undecodable value",
					"namespace", ns,
					"key", records.RootHex(it.Key()),
					"error", err,
				)
				// The item is still seen; with no slot to report it
				// contributes zero to the running maximum.
				progress.Seen(0)
				continue
			}
			return fmt.Errorf("failed to decode %s value %s: %w", ns, records.RootHex(it.Key()), err)
		}

		progress.Seen(slot)

		if !extracted && p.opts.FilterPolicy == FilterCount {
			continue
		}
		processed := progress.Processed()
		if processed%p.opts.StepSize == 0 && !batch.Empty() {
			if err := p.flush(batchIndex(processed, p.opts.StepSize), batch); err != nil {
				return err
			}
		}
	}
	if err := it.Error(); err != nil {
		return fmt.Errorf("cursor failed scanning %s: %w", ns, err)
	}

	// One last write for the final partial batch.
	if !batch.Empty() {
		if err := p.flush(batchIndex(progress.ProcessedCount(), p.opts.StepSize), batch); err != nil {
			return err
		}
	}

	p.log.Infow("scan complete",
		"namespace", ns,
		"seen", progress.SeenCount(),
		"processed", progress.ProcessedCount(),
		"maxSlot", uint64(progress.MaxSlot()),
	)
	return nil
}

// batchIndex maps the processed count at the moment of flush to a 0-based
// artifact index. Flushes happen at positive multiples of step, plus one
// final partial flush, so (processed-1)/step is strictly increasing across
// the flushes of a run and concatenating artifacts in index order reproduces
// the unbatched sequence.
func batchIndex(processed, step uint64) uint64 {
	if processed == 0 {
		return 0
	}
	return (processed - 1) / step
}

func (p *Pipeline) flush(index uint64, batch *records.Batch) error {
	start := time.Now()
	if err := p.writer.WriteBatch(index, batch); err != nil {
		return fmt.Errorf("failed to flush batch %d: %w", index, err)
	}
	if p.m != nil {
		for _, k := range batch.Kinds() {
			p.m.BatchWritten(string(k), len(batch.Records(k)))
		}
		p.m.ObserveFlushDuration(time.Since(start).Seconds())
	}
	p.log.Infow("batch written", "index", index, "rows", batch.Len())
	batch.Reset()
	return nil
}

func (p *Pipeline) parseBlock(key, value []byte, batch *records.Batch) (phase0.Slot, bool, error) {
	block, err := chaindb.DecodeSignedBeaconBlock(value)
	if err != nil {
		return 0, false, err
	}
	slot := block.Message.Slot
	if !p.opts.Range.Contains(slot) {
		return slot, false, nil
	}
	batch.Add(records.FromBlock(key, block)...)
	return slot, true, nil
}

func (p *Pipeline) parseState(key, value []byte, batch *records.Batch) (phase0.Slot, bool, error) {
	state, err := chaindb.DecodeBeaconState(value)
	if err != nil {
		return 0, false, err
	}
	if !p.opts.Range.Contains(state.Slot) {
		return state.Slot, false, nil
	}
	batch.Add(records.FromState(key, state))
	return state.Slot, true, nil
}
