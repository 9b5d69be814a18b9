package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/barnabemonnot/lighthouse-block-export/internal/records"
)

// BatchWriter persists one accumulated batch under a batch index.
type BatchWriter interface {
	WriteBatch(index uint64, batch *records.Batch) error
}

// CSVWriter writes each batch as one CSV artifact per record kind, named
// <kind>_<index>.csv: a fixed header row, then data rows in arrival order.
// Every kind/index artifact is self-contained and never appended to; a
// failure on one kind leaves the artifacts already written intact.
type CSVWriter struct {
	dir    string
	schema records.Schema
}

// NewCSVWriter creates a writer that places artifacts in dir. The directory
// must exist and be writable.
func NewCSVWriter(dir string, schema records.Schema) *CSVWriter {
	return &CSVWriter{dir: dir, schema: schema}
}

// WriteBatch writes one artifact per kind in the batch's kind set. Kinds that
// saw no records in this batch still get a header-only artifact, so a batch
// index always maps to the full artifact set.
func (w *CSVWriter) WriteBatch(index uint64, batch *records.Batch) error {
	for _, kind := range batch.Kinds() {
		if err := w.writeKind(kind, index, batch.Records(kind)); err != nil {
			return fmt.Errorf("failed to write %s batch %d: %w", kind, index, err)
		}
	}
	return nil
}

func (w *CSVWriter) writeKind(kind records.Kind, index uint64, recs []records.Record) error {
	path := filepath.Join(w.dir, fmt.Sprintf("%s_%d.csv", kind, index))
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(w.schema.Columns(kind)); err != nil {
		f.Close()
		return err
	}
	for _, r := range recs {
		if err := cw.Write(r.Row(w.schema)); err != nil {
			f.Close()
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
