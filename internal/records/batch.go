package records

// Batch buffers one ordered record sequence per kind between flushes. It is
// owned by the pipeline driver; the kind set is fixed at construction so a
// flush always produces the same artifact set, header-only when a kind saw no
// records.
type Batch struct {
	kinds []Kind
	buf   map[Kind][]Record
}

// NewBatch creates an empty batch covering the given kinds.
func NewBatch(kinds ...Kind) *Batch {
	buf := make(map[Kind][]Record, len(kinds))
	for _, k := range kinds {
		buf[k] = nil
	}
	return &Batch{kinds: kinds, buf: buf}
}

// Add appends records to their kind buffers, preserving arrival order.
// Records of kinds outside the batch's kind set are ignored.
func (b *Batch) Add(recs ...Record) {
	for _, r := range recs {
		k := r.Kind()
		if _, ok := b.buf[k]; !ok {
			continue
		}
		b.buf[k] = append(b.buf[k], r)
	}
}

// Kinds returns the batch's kind set in construction order.
func (b *Batch) Kinds() []Kind {
	return b.kinds
}

// Records returns the buffered records for a kind in arrival order.
func (b *Batch) Records(k Kind) []Record {
	return b.buf[k]
}

// Len returns the total number of buffered records across all kinds.
func (b *Batch) Len() int {
	n := 0
	for _, recs := range b.buf {
		n += len(recs)
	}
	return n
}

// Empty reports whether no kind holds any records.
func (b *Batch) Empty() bool {
	return b.Len() == 0
}

// Reset clears all buffers, keeping the kind set.
func (b *Batch) Reset() {
	for k := range b.buf {
		b.buf[k] = nil
	}
}
