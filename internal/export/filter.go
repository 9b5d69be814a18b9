package export

import (
	"fmt"

	"github.com/attestantio/go-eth2-client/spec/phase0"
)

// SlotRange is the inclusive-start, exclusive-end slot window an export run is
// restricted to. A nil End means unbounded.
type SlotRange struct {
	Start phase0.Slot
	End   *phase0.Slot
}

// Contains reports whether a slot falls inside the window.
func (r SlotRange) Contains(s phase0.Slot) bool {
	if s < r.Start {
		return false
	}
	return r.End == nil || s < *r.End
}

// FilterPolicy selects what out-of-range items count towards. Under
// FilterExtract they are decoded, skipped for extraction, but still advance
// the processed counter used for progress and batch-boundary arithmetic.
// Under FilterCount they are excluded from that counter entirely, so batch
// sizes reflect in-range items only.
type FilterPolicy string

const (
	FilterExtract FilterPolicy = "extract"
	FilterCount   FilterPolicy = "count"
)

// ParseFilterPolicy validates a policy name from configuration.
func ParseFilterPolicy(s string) (FilterPolicy, error) {
	switch FilterPolicy(s) {
	case FilterExtract:
		return FilterExtract, nil
	case FilterCount:
		return FilterCount, nil
	default:
		return "", fmt.Errorf("invalid filter policy: %q (want %q or %q)", s, FilterExtract, FilterCount)
	}
}
