package export

import (
	"testing"

	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotRange_Contains(t *testing.T) {
	t.Parallel()

	end := phase0.Slot(100)
	tests := []struct {
		name string
		r    SlotRange
		slot phase0.Slot
		want bool
	}{
		{name: "unbounded accepts zero", r: SlotRange{}, slot: 0, want: true},
		{name: "unbounded accepts large", r: SlotRange{}, slot: 1 << 40, want: true},
		{name: "below start", r: SlotRange{Start: 10}, slot: 9, want: false},
		{name: "at start", r: SlotRange{Start: 10}, slot: 10, want: true},
		{name: "below end", r: SlotRange{End: &end}, slot: 99, want: true},
		{name: "at end is excluded", r: SlotRange{End: &end}, slot: 100, want: false},
		{name: "inside window", r: SlotRange{Start: 10, End: &end}, slot: 50, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.r.Contains(tt.slot))
		})
	}
}

func TestParseFilterPolicy(t *testing.T) {
	t.Parallel()

	p, err := ParseFilterPolicy("extract")
	require.NoError(t, err)
	assert.Equal(t, FilterExtract, p)

	p, err = ParseFilterPolicy("count")
	require.NoError(t, err)
	assert.Equal(t, FilterCount, p)

	_, err = ParseFilterPolicy("bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter policy")
}
