package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch_AddPreservesOrder(t *testing.T) {
	t.Parallel()

	b := NewBatch(BlockKinds...)
	b.Add(
		Block{Slot: 1},
		Attestation{Slot: 1, AttSlot: 0},
		Attestation{Slot: 1, AttSlot: 1},
		Block{Slot: 2},
		Deposit{Slot: 2},
	)

	blocks := b.Records(KindBlock)
	require.Len(t, blocks, 2)
	assert.EqualValues(t, 1, blocks[0].(Block).Slot)
	assert.EqualValues(t, 2, blocks[1].(Block).Slot)

	atts := b.Records(KindAttestation)
	require.Len(t, atts, 2)
	assert.EqualValues(t, 0, atts[0].(Attestation).AttSlot)
	assert.EqualValues(t, 1, atts[1].(Attestation).AttSlot)

	assert.Len(t, b.Records(KindDeposit), 1)
	assert.Empty(t, b.Records(KindExit))
	assert.Equal(t, 5, b.Len())
}

func TestBatch_IgnoresForeignKinds(t *testing.T) {
	t.Parallel()

	b := NewBatch(StateKinds...)
	b.Add(Block{Slot: 1}, State{Slot: 1})

	assert.Equal(t, 1, b.Len())
	assert.Empty(t, b.Records(KindBlock))
	assert.Len(t, b.Records(KindState), 1)
}

func TestBatch_EmptyAndReset(t *testing.T) {
	t.Parallel()

	b := NewBatch(BlockKinds...)
	assert.True(t, b.Empty())

	b.Add(Exit{Slot: 9})
	assert.False(t, b.Empty())

	b.Reset()
	assert.True(t, b.Empty())
	assert.Equal(t, BlockKinds, b.Kinds())

	// usable after reset
	b.Add(Block{Slot: 3})
	assert.Equal(t, 1, b.Len())
}
