package records

import (
	"testing"

	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/stretchr/testify/assert"
)

func TestSchema_Columns(t *testing.T) {
	t.Parallel()

	extended := Schema{AttestationData: true}
	reduced := Schema{AttestationData: false}

	tests := []struct {
		name   string
		schema Schema
		kind   Kind
		want   []string
	}{
		{
			name:   "block columns",
			schema: extended,
			kind:   KindBlock,
			want:   []string{"block_root", "parent_root", "state_root", "slot", "proposer_index"},
		},
		{
			name:   "attestation columns extended",
			schema: extended,
			kind:   KindAttestation,
			want: []string{
				"slot", "att_slot", "committee_index", "beacon_block_root",
				"attesting_indices", "source_epoch", "source_block_root",
				"target_epoch", "target_block_root",
			},
		},
		{
			name:   "attestation columns reduced",
			schema: reduced,
			kind:   KindAttestation,
			want: []string{
				"slot", "beacon_block_root", "attesting_indices",
				"source_epoch", "source_block_root", "target_epoch", "target_block_root",
			},
		},
		{
			name:   "deposit columns",
			schema: extended,
			kind:   KindDeposit,
			want:   []string{"slot", "pubkey", "amount"},
		},
		{
			name:   "exit columns",
			schema: extended,
			kind:   KindExit,
			want:   []string{"slot", "exit_epoch", "validator_index"},
		},
		{
			name:   "state columns",
			schema: extended,
			kind:   KindState,
			want:   []string{"state_root", "slot"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.schema.Columns(tt.kind))
		})
	}
}

func TestRows_AlignWithColumns(t *testing.T) {
	t.Parallel()

	recs := []Record{
		Block{Root: "0xaa"},
		Attestation{AttestingIndices: "101"},
		Deposit{},
		Exit{},
		State{Root: "0xbb"},
	}
	for _, schema := range []Schema{{AttestationData: true}, {AttestationData: false}} {
		for _, r := range recs {
			assert.Len(t, r.Row(schema), len(schema.Columns(r.Kind())),
				"kind %s, attestation data %v", r.Kind(), schema.AttestationData)
		}
	}
}

func TestAttestation_RowVariants(t *testing.T) {
	t.Parallel()

	rec := Attestation{
		Slot:             10,
		AttSlot:          9,
		CommitteeIndex:   3,
		AttestingIndices: "1011",
		SourceEpoch:      1,
		TargetEpoch:      2,
	}

	extended := rec.Row(Schema{AttestationData: true})
	assert.Equal(t, "10", extended[0])
	assert.Equal(t, "9", extended[1])
	assert.Equal(t, "3", extended[2])
	assert.Equal(t, "1011", extended[4])

	reduced := rec.Row(Schema{AttestationData: false})
	assert.Equal(t, "10", reduced[0])
	// att_slot and committee_index are dropped; bits move up
	assert.Equal(t, "1011", reduced[2])
}

func TestBlock_Row(t *testing.T) {
	t.Parallel()

	var parent, state phase0.Root
	parent[0] = 0xab
	state[31] = 0x01

	row := Block{
		Root:          "0x1100000000000000000000000000000000000000000000000000000000000000",
		ParentRoot:    parent,
		StateRoot:     state,
		Slot:          42,
		ProposerIndex: 7,
	}.Row(Schema{})

	assert.Equal(t, "0xab00000000000000000000000000000000000000000000000000000000000000", row[1])
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000001", row[2])
	assert.Equal(t, "42", row[3])
	assert.Equal(t, "7", row[4])
}
