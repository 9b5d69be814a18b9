// Package testutil builds structurally complete phase0 objects for tests.
// fastssz marshalling requires every fixed-size field and nested pointer to
// be populated, so the constructors here fill them with deterministic values.
package testutil

import (
	"testing"

	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/prysmaticlabs/go-bitfield"
	"github.com/stretchr/testify/require"

	"github.com/barnabemonnot/lighthouse-block-export/pkg/utils"
)

// Root returns a root with the last byte set to b.
func Root(b byte) phase0.Root {
	var r phase0.Root
	r[31] = b
	return r
}

// RootFromHex parses a 0x-prefixed hex string into a root.
func RootFromHex(t *testing.T, s string) phase0.Root {
	t.Helper()
	b, err := utils.HexToBytes32(s)
	require.NoError(t, err)
	return phase0.Root(b)
}

// SignedBlock builds a signed block envelope at the given slot with empty
// body lists. Callers append attestations/deposits/exits as needed.
func SignedBlock(slot phase0.Slot) *phase0.SignedBeaconBlock {
	return &phase0.SignedBeaconBlock{
		Message: &phase0.BeaconBlock{
			Slot:          slot,
			ProposerIndex: phase0.ValidatorIndex(uint64(slot) % 1024),
			ParentRoot:    Root(1),
			StateRoot:     Root(2),
			Body: &phase0.BeaconBlockBody{
				ETH1Data: &phase0.ETH1Data{
					DepositRoot: Root(3),
					BlockHash:   make([]byte, 32),
				},
				ProposerSlashings: []*phase0.ProposerSlashing{},
				AttesterSlashings: []*phase0.AttesterSlashing{},
				Attestations:      []*phase0.Attestation{},
				Deposits:          []*phase0.Deposit{},
				VoluntaryExits:    []*phase0.SignedVoluntaryExit{},
			},
		},
	}
}

// Attestation builds an attestation voting for attSlot with the given
// aggregation bits (one 0/1 value per committee member).
func Attestation(attSlot phase0.Slot, index phase0.CommitteeIndex, bits ...byte) *phase0.Attestation {
	agg := bitfield.NewBitlist(uint64(len(bits)))
	for i, v := range bits {
		if v != 0 {
			agg.SetBitAt(uint64(i), true)
		}
	}
	return &phase0.Attestation{
		AggregationBits: agg,
		Data: &phase0.AttestationData{
			Slot:            attSlot,
			Index:           index,
			BeaconBlockRoot: Root(4),
			Source:          &phase0.Checkpoint{Epoch: 1, Root: Root(5)},
			Target:          &phase0.Checkpoint{Epoch: 2, Root: Root(6)},
		},
	}
}

// Deposit builds a deposit with a distinguishable pubkey byte.
func Deposit(pubkeyByte byte, amount phase0.Gwei) *phase0.Deposit {
	proof := make([][]byte, 33)
	for i := range proof {
		proof[i] = make([]byte, 32)
	}
	var pubkey phase0.BLSPubKey
	pubkey[47] = pubkeyByte
	return &phase0.Deposit{
		Proof: proof,
		Data: &phase0.DepositData{
			PublicKey:             pubkey,
			WithdrawalCredentials: make([]byte, 32),
			Amount:                amount,
		},
	}
}

// Exit builds a signed voluntary exit.
func Exit(epoch phase0.Epoch, validator phase0.ValidatorIndex) *phase0.SignedVoluntaryExit {
	return &phase0.SignedVoluntaryExit{
		Message: &phase0.VoluntaryExit{
			Epoch:          epoch,
			ValidatorIndex: validator,
		},
	}
}

// BlockSSZ marshals a signed block envelope to its wire form.
func BlockSSZ(t *testing.T, block *phase0.SignedBeaconBlock) []byte {
	t.Helper()
	data, err := block.MarshalSSZ()
	require.NoError(t, err)
	return data
}

// BeaconState builds a beacon state at the given slot with all fixed-size
// vectors allocated to their canonical lengths.
func BeaconState(slot phase0.Slot) *phase0.BeaconState {
	return &phase0.BeaconState{
		Slot: slot,
		Fork: &phase0.Fork{Epoch: 0},
		LatestBlockHeader: &phase0.BeaconBlockHeader{
			Slot: slot,
		},
		BlockRoots:      make([]phase0.Root, 8192),
		StateRoots:      make([]phase0.Root, 8192),
		HistoricalRoots: []phase0.Root{},
		ETH1Data: &phase0.ETH1Data{
			BlockHash: make([]byte, 32),
		},
		ETH1DataVotes:               []*phase0.ETH1Data{},
		Validators:                  []*phase0.Validator{},
		Balances:                    []phase0.Gwei{},
		RANDAOMixes:                 make([]phase0.Root, 65536),
		Slashings:                   make([]phase0.Gwei, 8192),
		PreviousEpochAttestations:   []*phase0.PendingAttestation{},
		CurrentEpochAttestations:    []*phase0.PendingAttestation{},
		JustificationBits:           bitfield.NewBitvector4(),
		PreviousJustifiedCheckpoint: &phase0.Checkpoint{},
		CurrentJustifiedCheckpoint:  &phase0.Checkpoint{},
		FinalizedCheckpoint:         &phase0.Checkpoint{},
	}
}

// StateSSZ marshals a beacon state to its wire form.
func StateSSZ(t *testing.T, state *phase0.BeaconState) []byte {
	t.Helper()
	data, err := state.MarshalSSZ()
	require.NoError(t, err)
	return data
}
