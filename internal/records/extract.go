package records

import (
	"encoding/hex"

	"github.com/attestantio/go-eth2-client/spec/phase0"
	"github.com/prysmaticlabs/go-bitfield"
)

// FromBlock derives the flat records held in one signed block envelope: one
// Block plus zero or more Attestations, Deposits and Exits from the body
// lists, in body order. root is the store key, which is the block root. The
// decoded object is not modified.
func FromBlock(root []byte, signed *phase0.SignedBeaconBlock) []Record {
	msg := signed.Message
	body := msg.Body

	out := make([]Record, 0, 1+len(body.Attestations)+len(body.Deposits)+len(body.VoluntaryExits))
	out = append(out, Block{
		Root:          RootHex(root),
		ParentRoot:    msg.ParentRoot,
		StateRoot:     msg.StateRoot,
		Slot:          msg.Slot,
		ProposerIndex: msg.ProposerIndex,
	})
	for _, att := range body.Attestations {
		out = append(out, Attestation{
			Slot:             msg.Slot,
			AttSlot:          att.Data.Slot,
			CommitteeIndex:   att.Data.Index,
			BeaconBlockRoot:  att.Data.BeaconBlockRoot,
			AttestingIndices: BitlistString(att.AggregationBits),
			SourceEpoch:      att.Data.Source.Epoch,
			SourceBlockRoot:  att.Data.Source.Root,
			TargetEpoch:      att.Data.Target.Epoch,
			TargetBlockRoot:  att.Data.Target.Root,
		})
	}
	for _, dep := range body.Deposits {
		out = append(out, Deposit{
			Slot:   msg.Slot,
			Pubkey: dep.Data.PublicKey,
			Amount: dep.Data.Amount,
		})
	}
	for _, exit := range body.VoluntaryExits {
		out = append(out, Exit{
			Slot:           msg.Slot,
			ExitEpoch:      exit.Message.Epoch,
			ValidatorIndex: exit.Message.ValidatorIndex,
		})
	}
	return out
}

// FromState derives the single record held in one state object. root is the
// store key, which is the state root.
func FromState(root []byte, state *phase0.BeaconState) Record {
	return State{
		Root: RootHex(root),
		Slot: state.Slot,
	}
}

// BitlistString renders an aggregation bit-vector as a string of '1'/'0'
// characters, bit 0 first, one character per committee member.
func BitlistString(bits bitfield.Bitlist) string {
	n := bits.Len()
	buf := make([]byte, n)
	for i := uint64(0); i < n; i++ {
		if bits.BitAt(i) {
			buf[i] = '1'
		} else {
			buf[i] = '0'
		}
	}
	return string(buf)
}

// RootHex renders a raw root with the canonical 0x prefix.
func RootHex(root []byte) string {
	return "0x" + hex.EncodeToString(root)
}
