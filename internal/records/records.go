package records

import (
	"strconv"

	"github.com/attestantio/go-eth2-client/spec/phase0"
)

// Kind tags the closed set of record variants. The value doubles as the base
// name of the artifacts a kind is written to (blocks_0.csv, ...).
type Kind string

const (
	KindBlock       Kind = "blocks"
	KindAttestation Kind = "attestations"
	KindDeposit     Kind = "deposits"
	KindExit        Kind = "exits"
	KindState       Kind = "states"
)

// BlockKinds is the kind set derived from the blk namespace, in write order.
var BlockKinds = []Kind{KindBlock, KindAttestation, KindDeposit, KindExit}

// StateKinds is the kind set derived from the ste namespace.
var StateKinds = []Kind{KindState}

// Schema selects between the two historical attestation layouts: the extended
// one carries the attested-to slot and committee index, the reduced one does
// not. All other kinds have a single fixed layout.
type Schema struct {
	AttestationData bool
}

// Columns returns the header row for a kind under this schema.
func (s Schema) Columns(k Kind) []string {
	switch k {
	case KindBlock:
		return []string{"block_root", "parent_root", "state_root", "slot", "proposer_index"}
	case KindAttestation:
		if s.AttestationData {
			return []string{
				"slot", "att_slot", "committee_index", "beacon_block_root",
				"attesting_indices", "source_epoch", "source_block_root",
				"target_epoch", "target_block_root",
			}
		}
		return []string{
			"slot", "beacon_block_root", "attesting_indices",
			"source_epoch", "source_block_root", "target_epoch", "target_block_root",
		}
	case KindDeposit:
		return []string{"slot", "pubkey", "amount"}
	case KindExit:
		return []string{"slot", "exit_epoch", "validator_index"}
	case KindState:
		return []string{"state_root", "slot"}
	default:
		return nil
	}
}

// Record is one flat export row. Row must return values aligned with
// Schema.Columns for the record's kind.
type Record interface {
	Kind() Kind
	Row(s Schema) []string
}

// Block is one record per stored block envelope.
type Block struct {
	Root          string
	ParentRoot    phase0.Root
	StateRoot     phase0.Root
	Slot          phase0.Slot
	ProposerIndex phase0.ValidatorIndex
}

func (r Block) Kind() Kind { return KindBlock }

func (r Block) Row(Schema) []string {
	return []string{
		r.Root,
		r.ParentRoot.String(),
		r.StateRoot.String(),
		formatUint(uint64(r.Slot)),
		formatUint(uint64(r.ProposerIndex)),
	}
}

// Attestation is one record per attestation in a block body.
type Attestation struct {
	Slot             phase0.Slot
	AttSlot          phase0.Slot
	CommitteeIndex   phase0.CommitteeIndex
	BeaconBlockRoot  phase0.Root
	AttestingIndices string
	SourceEpoch      phase0.Epoch
	SourceBlockRoot  phase0.Root
	TargetEpoch      phase0.Epoch
	TargetBlockRoot  phase0.Root
}

func (r Attestation) Kind() Kind { return KindAttestation }

func (r Attestation) Row(s Schema) []string {
	row := make([]string, 0, 9)
	row = append(row, formatUint(uint64(r.Slot)))
	if s.AttestationData {
		row = append(row, formatUint(uint64(r.AttSlot)), formatUint(uint64(r.CommitteeIndex)))
	}
	return append(row,
		r.BeaconBlockRoot.String(),
		r.AttestingIndices,
		formatUint(uint64(r.SourceEpoch)),
		r.SourceBlockRoot.String(),
		formatUint(uint64(r.TargetEpoch)),
		r.TargetBlockRoot.String(),
	)
}

// Deposit is one record per deposit in a block body.
type Deposit struct {
	Slot   phase0.Slot
	Pubkey phase0.BLSPubKey
	Amount phase0.Gwei
}

func (r Deposit) Kind() Kind { return KindDeposit }

func (r Deposit) Row(Schema) []string {
	return []string{
		formatUint(uint64(r.Slot)),
		r.Pubkey.String(),
		formatUint(uint64(r.Amount)),
	}
}

// Exit is one record per voluntary exit in a block body.
type Exit struct {
	Slot           phase0.Slot
	ExitEpoch      phase0.Epoch
	ValidatorIndex phase0.ValidatorIndex
}

func (r Exit) Kind() Kind { return KindExit }

func (r Exit) Row(Schema) []string {
	return []string{
		formatUint(uint64(r.Slot)),
		formatUint(uint64(r.ExitEpoch)),
		formatUint(uint64(r.ValidatorIndex)),
	}
}

// State is one record per stored state object.
type State struct {
	Root string
	Slot phase0.Slot
}

func (r State) Kind() Kind { return KindState }

func (r State) Row(Schema) []string {
	return []string{r.Root, formatUint(uint64(r.Slot))}
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
