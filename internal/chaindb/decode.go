package chaindb

import (
	"fmt"

	"github.com/attestantio/go-eth2-client/spec/phase0"
)

// DecodePolicy names what a namespace does with a value that fails to decode.
type DecodePolicy int

const (
	// DecodeFatal aborts the run on the first decode failure.
	DecodeFatal DecodePolicy = iota
	// DecodeRecovered logs the failure, skips the item and keeps scanning.
	DecodeRecovered
)

func (p DecodePolicy) String() string {
	switch p {
	case DecodeFatal:
		return "fatal"
	case DecodeRecovered:
		return "recovered"
	default:
		return fmt.Sprintf("DecodePolicy(%d)", int(p))
	}
}

// DecodeSignedBeaconBlock decodes an SSZ-encoded block envelope from the blk
// namespace.
func DecodeSignedBeaconBlock(data []byte) (*phase0.SignedBeaconBlock, error) {
	var block phase0.SignedBeaconBlock
	if err := block.UnmarshalSSZ(data); err != nil {
		return nil, fmt.Errorf("failed to decode signed beacon block: %w", err)
	}
	return &block, nil
}

// DecodeBeaconState decodes an SSZ-encoded state object from the ste
// namespace.
func DecodeBeaconState(data []byte) (*phase0.BeaconState, error) {
	var state phase0.BeaconState
	if err := state.UnmarshalSSZ(data); err != nil {
		return nil, fmt.Errorf("failed to decode beacon state: %w", err)
	}
	return &state, nil
}
