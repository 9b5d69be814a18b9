package utils

import "encoding/hex"

// HexToBytes32 converts a hex string (with or without 0x prefix) to a 32-byte
// array, zero-padding short input on the left and trimming long input.
func HexToBytes32(hexStr string) ([32]byte, error) {
	if len(hexStr) >= 2 && hexStr[0:2] == "0x" {
		hexStr = hexStr[2:]
	}
	for len(hexStr) < 64 {
		hexStr = "0" + hexStr
	}
	if len(hexStr) > 64 {
		hexStr = hexStr[:64]
	}
	bytes, err := hex.DecodeString(hexStr)
	if err != nil {
		return [32]byte{}, err
	}
	var result [32]byte
	copy(result[:], bytes)
	return result, nil
}
