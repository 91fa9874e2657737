package idhash

import (
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
)

// runCodeBytes is how much of the fingerprint the short code keeps.
const runCodeBytes = 8

// RunCode renders the first 8 bytes of a hex fingerprint in base58,
// short enough for log lines and file headers.
func RunCode(fingerprint string) (string, error) {
	raw, err := hex.DecodeString(fingerprint)
	if err != nil {
		return "", fmt.Errorf("decode fingerprint: %w", err)
	}
	if len(raw) < runCodeBytes {
		return "", fmt.Errorf("fingerprint too short: %d bytes", len(raw))
	}
	return base58.Encode(raw[:runCodeBytes]), nil
}
