package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// ComputeFingerprint computes a deterministic hash over named artifacts.
// Formula: SHA256(name_1 \x00 content_1 \x00 ... ) with names sorted ASC.
// Returns hex-encoded hash (64 characters).
func ComputeFingerprint(artifacts map[string][]byte) string {
	names := make([]string, 0, len(artifacts))
	for name := range artifacts {
		names = append(names, name)
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write(artifacts[name])
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
