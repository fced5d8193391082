// Package fingerprint derives stable content keys for uploaded datasets and
// stored draw results.
//
// A fingerprint is the XXH3-128 hash of the canonical JSON encoding of a
// value, rendered as a hex string. Identical content always maps to the same
// key, so re-uploading a dataset is idempotent. Fingerprints are cache keys,
// not cryptographic digests.
package fingerprint

import (
	"encoding/json"
	"fmt"

	"github.com/zeebo/xxh3"
)

// Sum fingerprints an arbitrary JSON-encodable value.
//
// Struct fields encode in declaration order and map keys are sorted by
// encoding/json, so the encoding is canonical for the types used here.
//
// Parameters:
//   - v: Value to fingerprint
//
// Returns:
//   - string: 32-character hex key
//   - error: JSON encoding failure
func Sum(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode value for fingerprinting: %w", err)
	}

	return SumBytes(data), nil
}

// SumBytes fingerprints a raw byte payload.
//
// Parameters:
//   - data: Bytes to hash
//
// Returns:
//   - string: 32-character hex key
func SumBytes(data []byte) string {
	h := xxh3.Hash128(data)

	return fmt.Sprintf("%016x%016x", h.Hi, h.Lo)
}
