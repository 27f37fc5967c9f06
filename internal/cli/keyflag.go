package cli

import (
	"encoding/hex"
	"fmt"
)

// parseDataKey decodes a 16-character hex string into the 8-byte data key
// every X76/ZS01 operation is keyed on. An empty string is the factory
// default all-zero key.
func parseDataKey(s string) ([8]byte, error) {
	var key [8]byte
	if s == "" {
		return key, nil
	}

	raw, err := hex.DecodeString(s)
	if err != nil {
		return key, fmt.Errorf("--data-key: %w", err)
	}
	if len(raw) != len(key) {
		return key, fmt.Errorf("--data-key: decoded to %d bytes, want %d", len(raw), len(key))
	}
	copy(key[:], raw)
	return key, nil
}
