// Package security computes content fingerprints for served pools records.
package security

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Fingerprint returns the keccak256 of payload as 0x-hex
func Fingerprint(payload []byte) string {
	return hexutil.Encode(crypto.Keccak256(payload))
}

// MarshalRecord encodes v as JSON and fingerprints the encoded bytes.
// Struct fields encode in declaration order and map keys sorted, so equal
// records always produce equal fingerprints.
func MarshalRecord(v interface{}) ([]byte, string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal payload: %w", err)
	}
	return payload, Fingerprint(payload), nil
}

// ETag formats a fingerprint as a strong HTTP entity tag
func ETag(fingerprint string) string {
	return `"` + fingerprint + `"`
}

// Matches reports whether an If-None-Match header value covers etag
func Matches(ifNoneMatch, etag string) bool {
	if ifNoneMatch == "" {
		return false
	}
	if ifNoneMatch == "*" {
		return true
	}
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == etag || candidate == "W/"+etag {
			return true
		}
	}
	return false
}
