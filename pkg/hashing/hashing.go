// Package hashing computes the SHA-256 content digest used as the canonical file identity.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Length of a hex encoded digest.
const HexLength = 64

// HashBytes returns the lowercase hex SHA-256 digest of data.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashReader streams r through SHA-256. Read errors are returned unchanged in meaning.
func HashReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("failed to hash content: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Normalize accepts an optional 0x prefix and any letter case, and returns the canonical lowercase form.
func Normalize(hash string) (string, error) {
	h := strings.ToLower(strings.TrimSpace(hash))
	h = strings.TrimPrefix(h, "0x")

	if len(h) != HexLength {
		return "", fmt.Errorf("invalid hash length: expected %d hex characters, got %d", HexLength, len(h))
	}
	if _, err := hex.DecodeString(h); err != nil {
		return "", fmt.Errorf("invalid hex hash: %w", err)
	}
	return h, nil
}

func IsValid(hash string) bool {
	_, err := Normalize(hash)
	return err == nil
}

// ToBytes32 converts a hex digest into the fixed-size form stored on the ledger.
func ToBytes32(hash string) ([32]byte, error) {
	var out [32]byte

	h, err := Normalize(hash)
	if err != nil {
		return out, err
	}
	b, _ := hex.DecodeString(h)
	copy(out[:], b)
	return out, nil
}

func FromBytes32(b [32]byte) string {
	return hex.EncodeToString(b[:])
}

func IsZero(b [32]byte) bool {
	return b == [32]byte{}
}
