package common

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// GenerateRandByteArray returns n cryptographically random bytes.
func GenerateRandByteArray(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// MakeRandHexString returns a hex string built from n random bytes.
func MakeRandHexString(n int) (string, error) {
	b, err := GenerateRandByteArray(n)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsBlank reports whether s contains only whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
