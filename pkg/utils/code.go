package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

const digits = "0123456789"

// GenerateNumericCode returns a crypto-random string of length digits.
func GenerateNumericCode(length int) (string, error) {
	max := big.NewInt(int64(len(digits)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		b[i] = digits[n.Int64()]
	}
	return string(b), nil
}

// HashCode is the lookup key stored for a one-time code.
func HashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
