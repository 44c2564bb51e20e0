package shared

import (
	"crypto/rand"
	"fmt"
	"io"
)

const (
	// StateLength is the number of characters in a CSRF state token.
	StateLength = 16

	stateAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// largest multiple of len(stateAlphabet) that fits in a byte; bytes at or above it are rejected
// so every symbol is equally likely.
const stateCutoff = 256 - 256%len(stateAlphabet)

var stateSource io.Reader = rand.Reader

// GenerateState returns a [StateLength] character token drawn uniformly from [A-Za-z0-9].
func GenerateState() (string, error) {
	return generateState(stateSource, StateLength)
}

func generateState(src io.Reader, n int) (string, error) {
	out := make([]byte, 0, n)
	buf := make([]byte, n*2)

	for len(out) < n {
		if _, err := io.ReadFull(src, buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= stateCutoff {
				continue
			}
			out = append(out, stateAlphabet[int(b)%len(stateAlphabet)])
			if len(out) == n {
				break
			}
		}
	}

	return string(out), nil
}

// IsValidState reports whether s has the shape of a token produced by [GenerateState].
func IsValidState(s string) bool {
	if len(s) != StateLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
