package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const maxExternalIDLength = 128

// Generator creates opaque IDs used to correlate requests in logs.
type Generator interface {
	NewID() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// Sanitize accepts a caller-supplied ID when it is short and printable ASCII,
// and returns "" otherwise.
func Sanitize(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" || len(value) > maxExternalIDLength {
		return ""
	}
	for i := 0; i < len(value); i++ {
		if value[i] < 0x21 || value[i] > 0x7e {
			return ""
		}
	}
	return value
}
