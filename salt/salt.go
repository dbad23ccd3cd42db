// Package salt provides cryptographically secure salt generation for the
// keystore's key derivation.
package salt

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
)

const (
	// DefaultSaltSize is the recommended salt size (256 bits).
	DefaultSaltSize = 32
	// MinSaltSize is the minimum acceptable salt size (128 bits).
	MinSaltSize = 16
	// MaxSaltSize bounds salt size to prevent resource exhaustion.
	MaxSaltSize = 1024
)

// Salt is an owned random salt value.
type Salt struct {
	value []byte
}

// Generate creates a new random salt of the given size.
func Generate(size int) (*Salt, error) {
	if size < MinSaltSize {
		return nil, fmt.Errorf("salt size too small: minimum %d bytes required", MinSaltSize)
	}
	if size > MaxSaltSize {
		return nil, fmt.Errorf("salt size too large: maximum %d bytes allowed", MaxSaltSize)
	}
	value := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, value); err != nil {
		return nil, fmt.Errorf("failed to generate random salt: %w", err)
	}
	return &Salt{value: value}, nil
}

// GenerateDefault creates a new salt of the recommended size.
func GenerateDefault() (*Salt, error) {
	return Generate(DefaultSaltSize)
}

// FromBytes creates a Salt from existing bytes, e.g. one read back out of a
// keystore file. The input is copied.
func FromBytes(data []byte) (*Salt, error) {
	if len(data) < MinSaltSize {
		return nil, fmt.Errorf("salt too small: minimum %d bytes required, got %d", MinSaltSize, len(data))
	}
	if len(data) > MaxSaltSize {
		return nil, fmt.Errorf("salt too large: maximum %d bytes allowed, got %d", MaxSaltSize, len(data))
	}
	value := make([]byte, len(data))
	copy(value, data)
	return &Salt{value: value}, nil
}

// Bytes returns a copy of the salt bytes.
func (s *Salt) Bytes() []byte {
	if s == nil || s.value == nil {
		return nil
	}
	result := make([]byte, len(s.value))
	copy(result, s.value)
	return result
}

// Size returns the salt length in bytes.
func (s *Salt) Size() int {
	if s == nil {
		return 0
	}
	return len(s.value)
}

// String returns a redacted representation safe for logging.
func (s *Salt) String() string {
	if s == nil || s.value == nil {
		return "Salt{<nil>}"
	}
	return fmt.Sprintf("Salt{size=%d}", len(s.value))
}

// Equal compares two salts in constant time.
func (s *Salt) Equal(other *Salt) bool {
	if s == nil || other == nil {
		return s == other
	}
	return subtle.ConstantTimeCompare(s.value, other.value) == 1
}

// Clear zeros the salt value.
func (s *Salt) Clear() {
	if s != nil && s.value != nil {
		for i := range s.value {
			s.value[i] = 0
		}
		s.value = nil
	}
}

// IsEmpty reports whether the salt is nil or cleared.
func (s *Salt) IsEmpty() bool {
	return s == nil || len(s.value) == 0
}
