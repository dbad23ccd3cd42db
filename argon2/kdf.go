// Package argon2 derives keystore encryption keys from passphrases with
// Argon2id.
package argon2

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Config defines Argon2id parameters.
type Config struct {
	Time        uint32 // number of iterations
	Memory      uint32 // memory in KiB
	Parallelism uint8  // number of threads
	SaltLength  uint32 // salt length in bytes
	KeyLength   uint32 // output key length in bytes
}

// DefaultConfig returns general-purpose parameters.
func DefaultConfig() *Config {
	return &Config{
		Time:        1,
		Memory:      64 * 1024,
		Parallelism: 4,
		SaltLength:  32,
		KeyLength:   32,
	}
}

// KeystoreConfig returns the parameters sealed keystore files are derived
// with. They are part of the on-disk format; changing them breaks every
// existing keystore file.
func KeystoreConfig() *Config {
	return &Config{
		Time:        1,
		Memory:      4 * 1024,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// KDF implements Argon2id key derivation with fixed parameters.
type KDF struct {
	config *Config
}

// New creates a KDF. A nil config means DefaultConfig.
func New(config *Config) *KDF {
	if config == nil {
		config = DefaultConfig()
	}
	return &KDF{config: config}
}

// DeriveKey derives a key from a passphrase and salt. Deterministic for a
// given config.
func (k *KDF) DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(
		passphrase,
		salt,
		k.config.Time,
		k.config.Memory,
		k.config.Parallelism,
		k.config.KeyLength,
	)
}

// GenerateSalt samples a fresh random salt of the configured length.
func (k *KDF) GenerateSalt() ([]byte, error) {
	salt := make([]byte, k.config.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// ValidateConfig rejects parameter choices below safe floors.
func ValidateConfig(config *Config) error {
	if config.Time < 1 {
		return fmt.Errorf("time must be at least 1")
	}
	if config.Memory < 4*1024 {
		return fmt.Errorf("memory must be at least 4MB")
	}
	if config.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1")
	}
	if config.SaltLength < 8 {
		return fmt.Errorf("salt length must be at least 8 bytes")
	}
	if config.KeyLength < 16 {
		return fmt.Errorf("key length must be at least 16 bytes")
	}
	return nil
}
