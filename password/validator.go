// Package password validates keystore passphrases against a strength policy.
package password

import (
	"fmt"
	"unicode"
)

// Config defines the passphrase policy.
type Config struct {
	MinLength        int
	MaxLength        int
	RequireUppercase bool
	RequireLowercase bool
	RequireDigits    bool
	RequireSpecial   bool
	MinEntropy       float64 // bits
}

// DefaultConfig returns the policy keystore files are sealed under.
func DefaultConfig() *Config {
	return &Config{
		MinLength:        12,
		MaxLength:        128,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireDigits:    true,
		RequireSpecial:   true,
		MinEntropy:       50.0,
	}
}

// Validator checks passphrases against a policy.
type Validator struct {
	config *Config
}

// NewValidator creates a validator. A nil config means DefaultConfig.
func NewValidator(config *Config) *Validator {
	if config == nil {
		config = DefaultConfig()
	}
	return &Validator{config: config}
}

// Validate reports the first policy violation of the passphrase, or nil.
func (v *Validator) Validate(passphrase []byte) error {
	if len(passphrase) < v.config.MinLength {
		return fmt.Errorf("passphrase must be at least %d characters", v.config.MinLength)
	}
	if len(passphrase) > v.config.MaxLength {
		return fmt.Errorf("passphrase must not exceed %d characters", v.config.MaxLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, ch := range string(passphrase) {
		switch {
		case unicode.IsUpper(ch):
			hasUpper = true
		case unicode.IsLower(ch):
			hasLower = true
		case unicode.IsDigit(ch):
			hasDigit = true
		case unicode.IsSpace(ch):
			// allowed, counts toward nothing
		case unicode.IsPunct(ch) || unicode.IsSymbol(ch):
			hasSpecial = true
		}
	}

	if v.config.RequireUppercase && !hasUpper {
		return fmt.Errorf("passphrase must contain at least one uppercase letter")
	}
	if v.config.RequireLowercase && !hasLower {
		return fmt.Errorf("passphrase must contain at least one lowercase letter")
	}
	if v.config.RequireDigits && !hasDigit {
		return fmt.Errorf("passphrase must contain at least one digit")
	}
	if v.config.RequireSpecial && !hasSpecial {
		return fmt.Errorf("passphrase must contain at least one special character")
	}

	entropy := v.estimateEntropy(passphrase)
	if entropy < v.config.MinEntropy {
		return fmt.Errorf("passphrase entropy too low: %.1f bits (minimum: %.1f)",
			entropy, v.config.MinEntropy)
	}
	return nil
}

// estimateEntropy approximates passphrase entropy as length times the bit
// width of the observed character pool.
func (v *Validator) estimateEntropy(passphrase []byte) float64 {
	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, b := range passphrase {
		r := rune(b)
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	poolSize := 0
	if hasLower {
		poolSize += 26
	}
	if hasUpper {
		poolSize += 26
	}
	if hasDigit {
		poolSize += 10
	}
	if hasSpecial {
		poolSize += 32
	}
	if poolSize == 0 {
		return 0
	}

	bitsPerChar := 0.0
	for temp := poolSize; temp > 0; temp >>= 1 {
		bitsPerChar++
	}
	return float64(len(passphrase)) * bitsPerChar
}
