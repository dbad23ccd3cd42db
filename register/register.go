// Package register implements the protocol's asymmetric key pair: a G1
// generator, a public value and an optional private scalar. Registers are the
// anchor every proof and re-encryption level is verified against.
package register

import (
	"errors"

	"github.com/logical-mechanism/peace/crypto/core/curves"
)

var (
	// ErrZeroSecret is returned when a register is generated from the zero
	// scalar.
	ErrZeroSecret = errors.New("register: secret scalar must be non-zero")
	// ErrNoSecret is returned when an operation needs the private scalar of a
	// public-only register.
	ErrNoSecret = errors.New("register: private scalar not held")
	// ErrBadGenerator is returned when the generator is not the canonical G1
	// base point.
	ErrBadGenerator = errors.New("register: generator is not the canonical base point")
	// ErrIdentityPublicValue is returned when the public value is the point
	// at infinity.
	ErrIdentityPublicValue = errors.New("register: public value is the identity element")
	// ErrTrivialPublicValue is returned when the public value equals the
	// generator, i.e. a secret of one.
	ErrTrivialPublicValue = errors.New("register: public value equals the generator")
)

// Register holds a key pair over BLS12-381 G1. The private scalar is present
// only on registers owned by this process and is never serialized.
type Register struct {
	generator   *curves.G1Point
	publicValue *curves.G1Point
	secret      *curves.Scalar
}

// Generate derives a secret-known register: the generator is the canonical
// base point and the public value is [secret]G.
func Generate(secret *curves.Scalar) (*Register, error) {
	if secret == nil || secret.IsZero() {
		return nil, ErrZeroSecret
	}
	return &Register{
		generator:   curves.G1Generator(),
		publicValue: curves.G1ScalarBaseMul(secret),
		secret:      secret,
	}, nil
}

// FromPublic constructs a public-only register from explicit (g, u) values,
// e.g. a counterparty's register read off chain. Callers must Validate it
// before accepting any proof against it.
func FromPublic(generator, publicValue *curves.G1Point) *Register {
	return &Register{generator: generator, publicValue: publicValue}
}

// Generator returns the register's generator point.
func (r *Register) Generator() *curves.G1Point {
	return r.generator
}

// PublicValue returns the register's public value.
func (r *Register) PublicValue() *curves.G1Point {
	return r.publicValue
}

// Secret returns the private scalar, or ErrNoSecret for public-only
// registers.
func (r *Register) Secret() (*curves.Scalar, error) {
	if r.secret == nil {
		return nil, ErrNoSecret
	}
	return r.secret, nil
}

// HasSecret reports whether the private scalar is held.
func (r *Register) HasSecret() bool {
	return r.secret != nil
}

// Validate checks the register invariants: the generator must be the
// canonical base point and the public value must be neither the identity nor
// the generator itself. It must run on every register received from an
// untrusted party before any proof is accepted against it.
func (r *Register) Validate() error {
	if r.generator == nil || !r.generator.Equal(curves.G1Generator()) {
		return ErrBadGenerator
	}
	if r.publicValue == nil || r.publicValue.IsIdentity() {
		return ErrIdentityPublicValue
	}
	if r.publicValue.Equal(r.generator) {
		return ErrTrivialPublicValue
	}
	return nil
}

// Scale returns publicValue * factor. The private scalar, if any, is
// untouched; scaling never changes who owns the register.
func (r *Register) Scale(factor *curves.Scalar) *curves.G1Point {
	return r.publicValue.ScalarMul(factor)
}

// Equal compares the public halves of two registers.
func (r *Register) Equal(o *Register) bool {
	return r.generator.Equal(o.generator) && r.publicValue.Equal(o.publicValue)
}
