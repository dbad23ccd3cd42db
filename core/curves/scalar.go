// Package curves provides typed BLS12-381 group elements and scalars for the
// re-encryption protocol. G1 points, G2 points and scalars are distinct types
// carrying their fixed byte length as a type invariant; byte lengths are only
// ever inspected by the decode functions.
package curves

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"golang.org/x/crypto/blake2b"
)

// ScalarSize is the canonical big-endian encoding length of a scalar.
const ScalarSize = 32

// Scalar is an element of the BLS12-381 scalar field Fr.
type Scalar struct {
	inner fr.Element
}

// Order returns the order of the G1/G2 groups (the modulus of Fr).
func Order() *big.Int {
	return fr.Modulus()
}

// NewScalar reduces v modulo the group order.
func NewScalar(v *big.Int) *Scalar {
	s := new(Scalar)
	s.inner.SetBigInt(v)
	return s
}

// ScalarFromBytes interprets data as a big-endian integer and reduces it
// modulo the group order. Any input length is accepted.
func ScalarFromBytes(data []byte) *Scalar {
	s := new(Scalar)
	s.inner.SetBytes(data)
	return s
}

// DecodeScalar parses a canonical 32-byte big-endian scalar. Unlike
// ScalarFromBytes it rejects values at or above the group order.
func DecodeScalar(data []byte) (*Scalar, error) {
	if len(data) != ScalarSize {
		return nil, &GroupMismatchError{Kind: "scalar", Want: ScalarSize, Got: len(data)}
	}
	s := new(Scalar)
	if err := s.inner.SetBytesCanonical(data); err != nil {
		return nil, &InvalidEncodingError{Kind: "scalar", Err: err}
	}
	return s, nil
}

// RandomScalar samples a uniform scalar in [1, order-1] from crypto/rand.
func RandomScalar() (*Scalar, error) {
	s := new(Scalar)
	for {
		if _, err := s.inner.SetRandom(); err != nil {
			return nil, err
		}
		if !s.inner.IsZero() {
			return s, nil
		}
	}
}

// HashToScalar hashes the ASCII domain tag followed by each part with
// blake2b-256 and reduces the digest modulo the group order. It is a pure
// function of its inputs.
func HashToScalar(tag string, parts ...[]byte) *Scalar {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(tag))
	for _, p := range parts {
		h.Write(p)
	}
	return ScalarFromBytes(h.Sum(nil))
}

// Bytes returns the canonical 32-byte big-endian encoding.
func (s *Scalar) Bytes() []byte {
	return s.inner.Marshal()
}

// BigInt returns the scalar as a big integer in [0, order-1].
func (s *Scalar) BigInt() *big.Int {
	return s.inner.BigInt(new(big.Int))
}

// Add returns s + o mod order.
func (s *Scalar) Add(o *Scalar) *Scalar {
	out := new(Scalar)
	out.inner.Add(&s.inner, &o.inner)
	return out
}

// Mul returns s * o mod order.
func (s *Scalar) Mul(o *Scalar) *Scalar {
	out := new(Scalar)
	out.inner.Mul(&s.inner, &o.inner)
	return out
}

// Neg returns -s mod order.
func (s *Scalar) Neg() *Scalar {
	out := new(Scalar)
	out.inner.Neg(&s.inner)
	return out
}

// Zeroize overwrites the scalar with zero. Every pointer to s sees the
// cleared value; callers use it to retire private key material.
func (s *Scalar) Zeroize() {
	s.inner.SetZero()
}

// IsZero reports whether s is zero.
func (s *Scalar) IsZero() bool {
	return s.inner.IsZero()
}

// Equal reports whether two scalars are the same field element.
func (s *Scalar) Equal(o *Scalar) bool {
	return s.inner.Equal(&o.inner)
}
