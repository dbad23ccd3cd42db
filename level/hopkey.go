package level

import (
	"github.com/logical-mechanism/peace/crypto/core/curves"
)

// HopKey derives the key digest of one chain entry from the holder's current
// shared point:
//
//	k = e(r2g1, H0) [* e(r1, r2g2)] / e(r1, shared)
//
// hashed into 32 bytes. r2g2 is nil for a half level and set for a full one.
func HopKey(r1, r2g1 *curves.G1Point, r2g2 *curves.G2Point, shared *curves.G2Point) ([]byte, error) {
	num, err := curves.Pair(r2g1, h0)
	if err != nil {
		return nil, err
	}
	if r2g2 != nil {
		t, err := curves.Pair(r1, r2g2)
		if err != nil {
			return nil, err
		}
		num = num.Mul(t)
	}
	den, err := curves.Pair(r1, shared)
	if err != nil {
		return nil, err
	}
	return curves.HashGT(num.Div(den)), nil
}

// Chain is the full hop history of one asset: the current half level first,
// then the archived full levels from newest to oldest.
type Chain struct {
	Half  *HalfLevel
	Fulls []*FullLevel
}

// DeriveKEM walks the chain with the holder's private scalar and recovers
// the key-encapsulation material the capsule was sealed under, along with
// the entry level's r1 point (the cipher context). Only the current holder's
// scalar produces the correct final key; everyone else ends up with garbage
// that fails AEAD authentication downstream.
func (c *Chain) DeriveKEM(secret *curves.Scalar) (kem []byte, context *curves.G1Point, err error) {
	if c == nil || c.Half == nil {
		return nil, nil, &InvalidLevelError{Reason: "empty chain"}
	}

	shared := h0.ScalarMul(secret)
	key, err := HopKey(c.Half.R1, c.Half.R2G1, nil, shared)
	if err != nil {
		return nil, nil, err
	}
	context = c.Half.R1

	for _, full := range c.Fulls {
		shared = curves.G2ScalarBaseMul(curves.ScalarFromBytes(key))
		key, err = HopKey(full.R1, full.R2G1, full.R2G2, shared)
		if err != nil {
			return nil, nil, err
		}
		context = full.R1
	}
	return key, context, nil
}
