// Package binding implements the level-binding sigma protocol. It proves
// knowledge of the secret pair (a, r) behind the two public points of a
// re-encryption level,
//
//	r1 = [r]G
//	r2 = [a]G + [r]u
//
// and binds the proof to one register and one on-chain token identifier so
// it cannot be replayed across assets.
package binding

import (
	"errors"

	"github.com/logical-mechanism/peace/crypto/core/curves"
	"github.com/logical-mechanism/peace/crypto/register"
)

const domainTag = "BINDING|PROOF|v1|"

// ErrVerificationFailed is returned when either proof equation does not hold.
var ErrVerificationFailed = errors.New("binding: proof verification failed")

// Proof is a single-use binding proof. It is bound to one (a, r) pair, one
// register and one token identifier through the Fiat-Shamir challenge.
type Proof struct {
	Za *curves.Scalar  // ka + c*a
	Zr *curves.Scalar  // kr + c*r
	T1 *curves.G1Point // [kr]G
	T2 *curves.G1Point // [ka]G + [kr]u
}

// challenge hashes the full transcript:
// tag || g || u || t1 || t2 || r1 || r2 || tokenID.
func challenge(reg *register.Register, t1, t2, r1, r2 *curves.G1Point, tokenID []byte) *curves.Scalar {
	return curves.HashToScalar(domainTag,
		reg.Generator().Bytes(),
		reg.PublicValue().Bytes(),
		t1.Bytes(),
		t2.Bytes(),
		r1.Bytes(),
		r2.Bytes(),
		tokenID,
	)
}

// Prove generates a binding proof for the secrets (a, r) behind the public
// points (r1, r2) under reg's public value, tied to tokenID.
func Prove(a, r *curves.Scalar, r1, r2 *curves.G1Point, reg *register.Register, tokenID []byte) (*Proof, error) {
	ka, err := curves.RandomScalar()
	if err != nil {
		return nil, err
	}
	kr, err := curves.RandomScalar()
	if err != nil {
		return nil, err
	}
	return proveWithEphemerals(a, r, r1, r2, reg, tokenID, ka, kr)
}

func proveWithEphemerals(a, r *curves.Scalar, r1, r2 *curves.G1Point, reg *register.Register, tokenID []byte, ka, kr *curves.Scalar) (*Proof, error) {
	t1 := curves.G1ScalarBaseMul(kr)
	t2 := curves.G1ScalarBaseMul(ka).Add(reg.Scale(kr))
	c := challenge(reg, t1, t2, r1, r2, tokenID)
	return &Proof{
		Za: ka.Add(c.Mul(a)),
		Zr: kr.Add(c.Mul(r)),
		T1: t1,
		T2: t2,
	}, nil
}

// Verify checks both proof equations:
//
//	[zr]G         == t1 + [c]r1
//	[za]G + [zr]u == t2 + [c]r2
//
// Rejection of either equation rejects the proof.
func Verify(r1, r2 *curves.G1Point, reg *register.Register, tokenID []byte, proof *Proof) error {
	if proof == nil || proof.Za == nil || proof.Zr == nil || proof.T1 == nil || proof.T2 == nil {
		return ErrVerificationFailed
	}
	c := challenge(reg, proof.T1, proof.T2, r1, r2, tokenID)

	lhs1 := curves.G1ScalarBaseMul(proof.Zr)
	rhs1 := proof.T1.Add(r1.ScalarMul(c))
	if !lhs1.Equal(rhs1) {
		return ErrVerificationFailed
	}

	lhs2 := curves.G1ScalarBaseMul(proof.Za).Add(reg.Scale(proof.Zr))
	rhs2 := proof.T2.Add(r2.ScalarMul(c))
	if !lhs2.Equal(rhs2) {
		return ErrVerificationFailed
	}
	return nil
}
