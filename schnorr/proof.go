// Package schnorr implements the non-interactive key-ownership proof: a
// Fiat-Shamir collapsed sigma protocol proving knowledge of a register's
// private scalar.
package schnorr

import (
	"errors"

	"github.com/logical-mechanism/peace/crypto/core/curves"
	"github.com/logical-mechanism/peace/crypto/register"
)

// domainTag separates the Schnorr transcript from every other hash in the
// protocol.
const domainTag = "SCHNORR|PROOF|v1|"

// ErrVerificationFailed is returned when the proof equation does not hold.
// It is a definitive rejection, distinct from any "not yet available" state
// an orchestrating layer may track.
var ErrVerificationFailed = errors.New("schnorr: proof verification failed")

// Proof is a single-use proof of knowledge of a register's private scalar.
// Proofs are recomputed per request and never cached.
type Proof struct {
	Commitment *curves.G1Point // gr = [k]G
	Response   *curves.Scalar  // z = k + c*x
}

// challenge computes the Fiat-Shamir challenge
// c = H(tag || g || gr || u) reduced into the scalar field.
func challenge(g, gr, u *curves.G1Point) *curves.Scalar {
	return curves.HashToScalar(domainTag, g.Bytes(), gr.Bytes(), u.Bytes())
}

// Prove generates a proof of knowledge of reg's private scalar. The
// ephemeral nonce is drawn fresh from a cryptographically secure source on
// every call; reusing it across two proofs would leak the secret.
func Prove(reg *register.Register) (*Proof, error) {
	k, err := curves.RandomScalar()
	if err != nil {
		return nil, err
	}
	return proveWithEphemeral(reg, k)
}

// proveWithEphemeral is the deterministic core of Prove, split out so tests
// can pin the ephemeral nonce.
func proveWithEphemeral(reg *register.Register, k *curves.Scalar) (*Proof, error) {
	x, err := reg.Secret()
	if err != nil {
		return nil, err
	}
	gr := curves.G1ScalarBaseMul(k)
	c := challenge(reg.Generator(), gr, reg.PublicValue())
	z := k.Add(c.Mul(x))
	return &Proof{Commitment: gr, Response: z}, nil
}

// Verify recomputes the challenge and checks the algebraic identity
// [z]G == gr + [c]u. The comparison is exact group equality.
func Verify(reg *register.Register, proof *Proof) error {
	if proof == nil || proof.Commitment == nil || proof.Response == nil {
		return ErrVerificationFailed
	}
	c := challenge(reg.Generator(), proof.Commitment, reg.PublicValue())
	lhs := curves.G1ScalarBaseMul(proof.Response)
	rhs := proof.Commitment.Add(reg.PublicValue().ScalarMul(c))
	if !lhs.Equal(rhs) {
		return ErrVerificationFailed
	}
	return nil
}
