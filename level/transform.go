package level

import (
	"github.com/logical-mechanism/peace/crypto/binding"
	"github.com/logical-mechanism/peace/crypto/core/curves"
	"github.com/logical-mechanism/peace/crypto/register"
)

// Witness carries the hop material the outgoing holder derives alongside the
// SNARK inputs: the G2 element archived into the full level,
//
//	r5 = [hk]G2 - [x]H0
//
// and the commitment w0 = [hk]G1 that binds it to the holder's register.
type Witness struct {
	R2G2       *curves.G2Point
	Commitment *curves.G1Point
}

// FirstLevel is everything produced at asset-entry time: the initial half
// level, the secrets behind it, its binding proof and the key-encapsulation
// material the capsule is sealed under.
type FirstLevel struct {
	Half    *HalfLevel
	Secrets *Secrets
	Proof   *binding.Proof
	KEM     []byte
}

// Hop is the output of one re-encryption: the archived previous level, the
// fresh half level bound to the incoming holder, and its binding proof.
type Hop struct {
	Full  *FullLevel
	Half  *HalfLevel
	Proof *binding.Proof
}

// CreateFirst builds the entry level for reg, bound to tokenID. Fresh
// secrets (a0, r0) are sampled; the level points are
//
//	r1   = [r0]G
//	r2g1 = [a0]G + [r0]u
//	r4   = [r0]([a]H1 + [b]H2 + H3)
//
// and the KEM is the hash of e([a0]G, H0).
func CreateFirst(reg *register.Register, tokenID []byte) (*FirstLevel, error) {
	x, err := reg.Secret()
	if err != nil {
		return nil, err
	}
	secrets, err := NewSecrets()
	if err != nil {
		return nil, err
	}

	r1 := curves.G1ScalarBaseMul(secrets.R)
	r2g1 := curves.G1ScalarBaseMul(secrets.A.Add(secrets.R.Mul(x)))

	a, b := transcriptScalars(r1, r2g1, tokenID)
	r4 := commitmentBase(a, b, true).ScalarMul(secrets.R)

	kappa, err := curves.Pair(curves.G1ScalarBaseMul(secrets.A), h0)
	if err != nil {
		return nil, err
	}

	proof, err := binding.Prove(secrets.A, secrets.R, r1, r2g1, reg, tokenID)
	if err != nil {
		return nil, err
	}

	return &FirstLevel{
		Half:    &HalfLevel{R1: r1, R2G1: r2g1, R4: r4},
		Secrets: secrets,
		Proof:   proof,
		KEM:     curves.HashGT(kappa),
	}, nil
}

// Reencrypt transfers decryption rights from outgoing to incoming. It
// re-validates the current level's pairing relation on every call, checks
// the witness binds to the outgoing register, archives the current level
// together with the witness, and derives a fresh half level bound to the
// incoming register:
//
//	r1'   = [r]G
//	r2g1' = [a]G + [r]u_in
//	r4'   = [r]([a']H1 + [b']H2)
//
// The H3 term never appears on non-entry hops. The capsule is not touched.
func Reencrypt(current *HalfLevel, witness *Witness, outgoing, incoming *register.Register, secrets *Secrets, tokenID []byte, first bool) (*Hop, error) {
	if err := current.Verify(tokenID, first); err != nil {
		return nil, err
	}
	if err := verifyWitness(witness, outgoing); err != nil {
		return nil, err
	}
	if err := incoming.Validate(); err != nil {
		return nil, err
	}

	r1 := curves.G1ScalarBaseMul(secrets.R)
	r2g1 := curves.G1ScalarBaseMul(secrets.A).Add(incoming.Scale(secrets.R))

	a, b := transcriptScalars(r1, r2g1, tokenID)
	r4 := commitmentBase(a, b, false).ScalarMul(secrets.R)

	proof, err := binding.Prove(secrets.A, secrets.R, r1, r2g1, incoming, tokenID)
	if err != nil {
		return nil, err
	}

	return &Hop{
		Full:  current.Archive(witness.R2G2),
		Half:  &HalfLevel{R1: r1, R2G1: r2g1, R4: r4},
		Proof: proof,
	}, nil
}

// verifyWitness checks the witness relation
//
//	e(G, r5) * e(u, H0) == e(w0, G2)
//
// which holds exactly when r5 = [hk]G2 - [x]H0 for the register owning u,
// with w0 = [hk]G1. A mismatch means the witness was derived for a different
// owner.
func verifyWitness(w *Witness, outgoing *register.Register) error {
	if w == nil || w.R2G2 == nil || w.Commitment == nil {
		return &OwnershipMismatchError{Reason: "missing witness elements"}
	}
	left1, err := curves.Pair(curves.G1Generator(), w.R2G2)
	if err != nil {
		return &OwnershipMismatchError{Reason: err.Error()}
	}
	left2, err := curves.Pair(outgoing.PublicValue(), h0)
	if err != nil {
		return &OwnershipMismatchError{Reason: err.Error()}
	}
	right, err := curves.Pair(w.Commitment, curves.G2Generator())
	if err != nil {
		return &OwnershipMismatchError{Reason: err.Error()}
	}
	if !left1.Mul(left2).Equal(right) {
		return &OwnershipMismatchError{Reason: "witness does not bind to the outgoing register"}
	}
	return nil
}
