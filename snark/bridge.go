// Package snark bridges the protocol to the external Groth16 prover. It
// derives the prover's inputs and the hop witness, renders the prover CLI
// arguments, builds the limb-encoded public-input vector the on-chain
// verifier consumes, and structurally validates the prover's output blobs.
// Semantic proof validity belongs to the external verifier; nothing in this
// package verifies a proof.
package snark

import (
	"encoding/hex"
	"math/big"

	"github.com/logical-mechanism/peace/crypto/core/curves"
	"github.com/logical-mechanism/peace/crypto/level"
)

const (
	limbBits = 64
	fpLimbs  = 6

	// PublicInputCount is the length of the verifier's public-input vector:
	// three G1 points, two affine coordinates each, six limbs per coordinate.
	PublicInputCount = 3 * 2 * fpLimbs
)

// ProverInputs is the full witness of the vw0w1 relation:
//
//	w0 = [hk]G   where hk = hash(e([a]G, H0))
//	w1 = [a]G + [r]v
//
// V, W0 and W1 are public; A and R stay secret and leave the process only as
// arguments to the prover binary.
type ProverInputs struct {
	A *curves.Scalar
	R *curves.Scalar

	V  *curves.G1Point
	W0 *curves.G1Point
	W1 *curves.G1Point
}

// hopScalar derives hk, the hop key of the re-encryption: the hash of the
// pairing e([a]G, H0) reduced into the scalar field.
func hopScalar(a *curves.Scalar) (*curves.Scalar, error) {
	kappa, err := curves.Pair(curves.G1ScalarBaseMul(a), level.H0())
	if err != nil {
		return nil, err
	}
	return curves.GTToScalar(kappa), nil
}

// BuildInputs derives the prover inputs for a hop toward the holder of
// buyerPub. The same (a, r) pair must be the one fed to level.Reencrypt;
// the proof is what convinces the chain that w0 commits to the hop key
// hidden inside the new level.
func BuildInputs(a, r *curves.Scalar, buyerPub *curves.G1Point) (*ProverInputs, error) {
	if a == nil || a.IsZero() {
		return nil, ErrMissingInputs
	}
	if r == nil || buyerPub == nil || buyerPub.IsIdentity() {
		return nil, ErrMissingInputs
	}
	hk, err := hopScalar(a)
	if err != nil {
		return nil, err
	}
	return &ProverInputs{
		A:  a,
		R:  r,
		V:  buyerPub,
		W0: curves.G1ScalarBaseMul(hk),
		W1: curves.G1ScalarBaseMul(a).Add(buyerPub.ScalarMul(r)),
	}, nil
}

// Args holds the five prover CLI values as fixed-width lowercase hex:
// 64 characters for scalars, 96 for compressed G1 points.
type Args struct {
	A  string
	R  string
	V  string
	W0 string
	W1 string
}

// HexArgs renders the inputs for the prover command line.
func (in *ProverInputs) HexArgs() Args {
	return Args{
		A:  hex.EncodeToString(in.A.Bytes()),
		R:  hex.EncodeToString(in.R.Bytes()),
		V:  hex.EncodeToString(in.V.Bytes()),
		W0: hex.EncodeToString(in.W0.Bytes()),
		W1: hex.EncodeToString(in.W1.Bytes()),
	}
}

// PublicInputLimbs renders the public points as the verifier's 36-element
// decimal vector: for each of v, w0, w1 the affine X then Y coordinate,
// each split into six little-endian 64-bit limbs. The order is fixed by the
// circuit layout.
func (in *ProverInputs) PublicInputLimbs() []string {
	out := make([]string, 0, PublicInputCount)
	for _, p := range []*curves.G1Point{in.V, in.W0, in.W1} {
		x, y := p.AffineCoordinates()
		out = append(out, fpToLimbs(x)...)
		out = append(out, fpToLimbs(y)...)
	}
	return out
}

func fpToLimbs(x *big.Int) []string {
	mask := new(big.Int).SetUint64(^uint64(0))
	v := new(big.Int).Set(x)
	limbs := make([]string, fpLimbs)
	for i := range limbs {
		limbs[i] = new(big.Int).And(v, mask).String()
		v.Rsh(v, limbBits)
	}
	return limbs
}
