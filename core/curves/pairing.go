package curves

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fp"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/mimc"
)

// gtDomainTag is appended (as a field element) to the coefficient stream
// before hashing a GT element. It must stay in lockstep with the SNARK
// circuit's in-circuit hash.
const gtDomainTag = "F12|To|Hex|v1|"

// GTSize is the canonical serialization length of a GT element
// (12 base-field coefficients of 48 bytes each).
const GTSize = 12 * 48

// GT is an element of the pairing target group.
type GT struct {
	inner bls12381.GT
}

// Pair computes the pairing e(p, q).
func Pair(p *G1Point, q *G2Point) (*GT, error) {
	k, err := bls12381.Pair([]bls12381.G1Affine{p.inner}, []bls12381.G2Affine{q.inner})
	if err != nil {
		return nil, err
	}
	return &GT{inner: k}, nil
}

// Mul returns k * o in GT.
func (k *GT) Mul(o *GT) *GT {
	out := new(GT)
	out.inner.Mul(&k.inner, &o.inner)
	return out
}

// Div returns k / o in GT.
func (k *GT) Div(o *GT) *GT {
	var inv bls12381.GT
	inv.Inverse(&o.inner)
	out := new(GT)
	out.inner.Mul(&k.inner, &inv)
	return out
}

// Equal reports whether two GT elements are equal.
func (k *GT) Equal(o *GT) bool {
	return k.inner.Equal(&o.inner)
}

// coefficients returns the 12 base-field coefficients of k in the fixed
// tower order C0.B0.A0, C0.B0.A1, ..., C1.B2.A1. Every GT serialization and
// hash in the protocol derives from this order.
func (k *GT) coefficients() [12]fp.Element {
	return [12]fp.Element{
		k.inner.C0.B0.A0, k.inner.C0.B0.A1,
		k.inner.C0.B1.A0, k.inner.C0.B1.A1,
		k.inner.C0.B2.A0, k.inner.C0.B2.A1,
		k.inner.C1.B0.A0, k.inner.C1.B0.A1,
		k.inner.C1.B1.A0, k.inner.C1.B1.A1,
		k.inner.C1.B2.A0, k.inner.C1.B2.A1,
	}
}

// CanonicalBytes serializes k as the concatenation of its 12 coefficients,
// each a 48-byte big-endian integer, in the fixed tower order.
func (k *GT) CanonicalBytes() []byte {
	out := make([]byte, 0, GTSize)
	var bi big.Int
	buf := make([]byte, 48)
	for _, c := range k.coefficients() {
		c.BigInt(&bi)
		bi.FillBytes(buf)
		out = append(out, buf...)
	}
	return out
}

// HashGT derives a 32-byte digest of a GT element: each coefficient is
// reduced into Fr and fed to MiMC, followed by the domain tag element. This
// matches the in-circuit hash the external prover reproduces, so the digest
// doubles as key-encapsulation material.
func HashGT(k *GT) []byte {
	h := mimc.NewMiMC()
	var bi big.Int
	var el fr.Element
	for _, c := range k.coefficients() {
		c.BigInt(&bi)
		el.SetBigInt(&bi)
		h.Write(el.Marshal())
	}
	var tag fr.Element
	tag.SetBytes([]byte(gtDomainTag))
	h.Write(tag.Marshal())
	return h.Sum(nil)
}

// GTToScalar reduces HashGT(k) into the scalar field.
func GTToScalar(k *GT) *Scalar {
	return ScalarFromBytes(HashGT(k))
}
