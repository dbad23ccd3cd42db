package curves

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

const (
	// G1Size is the compressed encoding length of a G1 point.
	G1Size = 48
	// G2Size is the compressed encoding length of a G2 point.
	G2Size = 96
)

var (
	g1Gen bls12381.G1Affine
	g2Gen bls12381.G2Affine
)

func init() {
	_, _, g1Gen, g2Gen = bls12381.Generators()
}

// G1Point is a point in the BLS12-381 G1 group.
type G1Point struct {
	inner bls12381.G1Affine
}

// G2Point is a point in the BLS12-381 G2 group.
type G2Point struct {
	inner bls12381.G2Affine
}

// G1Generator returns the canonical G1 base point.
func G1Generator() *G1Point {
	return &G1Point{inner: g1Gen}
}

// G2Generator returns the canonical G2 base point.
func G2Generator() *G2Point {
	return &G2Point{inner: g2Gen}
}

// G1Identity returns the G1 point at infinity.
func G1Identity() *G1Point {
	return new(G1Point)
}

// G2Identity returns the G2 point at infinity.
func G2Identity() *G2Point {
	return new(G2Point)
}

// G1ScalarBaseMul returns [s]G for the canonical G1 generator.
func G1ScalarBaseMul(s *Scalar) *G1Point {
	p := new(G1Point)
	p.inner.ScalarMultiplicationBase(s.BigInt())
	return p
}

// G2ScalarBaseMul returns [s]G for the canonical G2 generator.
func G2ScalarBaseMul(s *Scalar) *G2Point {
	p := new(G2Point)
	p.inner.ScalarMultiplication(&g2Gen, s.BigInt())
	return p
}

// DecodeG1 parses a canonical 48-byte compressed G1 encoding. It rejects
// points off the curve or outside the prime-order subgroup.
func DecodeG1(data []byte) (*G1Point, error) {
	if len(data) != G1Size {
		return nil, &GroupMismatchError{Kind: "G1", Want: G1Size, Got: len(data)}
	}
	p := new(G1Point)
	if _, err := p.inner.SetBytes(data); err != nil {
		return nil, &InvalidEncodingError{Kind: "G1", Err: err}
	}
	return p, nil
}

// DecodeG2 parses a canonical 96-byte compressed G2 encoding. It rejects
// points off the curve or outside the prime-order subgroup.
func DecodeG2(data []byte) (*G2Point, error) {
	if len(data) != G2Size {
		return nil, &GroupMismatchError{Kind: "G2", Want: G2Size, Got: len(data)}
	}
	p := new(G2Point)
	if _, err := p.inner.SetBytes(data); err != nil {
		return nil, &InvalidEncodingError{Kind: "G2", Err: err}
	}
	return p, nil
}

// Bytes returns the canonical compressed encoding.
func (p *G1Point) Bytes() []byte {
	raw := p.inner.Bytes()
	return raw[:]
}

// AffineCoordinates returns the affine (x, y) coordinates as big integers.
// Used to build the limb-encoded public-input vector of the SNARK boundary.
func (p *G1Point) AffineCoordinates() (x, y *big.Int) {
	return p.inner.X.BigInt(new(big.Int)), p.inner.Y.BigInt(new(big.Int))
}

// ScalarMul returns [s]p.
func (p *G1Point) ScalarMul(s *Scalar) *G1Point {
	out := new(G1Point)
	out.inner.ScalarMultiplication(&p.inner, s.BigInt())
	return out
}

// Add returns p + q.
func (p *G1Point) Add(q *G1Point) *G1Point {
	out := new(G1Point)
	out.inner.Add(&p.inner, &q.inner)
	return out
}

// Neg returns -p.
func (p *G1Point) Neg() *G1Point {
	out := new(G1Point)
	out.inner.Neg(&p.inner)
	return out
}

// IsIdentity reports whether p is the point at infinity.
func (p *G1Point) IsIdentity() bool {
	return p.inner.IsInfinity()
}

// Equal reports whether two points are the same group element.
func (p *G1Point) Equal(q *G1Point) bool {
	return p.inner.Equal(&q.inner)
}

// Bytes returns the canonical compressed encoding.
func (p *G2Point) Bytes() []byte {
	raw := p.inner.Bytes()
	return raw[:]
}

// ScalarMul returns [s]p.
func (p *G2Point) ScalarMul(s *Scalar) *G2Point {
	out := new(G2Point)
	out.inner.ScalarMultiplication(&p.inner, s.BigInt())
	return out
}

// Add returns p + q.
func (p *G2Point) Add(q *G2Point) *G2Point {
	out := new(G2Point)
	out.inner.Add(&p.inner, &q.inner)
	return out
}

// Neg returns -p.
func (p *G2Point) Neg() *G2Point {
	out := new(G2Point)
	out.inner.Neg(&p.inner)
	return out
}

// IsIdentity reports whether p is the point at infinity.
func (p *G2Point) IsIdentity() bool {
	return p.inner.IsInfinity()
}

// Equal reports whether two points are the same group element.
func (p *G2Point) Equal(q *G2Point) bool {
	return p.inner.Equal(&q.inner)
}
