// Package level implements the Wang-Cao re-encryption levels: the current
// "half" state a holder decrypts against, the archived "full" record left
// behind by each hop, and the transform that turns one into the other. The
// capsule carrying the payload is never touched by anything in this package.
package level

import (
	"fmt"

	"github.com/logical-mechanism/peace/crypto/core/curves"
)

// transcriptTag domain-separates the two level-commitment scalars.
const transcriptTag = "HASH|To|Int|v1|"

// InvalidLevelError reports a failed pairing check during level validation
// or a transform.
type InvalidLevelError struct {
	Reason string
}

func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("level: invalid level: %s", e.Reason)
}

// OwnershipMismatchError reports that a register does not match the owner a
// level or witness is bound to.
type OwnershipMismatchError struct {
	Reason string
}

func (e *OwnershipMismatchError) Error() string {
	return fmt.Sprintf("level: ownership mismatch: %s", e.Reason)
}

// HalfLevel is the minimal current-state record of a re-encryption level,
// sufficient to verify it against the owner's register.
type HalfLevel struct {
	R1   *curves.G1Point
	R2G1 *curves.G1Point
	R4   *curves.G2Point
}

// FullLevel is the immutable archive of a previous level, produced only as a
// side effect of a successful re-encryption.
type FullLevel struct {
	R1   *curves.G1Point
	R2G1 *curves.G1Point
	R2G2 *curves.G2Point
	R4   *curves.G2Point
}

// Secrets is the (a, r) pair behind one level. It exists only in the memory
// of the holder who created the level.
type Secrets struct {
	A *curves.Scalar
	R *curves.Scalar
}

// NewSecrets samples a fresh (a, r) pair.
func NewSecrets() (*Secrets, error) {
	a, err := curves.RandomScalar()
	if err != nil {
		return nil, err
	}
	r, err := curves.RandomScalar()
	if err != nil {
		return nil, err
	}
	return &Secrets{A: a, R: r}, nil
}

// transcriptScalars derives the two commitment scalars from the level's
// public points and the token identifier:
//
//	a = H(tag || r1)
//	b = H(tag || r1 || r2g1 || tokenID)
func transcriptScalars(r1, r2g1 *curves.G1Point, tokenID []byte) (*curves.Scalar, *curves.Scalar) {
	a := curves.HashToScalar(transcriptTag, r1.Bytes())
	b := curves.HashToScalar(transcriptTag, r1.Bytes(), r2g1.Bytes(), tokenID)
	return a, b
}

// commitmentBase computes [a]H1 + [b]H2, plus H3 for the very first hop.
func commitmentBase(a, b *curves.Scalar, first bool) *curves.G2Point {
	c := h1.ScalarMul(a).Add(h2.ScalarMul(b))
	if first {
		c = c.Add(h3)
	}
	return c
}

// Verify checks the level's pairing relation
//
//	e(r1, [a]H1 + [b]H2 (+ H3)) == e(G, r4)
//
// where a and b are recomputed from the level's own points and tokenID.
// first selects whether the H3 term of the entry level is included.
func (l *HalfLevel) Verify(tokenID []byte, first bool) error {
	if l == nil || l.R1 == nil || l.R2G1 == nil || l.R4 == nil {
		return &InvalidLevelError{Reason: "missing group elements"}
	}
	a, b := transcriptScalars(l.R1, l.R2G1, tokenID)
	base := commitmentBase(a, b, first)
	lhs, err := curves.Pair(l.R1, base)
	if err != nil {
		return &InvalidLevelError{Reason: err.Error()}
	}
	rhs, err := curves.Pair(curves.G1Generator(), l.R4)
	if err != nil {
		return &InvalidLevelError{Reason: err.Error()}
	}
	if !lhs.Equal(rhs) {
		return &InvalidLevelError{Reason: "commitment pairing check failed"}
	}
	return nil
}

// Archive combines the half level with the hop witness into the immutable
// full record.
func (l *HalfLevel) Archive(r2g2 *curves.G2Point) *FullLevel {
	return &FullLevel{R1: l.R1, R2G1: l.R2G1, R2G2: r2g2, R4: l.R4}
}
