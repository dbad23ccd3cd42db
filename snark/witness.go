package snark

import (
	"github.com/logical-mechanism/peace/crypto/core/curves"
	"github.com/logical-mechanism/peace/crypto/level"
	"github.com/logical-mechanism/peace/crypto/register"
)

// DeriveWitness builds the hop material level.Reencrypt archives into the
// full level:
//
//	r5 = [hk]G2 - [x]H0
//	w0 = [hk]G1
//
// where hk is the hop key of hopScalar and x is the outgoing holder's
// private scalar. Requires a secret-known register; a buyer cannot forge a
// witness for a seller's chain.
func DeriveWitness(a *curves.Scalar, outgoing *register.Register) (*level.Witness, error) {
	x, err := outgoing.Secret()
	if err != nil {
		return nil, err
	}
	hk, err := hopScalar(a)
	if err != nil {
		return nil, err
	}
	r5 := curves.G2ScalarBaseMul(hk).Add(level.H0().ScalarMul(x).Neg())
	return &level.Witness{
		R2G2:       r5,
		Commitment: curves.G1ScalarBaseMul(hk),
	}, nil
}
