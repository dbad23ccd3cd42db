// Package session owns one holder's wallet-derived key material: the BLS
// scalar behind their register, the shared decryption point, witness
// derivation for outgoing hops and capsule decryption. A Session replaces
// any notion of a process-global payment key; two sessions coexist without
// touching each other.
package session

import (
	"errors"
	"sync"

	"github.com/logical-mechanism/peace/crypto/core/curves"
	"github.com/logical-mechanism/peace/crypto/ecies"
	"github.com/logical-mechanism/peace/crypto/level"
	"github.com/logical-mechanism/peace/crypto/register"
	"github.com/logical-mechanism/peace/crypto/snark"
)

// deriveTag separates wallet-key-to-scalar derivation from every other hash
// in the protocol.
const deriveTag = "ED25519|To|BLS12381|v1|"

// ErrClosed is returned by every operation on a closed session.
var ErrClosed = errors.New("session: closed")

// Session holds the private scalar derived from wallet key material. Close
// zeroizes it; the register handed out earlier stops working at that point.
type Session struct {
	mu     sync.Mutex
	secret *curves.Scalar
	reg    *register.Register
	closed bool
}

// Open derives the session scalar from ed25519 wallet key material:
//
//	x = reduce(blake2b-256(tag || key))
//
// and builds the register u = [x]G. The key bytes are not retained.
func Open(walletKey []byte) (*Session, error) {
	x := curves.HashToScalar(deriveTag, walletKey)
	reg, err := register.Generate(x)
	if err != nil {
		return nil, err
	}
	return &Session{secret: x, reg: reg}, nil
}

// Register returns the session's register, private scalar included.
func (s *Session) Register() (*register.Register, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.reg, nil
}

// SharedPoint returns [x]H0, the holder's decryption point for the newest
// half level.
func (s *Session) SharedPoint() (*curves.G2Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	return level.H0().ScalarMul(s.secret), nil
}

// Witness derives the hop witness for an outgoing re-encryption using this
// session's scalar. The same a must feed the prover inputs of the hop.
func (s *Session) Witness(a *curves.Scalar) (*level.Witness, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	return snark.DeriveWitness(a, s.reg)
}

// Unseal walks the asset's level chain with the session scalar and opens the
// capsule. Anyone but the current holder gets an ecies.AuthenticationError.
func (s *Session) Unseal(chain *level.Chain, capsule *ecies.Capsule) ([]byte, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	secret := s.secret
	s.mu.Unlock()

	kem, context, err := chain.DeriveKEM(secret)
	if err != nil {
		return nil, err
	}
	return ecies.Decrypt(context.Bytes(), kem, capsule)
}

// Close zeroizes the private scalar. Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.secret.Zeroize()
	s.closed = true
}
