// Package ecies implements the protocol's hybrid cipher: a key-encapsulation
// step (HKDF-SHA3-256 over pairing-derived material) feeding AES-256-GCM.
// The sealed output is a Capsule; its associated data and ciphertext never
// change across re-encryption hops. Only the level data governing who can
// re-derive the key does.
package ecies

import (
	"crypto/subtle"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"

	"github.com/logical-mechanism/peace/crypto/aead"
)

// Domain tags of the key schedule. Each one separates a different derived
// value of the same context.
const (
	saltTag = "SLT|ECIES|AES-GCM|v1|"
	kemTag  = "KEM|ECIES|AES-GCM|v1|"
	aadTag  = "AAD|ECIES|AES-GCM|v1|"
	msgTag  = "MSG|ECIES|AES-GCM|v1|"
)

// AADSize is the length of the domain-tagged context digest carried as
// associated data.
const AADSize = 28

// AuthenticationError reports an AEAD authentication failure: a wrong key,
// a mismatched associated-data digest, or a tampered ciphertext. Callers
// cannot tell the three apart.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ecies: authentication failed: %v", e.Err)
	}
	return "ecies: authentication failed"
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// Capsule is the sealed container of one encrypted asset.
type Capsule struct {
	Nonce      [aead.NonceSize]byte
	AAD        [AADSize]byte
	Ciphertext []byte // includes the GCM tag
}

// deriveKey derives the 32-byte symmetric key from the context and the
// key-encapsulation material:
//
//	salt = blake2b-256(saltTag || context || kemTag)
//	key  = HKDF-SHA3-256(ikm=kem, salt=salt, info=kemTag)
func deriveKey(context, kem []byte) ([]byte, error) {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(saltTag))
	h.Write(context)
	h.Write([]byte(kemTag))
	salt := h.Sum(nil)

	kdf := hkdf.New(sha3.New256, kem, salt, []byte(kemTag))
	key := make([]byte, aead.KeySize)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("ecies: derive key: %w", err)
	}
	return key, nil
}

// deriveAAD computes the 28-byte domain-tagged digest of the context used as
// associated data.
func deriveAAD(context []byte) ([AADSize]byte, error) {
	var out [AADSize]byte
	h, err := blake2b.New(AADSize, nil)
	if err != nil {
		return out, err
	}
	h.Write([]byte(aadTag))
	h.Write(context)
	h.Write([]byte(msgTag))
	copy(out[:], h.Sum(nil))
	return out, nil
}

// Encrypt seals plaintext into a fresh Capsule under the key derived from
// (context, kem). The nonce is sampled from a cryptographically secure
// source per call.
func Encrypt(context, kem, plaintext []byte) (*Capsule, error) {
	key, err := deriveKey(context, kem)
	if err != nil {
		return nil, err
	}
	cipher, err := aead.New(key)
	if err != nil {
		return nil, err
	}
	nonce, err := aead.NewNonce()
	if err != nil {
		return nil, err
	}
	aadDigest, err := deriveAAD(context)
	if err != nil {
		return nil, err
	}
	ct, err := cipher.Seal(nonce[:], plaintext, aadDigest[:])
	if err != nil {
		return nil, err
	}
	return &Capsule{Nonce: nonce, AAD: aadDigest, Ciphertext: ct}, nil
}

// Decrypt recomputes the key and associated-data digest from (context, kem)
// and opens the capsule. A capsule whose AAD does not match the recomputed
// digest is rejected before any cipher work, with the same
// AuthenticationError a failed tag check produces.
func Decrypt(context, kem []byte, c *Capsule) ([]byte, error) {
	aadDigest, err := deriveAAD(context)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(aadDigest[:], c.AAD[:]) != 1 {
		return nil, &AuthenticationError{}
	}
	key, err := deriveKey(context, kem)
	if err != nil {
		return nil, err
	}
	cipher, err := aead.New(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := cipher.Open(c.Nonce[:], c.Ciphertext, aadDigest[:])
	if err != nil {
		return nil, &AuthenticationError{Err: err}
	}
	return plaintext, nil
}
