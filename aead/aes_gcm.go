// Package aead provides the AES-256-GCM sealing primitive used to protect
// capsule payloads and keystore secrets. Nonces are held by the caller
// (the capsule stores its nonce as a separate field), so Seal and Open take
// the nonce explicitly instead of framing it into the ciphertext.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

const (
	// NonceSize is the 96-bit GCM nonce size.
	NonceSize = 12
	// TagSize is the 128-bit GCM authentication tag size.
	TagSize = 16
	// KeySize is the AES-256 key size.
	KeySize = 32
)

// ErrAuthentication is returned when the authentication tag does not verify.
// Wrong key, tampered ciphertext and tampered associated data are
// indistinguishable; all surface as this error.
var ErrAuthentication = errors.New("aead: message authentication failed")

// Cipher wraps AES-256-GCM with the protocol's fixed sizes.
type Cipher struct {
	gcm cipher.AEAD
}

// New creates a Cipher from a 32-byte key.
func New(key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("aead: invalid key size: expected %d bytes, got %d", KeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aead: create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("aead: create GCM mode: %w", err)
	}
	return &Cipher{gcm: gcm}, nil
}

// Seal encrypts plaintext under nonce with the associated data aad and
// returns ciphertext with the tag appended.
func (c *Cipher) Seal(nonce, plaintext, aad []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("aead: invalid nonce size: expected %d bytes, got %d", NonceSize, len(nonce))
	}
	return c.gcm.Seal(nil, nonce, plaintext, aad), nil
}

// Open authenticates and decrypts ciphertext produced by Seal.
func (c *Cipher) Open(nonce, ciphertext, aad []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("aead: invalid nonce size: expected %d bytes, got %d", NonceSize, len(nonce))
	}
	if len(ciphertext) < TagSize {
		return nil, ErrAuthentication
	}
	plaintext, err := c.gcm.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrAuthentication
	}
	return plaintext, nil
}

// NewNonce samples a fresh random 96-bit nonce. Nonce reuse under the same
// key breaks GCM security.
func NewNonce() ([NonceSize]byte, error) {
	var nonce [NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nonce, fmt.Errorf("aead: read random bytes: %w", err)
	}
	return nonce, nil
}
