package session

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/logical-mechanism/peace/crypto/aead"
	"github.com/logical-mechanism/peace/crypto/argon2"
	"github.com/logical-mechanism/peace/crypto/password"
	"github.com/logical-mechanism/peace/crypto/salt"
	"github.com/logical-mechanism/peace/crypto/secure"
)

// domainSalt is the fixed derivation salt of version-1 keystore files.
const domainSalt = "PEACE_SECRETS_V1"

// ErrUnsupportedVersion is returned for keystore files written by a newer
// format revision.
var ErrUnsupportedVersion = errors.New("session: unsupported keystore version")

// EncryptedSecret is the on-disk form of a sealed wallet secret. Version 1
// derives the key with the fixed domain salt; version 2 carries a random
// per-file salt. Seal always writes version 2.
type EncryptedSecret struct {
	Version    int    `json:"version"`
	Salt       string `json:"salt,omitempty"`
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

// Keystore seals and opens wallet secrets under a passphrase-derived key.
type Keystore struct {
	kdf    *argon2.KDF
	policy *password.Validator
}

// NewKeystore creates a keystore with the fixed derivation parameters and
// the default passphrase policy.
func NewKeystore() *Keystore {
	return &Keystore{
		kdf:    argon2.New(argon2.KeystoreConfig()),
		policy: password.NewValidator(nil),
	}
}

// Seal validates the passphrase against the policy and seals secret under a
// fresh random salt and nonce. The derived key is zeroized before returning.
func (k *Keystore) Seal(passphrase, secret []byte) (*EncryptedSecret, error) {
	if err := k.policy.Validate(passphrase); err != nil {
		return nil, err
	}
	fileSalt, err := salt.GenerateDefault()
	if err != nil {
		return nil, err
	}
	key := k.kdf.DeriveKey(passphrase, fileSalt.Bytes())
	defer secure.Zeroize(key)

	cipher, err := aead.New(key)
	if err != nil {
		return nil, err
	}
	nonce, err := aead.NewNonce()
	if err != nil {
		return nil, err
	}
	ct, err := cipher.Seal(nonce[:], secret, nil)
	if err != nil {
		return nil, err
	}
	return &EncryptedSecret{
		Version:    2,
		Salt:       hex.EncodeToString(fileSalt.Bytes()),
		Nonce:      hex.EncodeToString(nonce[:]),
		Ciphertext: hex.EncodeToString(ct),
	}, nil
}

// Open derives the key for the file's version and decrypts the sealed
// secret. A wrong passphrase surfaces as aead.ErrAuthentication.
func (k *Keystore) Open(passphrase []byte, es *EncryptedSecret) ([]byte, error) {
	saltBytes, err := fileSaltBytes(es)
	if err != nil {
		return nil, err
	}
	nonce, err := hex.DecodeString(es.Nonce)
	if err != nil {
		return nil, fmt.Errorf("session: malformed nonce: %w", err)
	}
	ct, err := hex.DecodeString(es.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("session: malformed ciphertext: %w", err)
	}

	key := k.kdf.DeriveKey(passphrase, saltBytes)
	defer secure.Zeroize(key)

	cipher, err := aead.New(key)
	if err != nil {
		return nil, err
	}
	return cipher.Open(nonce, ct, nil)
}

// OpenSession unseals the wallet secret and opens a Session over it,
// zeroizing the plaintext before returning.
func (k *Keystore) OpenSession(passphrase []byte, es *EncryptedSecret) (*Session, error) {
	secret, err := k.Open(passphrase, es)
	if err != nil {
		return nil, err
	}
	defer secure.Zeroize(secret)
	return Open(secret)
}

func fileSaltBytes(es *EncryptedSecret) ([]byte, error) {
	switch es.Version {
	case 1:
		return []byte(domainSalt), nil
	case 2:
		raw, err := hex.DecodeString(es.Salt)
		if err != nil {
			return nil, fmt.Errorf("session: malformed salt: %w", err)
		}
		fileSalt, err := salt.FromBytes(raw)
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		return fileSalt.Bytes(), nil
	default:
		return nil, ErrUnsupportedVersion
	}
}
