// Package plutus renders protocol values as the constructor-indexed records
// the on-chain tooling consumes: {"constructor": n, "fields": [...]} with
// hex byte-string leaves. Field order inside a record is part of the
// compatibility contract and never changes.
package plutus

import (
	"encoding/hex"
	"encoding/json"

	"github.com/logical-mechanism/peace/crypto/binding"
	"github.com/logical-mechanism/peace/crypto/ecies"
	"github.com/logical-mechanism/peace/crypto/level"
	"github.com/logical-mechanism/peace/crypto/register"
	"github.com/logical-mechanism/peace/crypto/schnorr"
)

// Constr is a constructor-indexed record of ordered fields. Fields hold
// either Bytes leaves or nested Constr values.
type Constr struct {
	Constructor int   `json:"constructor"`
	Fields      []any `json:"fields"`
}

// Bytes is a hex-encoded byte-string leaf.
type Bytes struct {
	Bytes string `json:"bytes"`
}

func leaf(raw []byte) Bytes {
	return Bytes{Bytes: hex.EncodeToString(raw)}
}

// Encode renders a record as the two-space-indented JSON the chain tooling
// expects. Key order inside an object is alphabetical, which places
// "constructor" before "fields".
func Encode(v Constr) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// FromRegister encodes the public half of a register: [g, u].
func FromRegister(r *register.Register) Constr {
	return Constr{Constructor: 0, Fields: []any{
		leaf(r.Generator().Bytes()),
		leaf(r.PublicValue().Bytes()),
	}}
}

// FromSchnorr encodes a Schnorr proof: [z, gr].
func FromSchnorr(p *schnorr.Proof) Constr {
	return Constr{Constructor: 0, Fields: []any{
		leaf(p.Response.Bytes()),
		leaf(p.Commitment.Bytes()),
	}}
}

// FromBinding encodes a binding proof: [za, zr, t1, t2].
func FromBinding(p *binding.Proof) Constr {
	return Constr{Constructor: 0, Fields: []any{
		leaf(p.Za.Bytes()),
		leaf(p.Zr.Bytes()),
		leaf(p.T1.Bytes()),
		leaf(p.T2.Bytes()),
	}}
}

// FromHalfLevel encodes a half level. The r2 field is a sum type; the empty
// constructor 1 marks the G2 component as not yet archived.
func FromHalfLevel(l *level.HalfLevel) Constr {
	return Constr{Constructor: 0, Fields: []any{
		leaf(l.R1.Bytes()),
		Constr{Constructor: 0, Fields: []any{
			leaf(l.R2G1.Bytes()),
			Constr{Constructor: 1, Fields: []any{}},
		}},
		leaf(l.R4.Bytes()),
	}}
}

// FromFullLevel encodes an archived full level; constructor 0 on the r2 sum
// type carries the G2 component.
func FromFullLevel(l *level.FullLevel) Constr {
	return Constr{Constructor: 0, Fields: []any{
		leaf(l.R1.Bytes()),
		Constr{Constructor: 0, Fields: []any{
			leaf(l.R2G1.Bytes()),
			Constr{Constructor: 0, Fields: []any{
				leaf(l.R2G2.Bytes()),
			}},
		}},
		leaf(l.R4.Bytes()),
	}}
}

// FromCapsule encodes a sealed capsule: [nonce, aad, ciphertext].
func FromCapsule(c *ecies.Capsule) Constr {
	return Constr{Constructor: 0, Fields: []any{
		leaf(c.Nonce[:]),
		leaf(c.AAD[:]),
		leaf(c.Ciphertext),
	}}
}
