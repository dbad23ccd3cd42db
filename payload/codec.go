// Package payload implements the canonical binary codec for the plaintext
// sealed inside a capsule: a CBOR map from small integer keys to byte
// strings, encoded deterministically so every implementation produces
// byte-identical output for the same logical fields.
//
// Schema (CDDL): {0 => bytes, ?1 => bytes, ?2 => bytes, *int => bytes}
package payload

import (
	"bytes"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Reserved keys of the payload map. Keys 3 and above are extension fields.
const (
	KeyLocator = 0 // content address: CID, TX id, URL or inline data
	KeySecret  = 1 // optional access key for off-chain content
	KeyDigest  = 2 // optional integrity hash of the underlying content
)

// SchemaError reports a payload that does not match the schema or is not in
// canonical form.
type SchemaError struct {
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("payload: schema violation: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("payload: schema violation: %s", e.Reason)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// Payload is the decoded field map. Locator is mandatory; Secret and Digest
// are optional; Extra holds extension fields with keys >= 3.
type Payload struct {
	Locator []byte
	Secret  []byte
	Digest  []byte
	Extra   map[uint64][]byte
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	// RFC 8949 core deterministic encoding: shortest-form integers,
	// definite lengths, bytewise key order.
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("payload: encoder init: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic("payload: decoder init: " + err.Error())
	}
}

// fields flattens the payload into its wire map, validating key usage.
func (p *Payload) fields() (map[uint64][]byte, error) {
	if p.Locator == nil {
		return nil, &SchemaError{Reason: "missing required field 0 (locator)"}
	}
	m := map[uint64][]byte{KeyLocator: p.Locator}
	if p.Secret != nil {
		m[KeySecret] = p.Secret
	}
	if p.Digest != nil {
		m[KeyDigest] = p.Digest
	}
	for k, v := range p.Extra {
		if k <= KeyDigest {
			return nil, &SchemaError{Reason: fmt.Sprintf("extra key %d conflicts with reserved keys 0..2", k)}
		}
		m[k] = v
	}
	return m, nil
}

// Encode serializes the payload canonically. Two logically equal payloads
// always encode to identical bytes.
func (p *Payload) Encode() ([]byte, error) {
	m, err := p.fields()
	if err != nil {
		return nil, err
	}
	data, err := encMode.Marshal(m)
	if err != nil {
		return nil, &SchemaError{Reason: "encode", Err: err}
	}
	return data, nil
}

// Decode parses and validates a canonical payload map. It rejects maps
// without key 0, non-integer keys, non-byte-string values, duplicate or
// negative keys, and any encoding that is not in canonical form.
func Decode(data []byte) (*Payload, error) {
	var m map[int64][]byte
	if err := decMode.Unmarshal(data, &m); err != nil {
		return nil, &SchemaError{Reason: "not a map of integer keys to byte strings", Err: err}
	}

	p := &Payload{}
	wire := make(map[uint64][]byte, len(m))
	for k, v := range m {
		if k < 0 {
			return nil, &SchemaError{Reason: fmt.Sprintf("negative key %d", k)}
		}
		if v == nil {
			return nil, &SchemaError{Reason: fmt.Sprintf("key %d has no byte string value", k)}
		}
		wire[uint64(k)] = v
		switch k {
		case KeyLocator:
			p.Locator = v
		case KeySecret:
			p.Secret = v
		case KeyDigest:
			p.Digest = v
		default:
			if p.Extra == nil {
				p.Extra = make(map[uint64][]byte)
			}
			p.Extra[uint64(k)] = v
		}
	}
	if p.Locator == nil {
		return nil, &SchemaError{Reason: "missing required field 0 (locator)"}
	}

	// Canonical-form check: re-encoding the decoded map must reproduce the
	// input byte for byte.
	canonical, err := encMode.Marshal(wire)
	if err != nil {
		return nil, &SchemaError{Reason: "re-encode", Err: err}
	}
	if !bytes.Equal(canonical, data) {
		return nil, &SchemaError{Reason: "encoding is not in canonical form"}
	}
	return p, nil
}
