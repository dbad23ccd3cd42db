package snark

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/logical-mechanism/peace/crypto/core/curves"
)

var (
	// ErrMissingInputs is returned when prover inputs are absent or trivial.
	ErrMissingInputs = errors.New("snark: incomplete prover inputs")
	// ErrInputMismatch is returned when the public points of a ProverInputs
	// do not match its secrets.
	ErrInputMismatch = errors.New("snark: public points do not match the secrets")
)

// ProofFormatError reports a prover output blob that fails structural
// validation.
type ProofFormatError struct {
	Field  string
	Reason string
}

func (e *ProofFormatError) Error() string {
	return fmt.Sprintf("snark: malformed %s: %s", e.Field, e.Reason)
}

// Proof is the structural form of the prover's proof blob: the three Groth16
// points plus any Pedersen commitment points, as raw compressed encodings.
// Lengths are checked; curve membership is the verifier's concern.
type Proof struct {
	PiA         []byte   // 48-byte compressed G1
	PiB         []byte   // 96-byte compressed G2
	PiC         []byte   // 48-byte compressed G1
	Commitments [][]byte // 48-byte compressed G1 each
}

type proofJSON struct {
	PiA         string   `json:"piA"`
	PiB         string   `json:"piB"`
	PiC         string   `json:"piC"`
	Commitments []string `json:"commitments,omitempty"`
}

func decodeHexField(field, value string, size int) ([]byte, error) {
	raw, err := hex.DecodeString(value)
	if err != nil {
		return nil, &ProofFormatError{Field: field, Reason: "not a hex string"}
	}
	if len(raw) != size {
		return nil, &ProofFormatError{
			Field:  field,
			Reason: fmt.Sprintf("expected %d bytes, got %d", size, len(raw)),
		}
	}
	return raw, nil
}

// ParseProof parses and structurally validates a proof blob.
func ParseProof(blob []byte) (*Proof, error) {
	var raw proofJSON
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, errors.Wrap(err, "snark: decode proof blob")
	}
	piA, err := decodeHexField("piA", raw.PiA, curves.G1Size)
	if err != nil {
		return nil, err
	}
	piB, err := decodeHexField("piB", raw.PiB, curves.G2Size)
	if err != nil {
		return nil, err
	}
	piC, err := decodeHexField("piC", raw.PiC, curves.G1Size)
	if err != nil {
		return nil, err
	}
	p := &Proof{PiA: piA, PiB: piB, PiC: piC}
	for i, c := range raw.Commitments {
		point, err := decodeHexField(fmt.Sprintf("commitments[%d]", i), c, curves.G1Size)
		if err != nil {
			return nil, err
		}
		p.Commitments = append(p.Commitments, point)
	}
	return p, nil
}

// PublicInputs is the structural form of the prover's public-input blob:
// the verifier's decimal limb vector.
type PublicInputs struct {
	Limbs []*big.Int
}

type publicJSON struct {
	Inputs []string `json:"inputs"`
}

// ParsePublicInputs parses and structurally validates a public-input blob.
// A leading constant wire of "1", which some provers include, is stripped.
// Each limb must be a non-negative decimal of at most 64 bits, and exactly
// 36 limbs must remain.
func ParsePublicInputs(blob []byte) (*PublicInputs, error) {
	var raw publicJSON
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, errors.Wrap(err, "snark: decode public-input blob")
	}
	inputs := raw.Inputs
	if len(inputs) == PublicInputCount+1 && inputs[0] == "1" {
		inputs = inputs[1:]
	}
	if len(inputs) != PublicInputCount {
		return nil, &ProofFormatError{
			Field:  "inputs",
			Reason: fmt.Sprintf("expected %d limbs, got %d", PublicInputCount, len(raw.Inputs)),
		}
	}
	limbs := make([]*big.Int, len(inputs))
	for i, s := range inputs {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok || v.Sign() < 0 {
			return nil, &ProofFormatError{
				Field:  "inputs",
				Reason: fmt.Sprintf("limb %d is not a non-negative decimal", i),
			}
		}
		if v.BitLen() > limbBits {
			return nil, &ProofFormatError{
				Field:  "inputs",
				Reason: fmt.Sprintf("limb %d exceeds %d bits", i, limbBits),
			}
		}
		limbs[i] = v
	}
	return &PublicInputs{Limbs: limbs}, nil
}

// Matches reports whether the parsed limb vector equals the one derived
// from in's public points.
func (p *PublicInputs) Matches(in *ProverInputs) bool {
	want := in.PublicInputLimbs()
	if len(p.Limbs) != len(want) {
		return false
	}
	for i, limb := range p.Limbs {
		if limb.String() != want[i] {
			return false
		}
	}
	return true
}
