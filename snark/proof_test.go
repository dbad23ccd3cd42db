package snark

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logical-mechanism/peace/crypto/core/curves"
)

func testProofBlob(t *testing.T) []byte {
	t.Helper()
	g1 := hex.EncodeToString(curves.G1Generator().Bytes())
	g2 := hex.EncodeToString(curves.G2Generator().Bytes())
	blob, err := json.Marshal(map[string]any{
		"piA": g1,
		"piB": g2,
		"piC": g1,
	})
	require.NoError(t, err)
	return blob
}

func testPublicBlob(t *testing.T, in *ProverInputs, withOne bool) []byte {
	t.Helper()
	limbs := in.PublicInputLimbs()
	if withOne {
		limbs = append([]string{"1"}, limbs...)
	}
	blob, err := json.Marshal(map[string]any{"inputs": limbs})
	require.NoError(t, err)
	return blob
}

func TestParseProof(t *testing.T) {
	proof, err := ParseProof(testProofBlob(t))
	require.NoError(t, err)

	assert.Len(t, proof.PiA, curves.G1Size)
	assert.Len(t, proof.PiB, curves.G2Size)
	assert.Len(t, proof.PiC, curves.G1Size)
	assert.Empty(t, proof.Commitments)
}

func TestParseProof_Commitments(t *testing.T) {
	g1 := hex.EncodeToString(curves.G1Generator().Bytes())
	g2 := hex.EncodeToString(curves.G2Generator().Bytes())
	blob, err := json.Marshal(map[string]any{
		"piA":         g1,
		"piB":         g2,
		"piC":         g1,
		"commitments": []string{g1, g1},
	})
	require.NoError(t, err)

	proof, err := ParseProof(blob)
	require.NoError(t, err)
	require.Len(t, proof.Commitments, 2)
	assert.Len(t, proof.Commitments[0], curves.G1Size)
}

func TestParseProof_Rejections(t *testing.T) {
	g1 := hex.EncodeToString(curves.G1Generator().Bytes())
	g2 := hex.EncodeToString(curves.G2Generator().Bytes())

	build := func(piA, piB, piC string) []byte {
		blob, err := json.Marshal(map[string]string{"piA": piA, "piB": piB, "piC": piC})
		require.NoError(t, err)
		return blob
	}

	var formatErr *ProofFormatError

	t.Run("not json", func(t *testing.T) {
		_, err := ParseProof([]byte("not json"))
		assert.Error(t, err)
		assert.NotErrorAs(t, err, &formatErr)
	})
	t.Run("piA wrong width", func(t *testing.T) {
		_, err := ParseProof(build(g1[:94], g2, g1))
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, "piA", formatErr.Field)
	})
	t.Run("piB g1 sized", func(t *testing.T) {
		_, err := ParseProof(build(g1, g1, g1))
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, "piB", formatErr.Field)
	})
	t.Run("piC not hex", func(t *testing.T) {
		_, err := ParseProof(build(g1, g2, strings.Repeat("zz", 48)))
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, "piC", formatErr.Field)
	})
	t.Run("bad commitment", func(t *testing.T) {
		blob, err := json.Marshal(map[string]any{
			"piA": g1, "piB": g2, "piC": g1,
			"commitments": []string{"abcd"},
		})
		require.NoError(t, err)
		_, err = ParseProof(blob)
		require.ErrorAs(t, err, &formatErr)
		assert.Equal(t, "commitments[0]", formatErr.Field)
	})
}

func TestParsePublicInputs(t *testing.T) {
	in := newInputs(t)

	for _, withOne := range []bool{false, true} {
		name := "bare"
		if withOne {
			name = "leading constant wire"
		}
		t.Run(name, func(t *testing.T) {
			public, err := ParsePublicInputs(testPublicBlob(t, in, withOne))
			require.NoError(t, err)
			require.Len(t, public.Limbs, PublicInputCount)
			assert.True(t, public.Matches(in))
		})
	}
}

func TestParsePublicInputs_Rejections(t *testing.T) {
	var formatErr *ProofFormatError

	blob := func(limbs []string) []byte {
		b, err := json.Marshal(map[string]any{"inputs": limbs})
		require.NoError(t, err)
		return b
	}
	valid := make([]string, PublicInputCount)
	for i := range valid {
		valid[i] = fmt.Sprintf("%d", i+1)
	}

	t.Run("not json", func(t *testing.T) {
		_, err := ParsePublicInputs([]byte("{"))
		assert.Error(t, err)
	})
	t.Run("too few limbs", func(t *testing.T) {
		_, err := ParsePublicInputs(blob(valid[:PublicInputCount-1]))
		require.ErrorAs(t, err, &formatErr)
	})
	t.Run("too many limbs", func(t *testing.T) {
		_, err := ParsePublicInputs(blob(append([]string{"2"}, valid...)))
		require.ErrorAs(t, err, &formatErr)
	})
	t.Run("non-decimal limb", func(t *testing.T) {
		bad := append([]string{}, valid...)
		bad[3] = "0xff"
		_, err := ParsePublicInputs(blob(bad))
		require.ErrorAs(t, err, &formatErr)
	})
	t.Run("negative limb", func(t *testing.T) {
		bad := append([]string{}, valid...)
		bad[0] = "-1"
		_, err := ParsePublicInputs(blob(bad))
		require.ErrorAs(t, err, &formatErr)
	})
	t.Run("oversized limb", func(t *testing.T) {
		bad := append([]string{}, valid...)
		bad[0] = "18446744073709551616" // 2^64
		_, err := ParsePublicInputs(blob(bad))
		require.ErrorAs(t, err, &formatErr)
	})
}

func TestPublicInputs_Matches(t *testing.T) {
	in := newInputs(t)
	public, err := ParsePublicInputs(testPublicBlob(t, in, false))
	require.NoError(t, err)
	require.True(t, public.Matches(in))

	other := newInputs(t)
	assert.False(t, public.Matches(other))
}
