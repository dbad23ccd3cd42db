package snark

import (
	"encoding/hex"
	"math/big"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logical-mechanism/peace/crypto/core/curves"
	"github.com/logical-mechanism/peace/crypto/level"
	"github.com/logical-mechanism/peace/crypto/register"
)

func newInputs(t *testing.T) *ProverInputs {
	t.Helper()
	a, err := curves.RandomScalar()
	require.NoError(t, err)
	r, err := curves.RandomScalar()
	require.NoError(t, err)
	v, err := curves.RandomScalar()
	require.NoError(t, err)

	in, err := BuildInputs(a, r, curves.G1ScalarBaseMul(v))
	require.NoError(t, err)
	return in
}

func TestBuildInputs(t *testing.T) {
	a, err := curves.RandomScalar()
	require.NoError(t, err)
	r, err := curves.RandomScalar()
	require.NoError(t, err)
	vScalar, err := curves.RandomScalar()
	require.NoError(t, err)
	v := curves.G1ScalarBaseMul(vScalar)

	in, err := BuildInputs(a, r, v)
	require.NoError(t, err)

	// w1 = [a]G + [r]v
	assert.True(t, in.W1.Equal(curves.G1ScalarBaseMul(a).Add(v.ScalarMul(r))))

	// w0 = [hk]G with hk the hash of e([a]G, H0)
	kappa, err := curves.Pair(curves.G1ScalarBaseMul(a), level.H0())
	require.NoError(t, err)
	assert.True(t, in.W0.Equal(curves.G1ScalarBaseMul(curves.GTToScalar(kappa))))

	assert.True(t, in.V.Equal(v))
	assert.True(t, in.A.Equal(a))
	assert.True(t, in.R.Equal(r))
}

func TestBuildInputs_Rejections(t *testing.T) {
	a, err := curves.RandomScalar()
	require.NoError(t, err)
	r, err := curves.RandomScalar()
	require.NoError(t, err)
	v := curves.G1ScalarBaseMul(a)

	_, err = BuildInputs(curves.NewScalar(big.NewInt(0)), r, v)
	assert.ErrorIs(t, err, ErrMissingInputs)

	_, err = BuildInputs(nil, r, v)
	assert.ErrorIs(t, err, ErrMissingInputs)

	_, err = BuildInputs(a, nil, v)
	assert.ErrorIs(t, err, ErrMissingInputs)

	_, err = BuildInputs(a, r, curves.G1Identity())
	assert.ErrorIs(t, err, ErrMissingInputs)
}

func TestHexArgs(t *testing.T) {
	in := newInputs(t)
	args := in.HexArgs()

	lowerHex := regexp.MustCompile(`^[0-9a-f]+$`)
	for name, v := range map[string]struct {
		val   string
		width int
	}{
		"a":  {args.A, 64},
		"r":  {args.R, 64},
		"v":  {args.V, 96},
		"w0": {args.W0, 96},
		"w1": {args.W1, 96},
	} {
		assert.Len(t, v.val, v.width, "field %s", name)
		assert.Regexp(t, lowerHex, v.val, "field %s", name)
	}

	// Round-trips back to the same elements.
	raw, err := hex.DecodeString(args.W0)
	require.NoError(t, err)
	w0, err := curves.DecodeG1(raw)
	require.NoError(t, err)
	assert.True(t, w0.Equal(in.W0))
}

func TestPublicInputLimbs(t *testing.T) {
	in := newInputs(t)
	limbs := in.PublicInputLimbs()
	require.Len(t, limbs, PublicInputCount)

	// Recompose the first six limbs into v.X.
	vx, _ := in.V.AffineCoordinates()
	got := new(big.Int)
	for i := 5; i >= 0; i-- {
		limb, ok := new(big.Int).SetString(limbs[i], 10)
		require.True(t, ok)
		require.LessOrEqual(t, limb.BitLen(), 64)
		got.Lsh(got, 64).Add(got, limb)
	}
	assert.Zero(t, got.Cmp(vx), "limbs must recompose to the affine coordinate")
}

func TestDeriveWitness(t *testing.T) {
	x, err := curves.RandomScalar()
	require.NoError(t, err)
	outgoing, err := register.Generate(x)
	require.NoError(t, err)
	a, err := curves.RandomScalar()
	require.NoError(t, err)

	w, err := DeriveWitness(a, outgoing)
	require.NoError(t, err)

	// The witness must satisfy e(G, r5) * e(u, H0) == e(w0, G2).
	left1, err := curves.Pair(curves.G1Generator(), w.R2G2)
	require.NoError(t, err)
	left2, err := curves.Pair(outgoing.PublicValue(), level.H0())
	require.NoError(t, err)
	right, err := curves.Pair(w.Commitment, curves.G2Generator())
	require.NoError(t, err)
	assert.True(t, left1.Mul(left2).Equal(right))

	// The commitment equals the prover's public w0 for the same a.
	in, err := BuildInputs(a, x, outgoing.PublicValue())
	require.NoError(t, err)
	assert.True(t, w.Commitment.Equal(in.W0))
}

func TestDeriveWitness_PublicOnly(t *testing.T) {
	x, err := curves.RandomScalar()
	require.NoError(t, err)
	owned, err := register.Generate(x)
	require.NoError(t, err)
	pub := register.FromPublic(owned.Generator(), owned.PublicValue())

	a, err := curves.RandomScalar()
	require.NoError(t, err)
	_, err = DeriveWitness(a, pub)
	assert.ErrorIs(t, err, register.ErrNoSecret)
}
