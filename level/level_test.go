package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logical-mechanism/peace/crypto/binding"
	"github.com/logical-mechanism/peace/crypto/core/curves"
	"github.com/logical-mechanism/peace/crypto/register"
)

var tokenID = []byte("policy.asset-001")

func newRegister(t *testing.T) *register.Register {
	t.Helper()
	x, err := curves.RandomScalar()
	require.NoError(t, err)
	reg, err := register.Generate(x)
	require.NoError(t, err)
	return reg
}

// hopWitness derives the (r5, w0) pair an outgoing holder would hand to
// Reencrypt: r5 = [hk]G2 - [x]H0 and w0 = [hk]G1 with hk the hash of
// e([a]G, H0).
func hopWitness(t *testing.T, a *curves.Scalar, outgoing *register.Register) *Witness {
	t.Helper()
	x, err := outgoing.Secret()
	require.NoError(t, err)
	kappa, err := curves.Pair(curves.G1ScalarBaseMul(a), h0)
	require.NoError(t, err)
	hk := curves.GTToScalar(kappa)
	return &Witness{
		R2G2:       curves.G2ScalarBaseMul(hk).Add(h0.ScalarMul(x).Neg()),
		Commitment: curves.G1ScalarBaseMul(hk),
	}
}

func TestConstants(t *testing.T) {
	for name, p := range map[string]*curves.G2Point{"H0": H0(), "H1": H1(), "H2": H2(), "H3": H3()} {
		assert.False(t, p.IsIdentity(), "%s must not be the identity", name)
	}
	assert.False(t, H0().Equal(H1()))
}

func TestCreateFirst(t *testing.T) {
	reg := newRegister(t)

	first, err := CreateFirst(reg, tokenID)
	require.NoError(t, err)

	assert.NoError(t, first.Half.Verify(tokenID, true))
	assert.Len(t, first.KEM, 32)
	assert.NoError(t, binding.Verify(first.Half.R1, first.Half.R2G1, reg, tokenID, first.Proof))

	// The entry level carries the H3 term; verifying without it must fail.
	err = first.Half.Verify(tokenID, false)
	var invalid *InvalidLevelError
	assert.ErrorAs(t, err, &invalid)

	// Bound to the token identifier.
	assert.Error(t, first.Half.Verify([]byte("policy.asset-002"), true))
}

func TestCreateFirst_PublicOnly(t *testing.T) {
	reg := newRegister(t)
	pub := register.FromPublic(reg.Generator(), reg.PublicValue())

	_, err := CreateFirst(pub, tokenID)
	assert.ErrorIs(t, err, register.ErrNoSecret)
}

func TestHalfLevel_Verify_Missing(t *testing.T) {
	var invalid *InvalidLevelError

	var nilLevel *HalfLevel
	assert.ErrorAs(t, nilLevel.Verify(tokenID, true), &invalid)

	partial := &HalfLevel{R1: curves.G1Generator()}
	assert.ErrorAs(t, partial.Verify(tokenID, true), &invalid)
}

func TestDeriveKEM_EntryLevel(t *testing.T) {
	reg := newRegister(t)
	x, err := reg.Secret()
	require.NoError(t, err)

	first, err := CreateFirst(reg, tokenID)
	require.NoError(t, err)

	chain := &Chain{Half: first.Half}
	kem, context, err := chain.DeriveKEM(x)
	require.NoError(t, err)

	assert.Equal(t, first.KEM, kem, "owner must recover the sealing KEM")
	assert.True(t, context.Equal(first.Half.R1))

	// Any other scalar walks to garbage.
	y, err := curves.RandomScalar()
	require.NoError(t, err)
	wrong, _, err := chain.DeriveKEM(y)
	require.NoError(t, err)
	assert.NotEqual(t, first.KEM, wrong)
}

func TestDeriveKEM_EmptyChain(t *testing.T) {
	x, err := curves.RandomScalar()
	require.NoError(t, err)

	var invalid *InvalidLevelError
	_, _, err = (&Chain{}).DeriveKEM(x)
	assert.ErrorAs(t, err, &invalid)
}

func TestReencrypt(t *testing.T) {
	seller := newRegister(t)
	buyer := newRegister(t)

	first, err := CreateFirst(seller, tokenID)
	require.NoError(t, err)

	hopSecrets, err := NewSecrets()
	require.NoError(t, err)
	witness := hopWitness(t, hopSecrets.A, seller)

	hop, err := Reencrypt(first.Half, witness, seller, buyer, hopSecrets, tokenID, true)
	require.NoError(t, err)

	// The fresh half binds to the buyer and omits the H3 term.
	assert.NoError(t, hop.Half.Verify(tokenID, false))
	assert.Error(t, hop.Half.Verify(tokenID, true))
	assert.NoError(t, binding.Verify(hop.Half.R1, hop.Half.R2G1, buyer, tokenID, hop.Proof))
	assert.ErrorIs(t, binding.Verify(hop.Half.R1, hop.Half.R2G1, seller, tokenID, hop.Proof), binding.ErrVerificationFailed)

	// The archive preserves the entry level's points plus the witness.
	assert.True(t, hop.Full.R1.Equal(first.Half.R1))
	assert.True(t, hop.Full.R2G1.Equal(first.Half.R2G1))
	assert.True(t, hop.Full.R2G2.Equal(witness.R2G2))
	assert.True(t, hop.Full.R4.Equal(first.Half.R4))
}

func TestReencrypt_ChainRecovery(t *testing.T) {
	seller := newRegister(t)
	buyer := newRegister(t)
	buyerSecret, err := buyer.Secret()
	require.NoError(t, err)

	first, err := CreateFirst(seller, tokenID)
	require.NoError(t, err)

	hopSecrets, err := NewSecrets()
	require.NoError(t, err)
	witness := hopWitness(t, hopSecrets.A, seller)
	hop, err := Reencrypt(first.Half, witness, seller, buyer, hopSecrets, tokenID, true)
	require.NoError(t, err)

	chain := &Chain{Half: hop.Half, Fulls: []*FullLevel{hop.Full}}
	kem, context, err := chain.DeriveKEM(buyerSecret)
	require.NoError(t, err)

	assert.Equal(t, first.KEM, kem, "buyer must recover the entry KEM through the chain")
	assert.True(t, context.Equal(first.Half.R1), "cipher context is the entry level's r1")

	// The seller's scalar no longer walks the chain to the KEM.
	sellerSecret, err := seller.Secret()
	require.NoError(t, err)
	stale, _, err := chain.DeriveKEM(sellerSecret)
	require.NoError(t, err)
	assert.NotEqual(t, first.KEM, stale)
}

func TestReencrypt_WitnessMismatch(t *testing.T) {
	seller := newRegister(t)
	buyer := newRegister(t)
	intruder := newRegister(t)

	first, err := CreateFirst(seller, tokenID)
	require.NoError(t, err)
	hopSecrets, err := NewSecrets()
	require.NoError(t, err)

	var mismatch *OwnershipMismatchError

	// Witness derived for a different owner.
	badWitness := hopWitness(t, hopSecrets.A, intruder)
	_, err = Reencrypt(first.Half, badWitness, seller, buyer, hopSecrets, tokenID, true)
	assert.ErrorAs(t, err, &mismatch)

	// Missing witness elements.
	_, err = Reencrypt(first.Half, &Witness{}, seller, buyer, hopSecrets, tokenID, true)
	assert.ErrorAs(t, err, &mismatch)
}

func TestReencrypt_InvalidCurrentLevel(t *testing.T) {
	seller := newRegister(t)
	buyer := newRegister(t)

	first, err := CreateFirst(seller, tokenID)
	require.NoError(t, err)
	hopSecrets, err := NewSecrets()
	require.NoError(t, err)
	witness := hopWitness(t, hopSecrets.A, seller)

	// Corrupt the current level; the transform must re-validate and refuse.
	bad := &HalfLevel{R1: first.Half.R1.Add(curves.G1Generator()), R2G1: first.Half.R2G1, R4: first.Half.R4}
	var invalid *InvalidLevelError
	_, err = Reencrypt(bad, witness, seller, buyer, hopSecrets, tokenID, true)
	assert.ErrorAs(t, err, &invalid)
}

func TestReencrypt_InvalidIncoming(t *testing.T) {
	seller := newRegister(t)

	first, err := CreateFirst(seller, tokenID)
	require.NoError(t, err)
	hopSecrets, err := NewSecrets()
	require.NoError(t, err)
	witness := hopWitness(t, hopSecrets.A, seller)

	bogus := register.FromPublic(curves.G1Generator(), curves.G1Identity())
	_, err = Reencrypt(first.Half, witness, seller, bogus, hopSecrets, tokenID, true)
	assert.ErrorIs(t, err, register.ErrIdentityPublicValue)
}

func TestReencrypt_TwoHops(t *testing.T) {
	alice := newRegister(t)
	bob := newRegister(t)
	carol := newRegister(t)
	carolSecret, err := carol.Secret()
	require.NoError(t, err)

	first, err := CreateFirst(alice, tokenID)
	require.NoError(t, err)

	s1, err := NewSecrets()
	require.NoError(t, err)
	hop1, err := Reencrypt(first.Half, hopWitness(t, s1.A, alice), alice, bob, s1, tokenID, true)
	require.NoError(t, err)

	s2, err := NewSecrets()
	require.NoError(t, err)
	hop2, err := Reencrypt(hop1.Half, hopWitness(t, s2.A, bob), bob, carol, s2, tokenID, false)
	require.NoError(t, err)

	// Newest full first, entry level last.
	chain := &Chain{Half: hop2.Half, Fulls: []*FullLevel{hop2.Full, hop1.Full}}
	kem, context, err := chain.DeriveKEM(carolSecret)
	require.NoError(t, err)
	assert.Equal(t, first.KEM, kem)
	assert.True(t, context.Equal(first.Half.R1))
}
