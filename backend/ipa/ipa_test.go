package ipa

import (
	"bytes"
	"testing"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func randomPolynomial(t *testing.T, size int) []fr.Element {
	t.Helper()
	p := make([]fr.Element, size)
	for i := range p {
		_, err := p[i].SetRandom()
		require.NoError(t, err)
	}
	return p
}

func TestNewSRSDeterministic(t *testing.T) {
	assert := require.New(t)

	srs1, err := NewSRS(8)
	assert.NoError(err)
	srs2, err := NewSRS(8)
	assert.NoError(err)

	assert.Equal(len(srs1.Pk.G), len(srs2.Pk.G))
	for i := range srs1.Pk.G {
		assert.True(srs1.Pk.G[i].Equal(&srs2.Pk.G[i]))
	}
	assert.True(srs1.Pk.S.Equal(&srs2.Pk.S))
	assert.True(srs1.Pk.U.Equal(&srs2.Pk.U))
}

func TestNewSRSInvalidSize(t *testing.T) {
	_, err := NewSRS(0)
	require.ErrorIs(t, err, ErrInvalidSRSSize)
	_, err = NewSRS(6)
	require.ErrorIs(t, err, ErrInvalidSRSSize)
}

func TestCommitHiding(t *testing.T) {
	assert := require.New(t)

	srs, err := NewSRS(16)
	assert.NoError(err)
	p := randomPolynomial(t, 16)

	d1, r1, err := Commit(p, srs.Pk)
	assert.NoError(err)
	d2, r2, err := Commit(p, srs.Pk)
	assert.NoError(err)

	// fresh blinding, so two commitments to the same polynomial differ
	assert.False(r1.Equal(&r2))
	assert.False(d1.Equal(&d2))
}

func TestCommitInvalidSize(t *testing.T) {
	srs, err := NewSRS(8)
	require.NoError(t, err)

	_, _, err = Commit([]fr.Element{}, srs.Pk)
	require.ErrorIs(t, err, ErrInvalidPolynomialSize)

	p := randomPolynomial(t, 9)
	_, _, err = Commit(p, srs.Pk)
	require.ErrorIs(t, err, ErrInvalidPolynomialSize)
}

func TestOpenVerify(t *testing.T) {
	assert := require.New(t)

	srs, err := NewSRS(32)
	assert.NoError(err)

	var point, challenge fr.Element
	_, err = point.SetRandom()
	assert.NoError(err)
	_, err = challenge.SetRandom()
	assert.NoError(err)

	// full-size and shorter coefficient vectors over the same SRS
	for _, size := range []int{32, 20, 1} {
		p := randomPolynomial(t, size)

		digest, rho, err := Commit(p, srs.Pk)
		assert.NoError(err)

		proof, err := Open(p, digest, point, challenge, rho, srs.Pk)
		assert.NoError(err)

		v := eval(p, point)
		err = Verify(&digest, &proof, point, v, challenge, srs.Vk)
		assert.NoError(err)
	}
}

func TestVerifySingleCoefficient(t *testing.T) {
	assert := require.New(t)

	srs, err := NewSRS(1)
	assert.NoError(err)

	p := randomPolynomial(t, 1)
	var point, challenge fr.Element
	_, err = point.SetRandom()
	assert.NoError(err)
	challenge.SetOne()

	digest, rho, err := Commit(p, srs.Pk)
	assert.NoError(err)
	proof, err := Open(p, digest, point, challenge, rho, srs.Pk)
	assert.NoError(err)
	assert.Empty(proof.L)
	assert.Empty(proof.R)

	err = Verify(&digest, &proof, point, p[0], challenge, srs.Vk)
	assert.NoError(err)
}

func TestVerifyWrongClaimedValue(t *testing.T) {
	assert := require.New(t)

	srs, err := NewSRS(16)
	assert.NoError(err)
	p := randomPolynomial(t, 16)

	var point, challenge fr.Element
	_, err = point.SetRandom()
	assert.NoError(err)
	_, err = challenge.SetRandom()
	assert.NoError(err)

	digest, rho, err := Commit(p, srs.Pk)
	assert.NoError(err)
	proof, err := Open(p, digest, point, challenge, rho, srs.Pk)
	assert.NoError(err)

	v := eval(p, point)
	var one, wrong fr.Element
	one.SetOne()
	wrong.Add(&v, &one)

	err = Verify(&digest, &proof, point, wrong, challenge, srs.Vk)
	assert.ErrorIs(err, ErrVerifyOpeningProof)
}

func TestVerifyWrongOpeningChallenge(t *testing.T) {
	assert := require.New(t)

	srs, err := NewSRS(16)
	assert.NoError(err)
	p := randomPolynomial(t, 16)

	var point, challenge, other fr.Element
	_, err = point.SetRandom()
	assert.NoError(err)
	_, err = challenge.SetRandom()
	assert.NoError(err)
	var one fr.Element
	one.SetOne()
	other.Add(&challenge, &one)

	digest, rho, err := Commit(p, srs.Pk)
	assert.NoError(err)
	proof, err := Open(p, digest, point, challenge, rho, srs.Pk)
	assert.NoError(err)

	err = Verify(&digest, &proof, point, eval(p, point), other, srs.Vk)
	assert.ErrorIs(err, ErrVerifyOpeningProof)
}

func TestVerifyTamperedProof(t *testing.T) {
	assert := require.New(t)

	srs, err := NewSRS(16)
	assert.NoError(err)
	p := randomPolynomial(t, 16)

	var point, challenge fr.Element
	_, err = point.SetRandom()
	assert.NoError(err)
	_, err = challenge.SetRandom()
	assert.NoError(err)

	digest, rho, err := Commit(p, srs.Pk)
	assert.NoError(err)
	proof, err := Open(p, digest, point, challenge, rho, srs.Pk)
	assert.NoError(err)
	v := eval(p, point)

	t.Run("cross term", func(t *testing.T) {
		tampered := proof
		tampered.L = append([]curve.G1Affine{}, proof.L...)
		_, _, g, _ := curve.Generators()
		tampered.L[0].Add(&tampered.L[0], &g)
		err := Verify(&digest, &tampered, point, v, challenge, srs.Vk)
		require.ErrorIs(t, err, ErrVerifyOpeningProof)
	})

	t.Run("final coefficient", func(t *testing.T) {
		tampered := proof
		var one fr.Element
		one.SetOne()
		tampered.A.Add(&tampered.A, &one)
		err := Verify(&digest, &tampered, point, v, challenge, srs.Vk)
		require.ErrorIs(t, err, ErrVerifyOpeningProof)
	})

	t.Run("blinding", func(t *testing.T) {
		tampered := proof
		var one fr.Element
		one.SetOne()
		tampered.Blinding.Add(&tampered.Blinding, &one)
		err := Verify(&digest, &tampered, point, v, challenge, srs.Vk)
		require.ErrorIs(t, err, ErrVerifyOpeningProof)
	})

	t.Run("truncated rounds", func(t *testing.T) {
		tampered := proof
		tampered.L = proof.L[:len(proof.L)-1]
		err := Verify(&digest, &tampered, point, v, challenge, srs.Vk)
		require.ErrorIs(t, err, ErrInvalidProofSize)
	})
}

func TestOpeningProofRoundTrip(t *testing.T) {
	assert := require.New(t)

	srs, err := NewSRS(16)
	assert.NoError(err)
	p := randomPolynomial(t, 16)

	var point, challenge fr.Element
	_, err = point.SetRandom()
	assert.NoError(err)
	_, err = challenge.SetRandom()
	assert.NoError(err)

	digest, rho, err := Commit(p, srs.Pk)
	assert.NoError(err)
	proof, err := Open(p, digest, point, challenge, rho, srs.Pk)
	assert.NoError(err)

	var buf bytes.Buffer
	written, err := proof.WriteTo(&buf)
	assert.NoError(err)

	var decoded OpeningProof
	read, err := decoded.ReadFrom(&buf)
	assert.NoError(err)
	assert.Equal(written, read)

	err = Verify(&digest, &decoded, point, eval(p, point), challenge, srs.Vk)
	assert.NoError(err)
}

func TestSRSRoundTrip(t *testing.T) {
	assert := require.New(t)

	srs, err := NewSRS(8)
	assert.NoError(err)

	var buf bytes.Buffer
	written, err := srs.WriteTo(&buf)
	assert.NoError(err)

	var decoded SRS
	read, err := decoded.ReadFrom(&buf)
	assert.NoError(err)
	assert.Equal(written, read)

	assert.Equal(len(srs.Pk.G), len(decoded.Pk.G))
	for i := range srs.Pk.G {
		assert.True(srs.Pk.G[i].Equal(&decoded.Pk.G[i]))
	}
	assert.True(srs.Vk.S.Equal(&decoded.Vk.S))
	assert.True(srs.Vk.U.Equal(&decoded.Vk.U))
}
