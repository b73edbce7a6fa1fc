package kzg

import (
	"testing"

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

func eval(p []fr.Element, point fr.Element) fr.Element {
	var res fr.Element
	for i := len(p) - 1; i >= 0; i-- {
		res.Mul(&res, &point).Add(&res, &p[i])
	}
	return res
}

func TestSchemeOpenCheck(t *testing.T) {
	assert := require.New(t)

	var s Scheme
	srs, err := s.Setup(15)
	assert.NoError(err)
	ck, vk, err := s.Trim(srs, 15)
	assert.NoError(err)

	p := randomPolynomial(t, 16)
	digest, rand, err := s.Commit(ck, p)
	assert.NoError(err)

	var point, challenge fr.Element
	_, err = point.SetRandom()
	assert.NoError(err)
	_, err = challenge.SetRandom()
	assert.NoError(err)

	proof, err := s.Open(ck, p, digest, point, challenge, rand)
	assert.NoError(err)

	ok, err := s.Check(vk, digest, point, eval(p, point), proof, challenge)
	assert.NoError(err)
	assert.True(ok)
}

func TestCheckWrongClaimedValue(t *testing.T) {
	assert := require.New(t)

	var s Scheme
	srs, err := s.Setup(7)
	assert.NoError(err)
	ck, vk, err := s.Trim(srs, 7)
	assert.NoError(err)

	p := randomPolynomial(t, 8)
	digest, rand, err := s.Commit(ck, p)
	assert.NoError(err)

	var point, challenge fr.Element
	_, err = point.SetRandom()
	assert.NoError(err)
	challenge.SetOne()

	proof, err := s.Open(ck, p, digest, point, challenge, rand)
	assert.NoError(err)

	v := eval(p, point)
	var one, wrong fr.Element
	one.SetOne()
	wrong.Add(&v, &one)

	// a wrong value is a verdict, not a fault
	ok, err := s.Check(vk, digest, point, wrong, proof, challenge)
	assert.NoError(err)
	assert.False(ok)
}

func TestCheckWrongCommitment(t *testing.T) {
	assert := require.New(t)

	var s Scheme
	srs, err := s.Setup(7)
	assert.NoError(err)
	ck, vk, err := s.Trim(srs, 7)
	assert.NoError(err)

	p := randomPolynomial(t, 8)
	digest, rand, err := s.Commit(ck, p)
	assert.NoError(err)
	other, _, err := s.Commit(ck, randomPolynomial(t, 8))
	assert.NoError(err)

	var point, challenge fr.Element
	_, err = point.SetRandom()
	assert.NoError(err)
	challenge.SetOne()

	proof, err := s.Open(ck, p, digest, point, challenge, rand)
	assert.NoError(err)

	ok, err := s.Check(vk, other, point, eval(p, point), proof, challenge)
	assert.NoError(err)
	assert.False(ok)
}

func TestTrimTooLarge(t *testing.T) {
	var s Scheme
	srs, err := s.Setup(7)
	require.NoError(t, err)
	_, _, err = s.Trim(srs, 1<<20)
	require.Error(t, err)
}

func TestForeignArtifacts(t *testing.T) {
	var s Scheme
	_, _, err := s.Trim(nil, 7)
	require.ErrorIs(t, err, errArtifactType)
	_, _, err = s.Commit(nil, nil)
	require.ErrorIs(t, err, errArtifactType)
	_, err = s.Open(nil, nil, nil, fr.Element{}, fr.Element{}, nil)
	require.ErrorIs(t, err, errArtifactType)
	_, err = s.Check(nil, nil, fr.Element{}, fr.Element{}, nil, fr.Element{})
	require.ErrorIs(t, err, errArtifactType)
}
