// Package kzg exposes the gnark-crypto BN254 KZG polynomial commitment
// scheme through the backend capability interface.
//
// Commitments and opening proofs are single G1 points; checking an opening
// costs one pairing equation. The scheme is not hiding: gnark-crypto KZG
// commits without blinding, so its Randomness is an empty placeholder and
// the shared opening challenge is not needed for a single-polynomial
// opening (the pairing check binds commitment, point and value on its own).
package kzg

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	kzg_bn254 "github.com/consensys/gnark-crypto/ecc/bn254/kzg"

	"github.com/geometryxyz/commitment-equivalence/backend"
)

var errArtifactType = errors.New("kzg: artifact was not produced by this scheme")

// Randomness is empty: the scheme is not hiding.
type Randomness struct{}

// Scheme implements backend.Scheme over BN254 with a trusted-setup SRS.
type Scheme struct{}

func (Scheme) ID() backend.ID { return backend.KZG }

// Setup samples a fresh SRS in Lagrange-free form. The toxic scalar is drawn
// from crypto/rand and discarded; production deployments should load an SRS
// produced by a multi-party ceremony instead.
func (Scheme) Setup(maxDegree int) (backend.SRS, error) {
	size := ecc.NextPowerOfTwo(uint64(maxDegree+1)) + 3
	alpha, err := rand.Int(rand.Reader, fr.Modulus())
	if err != nil {
		return nil, err
	}
	return kzg_bn254.NewSRS(size, alpha)
}

// Trim restricts the SRS to polynomials of degree at most maxDegree.
func (Scheme) Trim(srs backend.SRS, maxDegree int) (backend.CommitterKey, backend.VerifierKey, error) {
	s, ok := srs.(*kzg_bn254.SRS)
	if !ok {
		return nil, nil, errArtifactType
	}
	if maxDegree+1 > len(s.Pk.G1) {
		return nil, nil, fmt.Errorf("kzg: degree %d exceeds SRS size %d", maxDegree, len(s.Pk.G1))
	}
	ck := &kzg_bn254.ProvingKey{G1: s.Pk.G1[:maxDegree+1]}
	vk := &s.Vk
	return ck, vk, nil
}

func (Scheme) Commit(ck backend.CommitterKey, p []fr.Element) (backend.Commitment, backend.Randomness, error) {
	pk, ok := ck.(*kzg_bn254.ProvingKey)
	if !ok {
		return nil, nil, errArtifactType
	}
	digest, err := kzg_bn254.Commit(p, *pk)
	if err != nil {
		return nil, nil, err
	}
	return &digest, Randomness{}, nil
}

// Open proves p(point); the commitment, opening challenge and randomness are
// unused, the quotient argument needs none of them.
func (Scheme) Open(ck backend.CommitterKey, p []fr.Element, _ backend.Commitment, point, _ fr.Element, _ backend.Randomness) (backend.OpeningProof, error) {
	pk, ok := ck.(*kzg_bn254.ProvingKey)
	if !ok {
		return nil, errArtifactType
	}
	proof, err := kzg_bn254.Open(p, point, *pk)
	if err != nil {
		return nil, err
	}
	return &proof, nil
}

func (Scheme) Check(vk backend.VerifierKey, commitment backend.Commitment, point, claimedValue fr.Element, proof backend.OpeningProof, _ fr.Element) (bool, error) {
	k, ok := vk.(*kzg_bn254.VerifyingKey)
	if !ok {
		return false, errArtifactType
	}
	digest, ok := commitment.(*kzg_bn254.Digest)
	if !ok {
		return false, errArtifactType
	}
	op, ok := proof.(*kzg_bn254.OpeningProof)
	if !ok {
		return false, errArtifactType
	}

	// the pairing check validates the value embedded in the opening proof;
	// it must be the one the caller claims.
	if !op.ClaimedValue.Equal(&claimedValue) {
		return false, nil
	}

	err := kzg_bn254.Verify(digest, op, point, *k)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, kzg_bn254.ErrVerifyOpeningProof):
		return false, nil
	default:
		return false, err
	}
}

func (Scheme) NewOpeningProof() backend.OpeningProof {
	return new(kzg_bn254.OpeningProof)
}
