package ipa

import (
	"errors"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/geometryxyz/commitment-equivalence/backend"
)

var errArtifactType = errors.New("ipa: artifact was not produced by this scheme")

// Randomness carries the Pedersen blinding of a commitment; it is consumed
// by Open and must not be reused.
type Randomness struct {
	Rho fr.Element
}

// Scheme implements backend.Scheme.
type Scheme struct{}

func (Scheme) ID() backend.ID { return backend.IPA }

func (Scheme) Setup(maxDegree int) (backend.SRS, error) {
	return NewSRS(ecc.NextPowerOfTwo(uint64(maxDegree + 1)))
}

// Trim restricts the SRS to the smallest power-of-two generator vector
// covering maxDegree.
func (Scheme) Trim(srs backend.SRS, maxDegree int) (backend.CommitterKey, backend.VerifierKey, error) {
	s, ok := srs.(*SRS)
	if !ok {
		return nil, nil, errArtifactType
	}
	size := int(ecc.NextPowerOfTwo(uint64(maxDegree + 1)))
	if size > len(s.Pk.G) {
		return nil, nil, ErrInvalidPolynomialSize
	}
	ck := &ProvingKey{G: s.Pk.G[:size], S: s.Pk.S, U: s.Pk.U}
	vk := &VerifyingKey{G: s.Vk.G[:size], S: s.Vk.S, U: s.Vk.U}
	return ck, vk, nil
}

func (Scheme) Commit(ck backend.CommitterKey, p []fr.Element) (backend.Commitment, backend.Randomness, error) {
	pk, ok := ck.(*ProvingKey)
	if !ok {
		return nil, nil, errArtifactType
	}
	digest, rho, err := Commit(p, *pk)
	if err != nil {
		return nil, nil, err
	}
	return &digest, Randomness{Rho: rho}, nil
}

func (Scheme) Open(ck backend.CommitterKey, p []fr.Element, commitment backend.Commitment, point, openingChallenge fr.Element, rand backend.Randomness) (backend.OpeningProof, error) {
	pk, ok := ck.(*ProvingKey)
	if !ok {
		return nil, errArtifactType
	}
	digest, ok := commitment.(*Digest)
	if !ok {
		return nil, errArtifactType
	}
	rho, ok := rand.(Randomness)
	if !ok {
		return nil, errArtifactType
	}
	proof, err := Open(p, *digest, point, openingChallenge, rho.Rho, *pk)
	if err != nil {
		return nil, err
	}
	return &proof, nil
}

func (Scheme) Check(vk backend.VerifierKey, commitment backend.Commitment, point, claimedValue fr.Element, proof backend.OpeningProof, openingChallenge fr.Element) (bool, error) {
	k, ok := vk.(*VerifyingKey)
	if !ok {
		return false, errArtifactType
	}
	digest, ok := commitment.(*Digest)
	if !ok {
		return false, errArtifactType
	}
	op, ok := proof.(*OpeningProof)
	if !ok {
		return false, errArtifactType
	}
	err := Verify(digest, op, point, claimedValue, openingChallenge, *k)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrVerifyOpeningProof):
		return false, nil
	default:
		return false, err
	}
}

func (Scheme) NewOpeningProof() backend.OpeningProof {
	return new(OpeningProof)
}
