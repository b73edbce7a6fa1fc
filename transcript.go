package equivalence

import (
	"hash"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"

	"github.com/geometryxyz/commitment-equivalence/backend"
)

// DomainSeparator seeds the Fiat-Shamir transcript. It is a protocol
// parameter: prover and verifier must agree on it, and changing it yields a
// disjoint challenge space.
const DomainSeparator = "geometryxyz/commitment-equivalence/v1"

// names of the two challenges squeezed from the transcript, in derivation
// order
const (
	challengePoint   = "zeta"
	challengeOpening = "gamma"
)

// deriveChallenges builds the protocol transcript from the canonical
// encodings of the two commitments, in their fixed order, and squeezes the
// evaluation point then the opening challenge. The derivation is a pure
// function of (hash, DomainSeparator, commitment bytes): prover and verifier
// reproduce the same two scalars bit for bit from the same public inputs.
func deriveChallenges(hFunc hash.Hash, commitments [2]backend.Commitment) (zeta, gamma fr.Element, err error) {
	fs := fiatshamir.NewTranscript(hFunc, challengePoint, challengeOpening)

	if err = fs.Bind(challengePoint, []byte(DomainSeparator)); err != nil {
		return
	}
	if err = fs.Bind(challengePoint, commitments[0].Marshal()); err != nil {
		return
	}
	if err = fs.Bind(challengePoint, commitments[1].Marshal()); err != nil {
		return
	}

	var b []byte
	if b, err = fs.ComputeChallenge(challengePoint); err != nil {
		return
	}
	zeta.SetBytes(b)

	// gamma is chained on zeta by the transcript, no further binding needed
	if b, err = fs.ComputeChallenge(challengeOpening); err != nil {
		return
	}
	gamma.SetBytes(b)
	return
}

// eval returns p(point) where p is interpreted as a polynomial
// ∑_{i<len(p)}p[i]Xⁱ
func eval(p []fr.Element, point fr.Element) fr.Element {
	var res fr.Element
	for i := len(p) - 1; i >= 0; i-- {
		res.Mul(&res, &point).Add(&res, &p[i])
	}
	return res
}
