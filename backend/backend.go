// Package backend defines the capability interface a polynomial commitment
// scheme must expose to take part in an equivalence proof.
//
// The protocol core only ever calls Open and Check; Setup, Trim and Commit
// exist so that callers (and tests) can produce the opaque artifacts the
// core consumes. Two implementations ship with this module: a pairing-based
// one (backend/kzg) and an inner-product-argument one (backend/ipa). Both
// work over the BN254 scalar field, a polynomial being its coefficient
// vector in increasing degree order.
package backend

import (
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// ID represents a unique ID for a commitment scheme
type ID uint16

const (
	UNKNOWN ID = iota
	KZG
	IPA
)

// String returns the string representation of a commitment scheme
func (id ID) String() string {
	switch id {
	case KZG:
		return "kzg"
	case IPA:
		return "ipa"
	default:
		return "unknown"
	}
}

// SRS are the public parameters of a scheme, produced once by Setup.
type SRS interface {
	io.WriterTo
	io.ReaderFrom
}

// CommitterKey is the part of the SRS needed to commit and open, trimmed to
// a degree bound.
type CommitterKey interface {
	io.WriterTo
	io.ReaderFrom
}

// VerifierKey is the part of the SRS needed to check openings.
type VerifierKey interface {
	io.WriterTo
	io.ReaderFrom
}

// Commitment is a short binding digest of a polynomial. Marshal returns its
// canonical byte encoding; two equal commitments must marshal to identical
// bytes, as these bytes are absorbed by the Fiat-Shamir transcript.
type Commitment interface {
	Marshal() []byte
	Unmarshal([]byte) error
}

// Randomness is the scheme-specific blinding data produced by Commit and
// consumed exactly once by Open. Schemes without hiding return an empty
// value.
type Randomness interface{}

// OpeningProof attests that the committed polynomial evaluates to a claimed
// value at a given point.
type OpeningProof interface {
	io.WriterTo
	io.ReaderFrom
}

// Scheme is a polynomial commitment scheme. Open and Check may draw fresh
// entropy on each call; implementations must be safe for use from
// concurrent goroutines on distinct keys.
type Scheme interface {
	ID() ID

	// Setup samples public parameters supporting polynomials up to maxDegree.
	Setup(maxDegree int) (SRS, error)

	// Trim specializes an SRS to a (possibly smaller) degree bound.
	Trim(srs SRS, maxDegree int) (CommitterKey, VerifierKey, error)

	// Commit produces a binding commitment to p and the blinding data needed
	// to open it.
	Commit(ck CommitterKey, p []fr.Element) (Commitment, Randomness, error)

	// Open proves that the polynomial behind commitment evaluates to p(point).
	// openingChallenge is a transcript-derived scalar shared by all openings
	// of one equivalence proof; rand is the blinding returned by Commit.
	Open(ck CommitterKey, p []fr.Element, commitment Commitment, point, openingChallenge fr.Element, rand Randomness) (OpeningProof, error)

	// Check verifies an opening proof against a commitment, a point and a
	// claimed value. It returns (false, nil) when the proof is
	// cryptographically invalid, and a non-nil error only when the check
	// could not be evaluated (malformed input).
	Check(vk VerifierKey, commitment Commitment, point, claimedValue fr.Element, proof OpeningProof, openingChallenge fr.Element) (bool, error)

	// NewOpeningProof returns an empty opening proof of the scheme's concrete
	// type, ready to be deserialized into.
	NewOpeningProof() OpeningProof
}
