package equivalence

import (
	"io"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/geometryxyz/commitment-equivalence/backend"
)

// Proof is an equivalence proof for one pair of commitments. It is immutable
// once produced by Prove and is meant to be consumed once by Verify.
type Proof struct {
	// ClaimedValue is the evaluation of the committed polynomial at the
	// transcript-derived challenge point. It is revealed by the proof.
	ClaimedValue fr.Element

	// Openings holds one opening proof per backend, in the order the
	// commitments were absorbed by the transcript.
	Openings [2]backend.OpeningProof
}

// NewProof allocates a proof shaped for the given scheme pair, ready to be
// deserialized into with ReadFrom.
func NewProof(s1, s2 backend.Scheme) *Proof {
	return &Proof{
		Openings: [2]backend.OpeningProof{s1.NewOpeningProof(), s2.NewOpeningProof()},
	}
}

// WriteTo writes binary encoding of the proof, in the order
// (ClaimedValue, Openings[0], Openings[1]), each component in its own
// canonical encoding.
func (proof *Proof) WriteTo(w io.Writer) (int64, error) {
	buf := proof.ClaimedValue.Bytes()
	n, err := w.Write(buf[:])
	written := int64(n)
	if err != nil {
		return written, err
	}
	for i := range proof.Openings {
		m, err := proof.Openings[i].WriteTo(w)
		written += m
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// ReadFrom reads binary encoding of the proof. The receiver must have been
// allocated with NewProof for the same scheme pair that produced the
// encoding.
func (proof *Proof) ReadFrom(r io.Reader) (int64, error) {
	var buf [fr.Bytes]byte
	n, err := io.ReadFull(r, buf[:])
	read := int64(n)
	if err != nil {
		return read, err
	}
	proof.ClaimedValue.SetBytes(buf[:])
	for i := range proof.Openings {
		m, err := proof.Openings[i].ReadFrom(r)
		read += m
		if err != nil {
			return read, err
		}
	}
	return read, nil
}
