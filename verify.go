package equivalence

import (
	"errors"
	"fmt"
	"time"

	"github.com/geometryxyz/commitment-equivalence/backend"
	"github.com/geometryxyz/commitment-equivalence/logger"
)

// Verify checks an equivalence proof against the two commitments it was
// produced for. The transcript is rebuilt from the commitments alone, never
// from the proof, so the challenge point matches the prover's exactly iff
// the commitment bytes do.
//
// A nil return means both backends accepted. A *RejectionError (wrapping
// ErrRejected) means one backend evaluated the proof and found it invalid; a
// *CheckError means a backend could not evaluate it at all. Callers must not
// conflate the two.
func Verify(
	schemes [2]backend.Scheme,
	verifierKeys [2]backend.VerifierKey,
	commitments [2]backend.Commitment,
	proof *Proof,
	opts ...VerifierOption,
) error {
	log := logger.Logger().With().
		Str("curve", "bn254").
		Str("backend1", schemes[0].ID().String()).
		Str("backend2", schemes[1].ID().String()).
		Logger()
	start := time.Now()

	if proof == nil || proof.Openings[0] == nil || proof.Openings[1] == nil {
		return errors.New("incomplete proof")
	}

	cfg, err := NewVerifierConfig(opts...)
	if err != nil {
		return fmt.Errorf("create verifier config: %w", err)
	}

	zeta, gamma, err := deriveChallenges(cfg.ChallengeHash, commitments)
	if err != nil {
		return fmt.Errorf("derive challenges: %w", err)
	}

	// both verdicts are needed for acceptance; checking in commitment order
	// keeps the reported backend deterministic on rejection
	for i := range schemes {
		ok, err := schemes[i].Check(verifierKeys[i], commitments[i], zeta, proof.ClaimedValue, proof.Openings[i], gamma)
		if err != nil {
			return &CheckError{Backend: i + 1, Scheme: schemes[i].ID(), Err: err}
		}
		if !ok {
			return &RejectionError{Backend: i + 1, Scheme: schemes[i].ID()}
		}
	}

	log.Debug().Dur("took", time.Since(start)).Msg("verifier done")
	return nil
}
