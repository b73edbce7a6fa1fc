package equivalence

import (
	"fmt"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/sync/errgroup"

	"github.com/geometryxyz/commitment-equivalence/backend"
	"github.com/geometryxyz/commitment-equivalence/logger"
)

// Prove produces an equivalence proof for two commitments to polynomial,
// one per scheme. The commitments and randomnesses must have been produced
// by the matching scheme's Commit; their order fixes the transcript and must
// be preserved on the verifier side.
//
// The two backend openings draw their own entropy and run concurrently; any
// failure aborts with an OpenError naming the backend, and no partial proof
// is ever returned. Retrying with fresh randomness is the caller's decision.
func Prove(
	schemes [2]backend.Scheme,
	committerKeys [2]backend.CommitterKey,
	polynomial []fr.Element,
	commitments [2]backend.Commitment,
	randomnesses [2]backend.Randomness,
	opts ...ProverOption,
) (*Proof, error) {
	log := logger.Logger().With().
		Str("curve", "bn254").
		Str("backend1", schemes[0].ID().String()).
		Str("backend2", schemes[1].ID().String()).
		Logger()
	start := time.Now()

	cfg, err := NewProverConfig(opts...)
	if err != nil {
		return nil, fmt.Errorf("create prover config: %w", err)
	}

	zeta, gamma, err := deriveChallenges(cfg.ChallengeHash, commitments)
	if err != nil {
		return nil, fmt.Errorf("derive challenges: %w", err)
	}

	proof := &Proof{ClaimedValue: eval(polynomial, zeta)}

	var g errgroup.Group
	for i := range schemes {
		i := i
		g.Go(func() error {
			opening, err := schemes[i].Open(committerKeys[i], polynomial, commitments[i], zeta, gamma, randomnesses[i])
			if err != nil {
				return &OpenError{Backend: i + 1, Scheme: schemes[i].ID(), Err: err}
			}
			proof.Openings[i] = opening
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Debug().Dur("took", time.Since(start)).Msg("prover done")
	return proof, nil
}
