package equivalence

import (
	"crypto/sha256"
	"hash"
)

// ProverOption defines option for altering the behavior of the prover in
// Prove. See the descriptions of functions returning instances of this type
// for implemented options.
type ProverOption func(*ProverConfig) error

// ProverConfig is the configuration for the prover with the options applied.
type ProverConfig struct {
	ChallengeHash hash.Hash
}

// NewProverConfig returns a default ProverConfig with given prover options
// opts applied.
func NewProverConfig(opts ...ProverOption) (ProverConfig, error) {
	opt := ProverConfig{ChallengeHash: sha256.New()}
	for _, option := range opts {
		if err := option(&opt); err != nil {
			return ProverConfig{}, err
		}
	}
	return opt, nil
}

// WithProverChallengeHashFunction sets the hash function used for deriving
// the challenge point and the opening challenge. Prover and verifier must
// use the same function or verification fails.
func WithProverChallengeHashFunction(hFunc hash.Hash) ProverOption {
	return func(pc *ProverConfig) error {
		pc.ChallengeHash = hFunc
		return nil
	}
}

// VerifierOption defines option for altering the behavior of the verifier.
// See the descriptions of functions returning instances of this type for
// implemented options.
type VerifierOption func(*VerifierConfig) error

// VerifierConfig is the configuration for the verifier with the options
// applied.
type VerifierConfig struct {
	ChallengeHash hash.Hash
}

// NewVerifierConfig returns a default VerifierConfig with given verifier
// options opts applied.
func NewVerifierConfig(opts ...VerifierOption) (VerifierConfig, error) {
	opt := VerifierConfig{ChallengeHash: sha256.New()}
	for _, option := range opts {
		if err := option(&opt); err != nil {
			return VerifierConfig{}, err
		}
	}
	return opt, nil
}

// WithVerifierChallengeHashFunction sets the hash function used for deriving
// the challenge point and the opening challenge. It must match the prover's.
func WithVerifierChallengeHashFunction(hFunc hash.Hash) VerifierOption {
	return func(vc *VerifierConfig) error {
		vc.ChallengeHash = hFunc
		return nil
	}
}
