package main

import (
	"bytes"
	"fmt"
	"hash"
	"os"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/blake2s"

	equivalence "github.com/geometryxyz/commitment-equivalence"
	"github.com/geometryxyz/commitment-equivalence/backend"
	"github.com/geometryxyz/commitment-equivalence/backend/ipa"
	"github.com/geometryxyz/commitment-equivalence/backend/kzg"
	"github.com/geometryxyz/commitment-equivalence/logger"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "run the full protocol on a random polynomial",
	RunE:  runDemo,
}

var (
	fDegree  int
	fHash    string
	fVerbose bool
)

func init() {
	rootCmd.AddCommand(demoCmd)

	demoCmd.Flags().IntVar(&fDegree, "degree", 19, "degree of the random polynomial")
	demoCmd.Flags().StringVar(&fHash, "hash", "sha256", "challenge hash function (sha256 or blake2s)")
	demoCmd.Flags().BoolVar(&fVerbose, "verbose", false, "enable debug logging")
}

func challengeHash() (hash.Hash, error) {
	switch fHash {
	case "sha256":
		return nil, nil // nil keeps the protocol default
	case "blake2s":
		return blake2s.New256(nil)
	default:
		return nil, fmt.Errorf("unknown hash function %q", fHash)
	}
}

func runDemo(cmd *cobra.Command, args []string) error {
	if fVerbose {
		logger.Set(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger())
	}
	if fDegree < 0 {
		return fmt.Errorf("degree must be non-negative, got %d", fDegree)
	}

	hFunc, err := challengeHash()
	if err != nil {
		return err
	}

	p := make([]fr.Element, fDegree+1)
	for i := range p {
		if _, err := p[i].SetRandom(); err != nil {
			return err
		}
	}

	schemes := [2]backend.Scheme{kzg.Scheme{}, ipa.Scheme{}}
	var committerKeys [2]backend.CommitterKey
	var verifierKeys [2]backend.VerifierKey
	var commitments [2]backend.Commitment
	var randomnesses [2]backend.Randomness

	for i, scheme := range schemes {
		srs, err := scheme.Setup(fDegree)
		if err != nil {
			return fmt.Errorf("%s setup: %w", scheme.ID(), err)
		}
		committerKeys[i], verifierKeys[i], err = scheme.Trim(srs, fDegree)
		if err != nil {
			return fmt.Errorf("%s trim: %w", scheme.ID(), err)
		}
		commitments[i], randomnesses[i], err = scheme.Commit(committerKeys[i], p)
		if err != nil {
			return fmt.Errorf("%s commit: %w", scheme.ID(), err)
		}
		fmt.Printf("%s commitment: 0x%x\n", scheme.ID(), commitments[i].Marshal())
	}

	var proverOpts []equivalence.ProverOption
	var verifierOpts []equivalence.VerifierOption
	if hFunc != nil {
		proverOpts = append(proverOpts, equivalence.WithProverChallengeHashFunction(hFunc))
		vFunc, err := challengeHash()
		if err != nil {
			return err
		}
		verifierOpts = append(verifierOpts, equivalence.WithVerifierChallengeHashFunction(vFunc))
	}

	proof, err := equivalence.Prove(schemes, committerKeys, p, commitments, randomnesses, proverOpts...)
	if err != nil {
		return fmt.Errorf("prove: %w", err)
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return fmt.Errorf("serialize proof: %w", err)
	}
	fmt.Printf("claimed value: 0x%x\n", proof.ClaimedValue.Marshal())
	fmt.Printf("proof size: %d bytes\n", buf.Len())

	decoded := equivalence.NewProof(schemes[0], schemes[1])
	if _, err := decoded.ReadFrom(&buf); err != nil {
		return fmt.Errorf("deserialize proof: %w", err)
	}

	if err := equivalence.Verify(schemes, verifierKeys, commitments, decoded, verifierOpts...); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	fmt.Println("equivalence proof verified")
	return nil
}
