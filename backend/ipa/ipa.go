// Package ipa implements a polynomial commitment scheme from inner-product
// arguments over BN254 G1, in the style of the bulletproofs opening
// protocol. No trusted setup: the generators are hashed to the curve from a
// fixed domain tag. Commitments are hiding Pedersen vector commitments and
// opening proofs are logarithmic in the degree bound.
package ipa

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"math/big"
	"math/bits"
	"strconv"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"

	"github.com/geometryxyz/commitment-equivalence/internal/utils"
)

var (
	ErrInvalidPolynomialSize = errors.New("invalid polynomial size (larger than SRS or == 0)")
	ErrInvalidSRSSize        = errors.New("srs size must be a non-zero power of two")
	ErrInvalidProofSize      = errors.New("opening proof has a wrong number of rounds")
	ErrVerifyOpeningProof    = errors.New("can't verify opening proof")
	ErrZeroChallenge         = errors.New("transcript returned a zero challenge")
)

// domain tag for hashing the SRS generators to the curve
const srsDST = "geometryxyz/commitment-equivalence/ipa/srs/v1"

// Digest commitment of a polynomial.
type Digest = curve.G1Affine

// ProvingKey holds the generator vector and the two auxiliary generators:
// S blinds commitments, U carries the inner product during the argument.
// len(G) is always a power of two.
type ProvingKey struct {
	G []curve.G1Affine
	S curve.G1Affine
	U curve.G1Affine
}

// VerifyingKey mirrors the proving key: the verifier folds the full
// generator vector itself.
type VerifyingKey struct {
	G []curve.G1Affine
	S curve.G1Affine
	U curve.G1Affine
}

// SRS stores the result of the scheme setup.
type SRS struct {
	Pk ProvingKey
	Vk VerifyingKey
}

// OpeningProof attests that the committed polynomial evaluates to the
// claimed value at a point. L and R hold one cross-term pair per halving
// round; A is the surviving coefficient after all folds.
type OpeningProof struct {
	// HidingComm commits to the blind-cancelling polynomial (X-z)·q(X)
	HidingComm curve.G1Affine

	// Blinding is the combined Pedersen blinding, revealed so the verifier
	// can strip it before folding
	Blinding fr.Element

	L, R []curve.G1Affine

	A fr.Element
}

// NewSRS derives deterministic public parameters supporting coefficient
// vectors of length size. No toxic waste: every generator is hashed to G1
// from the package domain tag, so independently generated SRS of the same
// size are identical.
func NewSRS(size uint64) (*SRS, error) {
	if size == 0 || bits.OnesCount64(size) != 1 {
		return nil, ErrInvalidSRSSize
	}

	g := make([]curve.G1Affine, size)
	var msg [9]byte
	msg[0] = 'g'
	for i := range g {
		binary.BigEndian.PutUint64(msg[1:], uint64(i))
		p, err := curve.HashToG1(msg[:], []byte(srsDST))
		if err != nil {
			return nil, err
		}
		g[i] = p
	}
	s, err := curve.HashToG1([]byte{'s'}, []byte(srsDST))
	if err != nil {
		return nil, err
	}
	u, err := curve.HashToG1([]byte{'u'}, []byte(srsDST))
	if err != nil {
		return nil, err
	}

	return &SRS{
		Pk: ProvingKey{G: g, S: s, U: u},
		Vk: VerifyingKey{G: g, S: s, U: u},
	}, nil
}

// Commit commits to a polynomial in coefficient form with a fresh Pedersen
// blinding; it returns the digest and the blinding scalar, needed later to
// open the commitment.
func Commit(p []fr.Element, pk ProvingKey) (Digest, fr.Element, error) {
	var rho fr.Element
	if len(p) == 0 || len(p) > len(pk.G) {
		return Digest{}, rho, ErrInvalidPolynomialSize
	}
	if _, err := rho.SetRandom(); err != nil {
		return Digest{}, rho, err
	}

	var cJac curve.G1Jac
	if _, err := cJac.MultiExp(pk.G[:len(p)], p, ecc.MultiExpConfig{}); err != nil {
		return Digest{}, rho, err
	}
	var c, blind Digest
	c.FromJacobian(&cJac)
	var bRho big.Int
	blind.ScalarMultiplication(&pk.S, rho.BigInt(&bRho))
	c.Add(&c, &blind)
	return c, rho, nil
}

// Open proves that the polynomial committed in digest evaluates to p(point).
// openingChallenge is bound into the transcript so the opening cannot be
// replayed under a different outer context; rho is the blinding returned by
// Commit and must not be reused.
func Open(p []fr.Element, digest Digest, point, openingChallenge, rho fr.Element, pk ProvingKey) (OpeningProof, error) {
	n := len(pk.G)
	if len(p) == 0 || len(p) > n {
		return OpeningProof{}, ErrInvalidPolynomialSize
	}
	rounds := bits.TrailingZeros(uint(n))

	v := eval(p, point)

	a := make([]fr.Element, n)
	copy(a, p)

	// blind-cancelling hiding polynomial h = (X-point)·q with q random, so
	// that h(point) = 0 and the claimed value is unaffected
	h := make([]fr.Element, n)
	if n > 1 {
		q := make([]fr.Element, n-1)
		for i := range q {
			if _, err := q[i].SetRandom(); err != nil {
				return OpeningProof{}, err
			}
		}
		h[0].Mul(&point, &q[0]).Neg(&h[0])
		var t fr.Element
		for i := 1; i < n-1; i++ {
			t.Mul(&point, &q[i])
			h[i].Sub(&q[i-1], &t)
		}
		h[n-1] = q[n-2]
	}
	var wh fr.Element
	if _, err := wh.SetRandom(); err != nil {
		return OpeningProof{}, err
	}
	var hidingJac curve.G1Jac
	if _, err := hidingJac.MultiExp(pk.G, h, ecc.MultiExpConfig{}); err != nil {
		return OpeningProof{}, err
	}
	var hidingComm, blind curve.G1Affine
	hidingComm.FromJacobian(&hidingJac)
	var bWh big.Int
	blind.ScalarMultiplication(&pk.S, wh.BigInt(&bWh))
	hidingComm.Add(&hidingComm, &blind)

	fs := newTranscript(rounds)
	if err := bindOpening(fs, &digest, point, v, openingChallenge, &hidingComm); err != nil {
		return OpeningProof{}, err
	}
	c, err := squeeze(fs, "c")
	if err != nil {
		return OpeningProof{}, err
	}

	// a ← p + c·h, and the combined blinding that strips S from the folded
	// commitment
	var wBar fr.Element
	wBar.Mul(&c, &wh).Add(&wBar, &rho)
	utils.Parallelize(n, func(start, end int) {
		var t fr.Element
		for i := start; i < end; i++ {
			t.Mul(&c, &h[i])
			a[i].Add(&a[i], &t)
		}
	})

	if err := fs.Bind("u", wBar.Marshal()); err != nil {
		return OpeningProof{}, err
	}
	xi, err := squeeze(fs, "u")
	if err != nil {
		return OpeningProof{}, err
	}
	var uPrime curve.G1Affine
	var bXi big.Int
	uPrime.ScalarMultiplication(&pk.U, xi.BigInt(&bXi))

	// b = (1, point, point², …)
	b := make([]fr.Element, n)
	b[0].SetOne()
	for i := 1; i < n; i++ {
		b[i].Mul(&b[i-1], &point)
	}

	g := make([]curve.G1Affine, n)
	copy(g, pk.G)

	proof := OpeningProof{
		HidingComm: hidingComm,
		Blinding:   wBar,
		L:          make([]curve.G1Affine, 0, rounds),
		R:          make([]curve.G1Affine, 0, rounds),
	}

	for m := n; m > 1; m /= 2 {
		half := m / 2

		lA := innerProduct(a[:half], b[half:m])
		rA := innerProduct(a[half:m], b[:half])

		var lJac, rJac curve.G1Jac
		if _, err := lJac.MultiExp(g[half:m], a[:half], ecc.MultiExpConfig{}); err != nil {
			return OpeningProof{}, err
		}
		if _, err := rJac.MultiExp(g[:half], a[half:m], ecc.MultiExpConfig{}); err != nil {
			return OpeningProof{}, err
		}
		var l, r, t curve.G1Affine
		l.FromJacobian(&lJac)
		r.FromJacobian(&rJac)
		var bl, br big.Int
		t.ScalarMultiplication(&uPrime, lA.BigInt(&bl))
		l.Add(&l, &t)
		t.ScalarMultiplication(&uPrime, rA.BigInt(&br))
		r.Add(&r, &t)
		proof.L = append(proof.L, l)
		proof.R = append(proof.R, r)

		round := len(proof.L) - 1
		if err := fs.Bind(roundChallenge(round), l.Marshal()); err != nil {
			return OpeningProof{}, err
		}
		if err := fs.Bind(roundChallenge(round), r.Marshal()); err != nil {
			return OpeningProof{}, err
		}
		x, err := squeeze(fs, roundChallenge(round))
		if err != nil {
			return OpeningProof{}, err
		}
		var xInv fr.Element
		xInv.Inverse(&x)
		var bX, bXInv big.Int
		x.BigInt(&bX)
		xInv.BigInt(&bXInv)

		utils.Parallelize(half, func(start, end int) {
			var t1, t2 fr.Element
			var p1, p2 curve.G1Affine
			for i := start; i < end; i++ {
				t1.Mul(&x, &a[i])
				t2.Mul(&xInv, &a[half+i])
				a[i].Add(&t1, &t2)

				t1.Mul(&xInv, &b[i])
				t2.Mul(&x, &b[half+i])
				b[i].Add(&t1, &t2)

				p1.ScalarMultiplication(&g[i], &bXInv)
				p2.ScalarMultiplication(&g[half+i], &bX)
				g[i].Add(&p1, &p2)
			}
		})
	}

	proof.A = a[0]
	return proof, nil
}

// Verify checks an opening proof against a commitment, point and claimed
// value. It returns ErrVerifyOpeningProof when the folded relation does not
// close, and a different error when the proof is malformed.
func Verify(digest *Digest, proof *OpeningProof, point, claimedValue, openingChallenge fr.Element, vk VerifyingKey) error {
	n := len(vk.G)
	rounds := bits.TrailingZeros(uint(n))
	if len(proof.L) != rounds || len(proof.R) != rounds {
		return ErrInvalidProofSize
	}

	fs := newTranscript(rounds)
	if err := bindOpening(fs, digest, point, claimedValue, openingChallenge, &proof.HidingComm); err != nil {
		return err
	}
	c, err := squeeze(fs, "c")
	if err != nil {
		return err
	}
	if err := fs.Bind("u", proof.Blinding.Marshal()); err != nil {
		return err
	}
	xi, err := squeeze(fs, "u")
	if err != nil {
		return err
	}
	var uPrime curve.G1Affine
	var bXi big.Int
	uPrime.ScalarMultiplication(&vk.U, xi.BigInt(&bXi))

	// strip the blinding and absorb the claimed value:
	// P = C + c·HidingComm - Blinding·S + v·U'
	var p, t curve.G1Affine
	var bi big.Int
	p.Set(digest)
	t.ScalarMultiplication(&proof.HidingComm, c.BigInt(&bi))
	p.Add(&p, &t)
	t.ScalarMultiplication(&vk.S, proof.Blinding.BigInt(&bi))
	p.Sub(&p, &t)
	t.ScalarMultiplication(&uPrime, claimedValue.BigInt(&bi))
	p.Add(&p, &t)

	xs := make([]fr.Element, rounds)
	for j := 0; j < rounds; j++ {
		if err := fs.Bind(roundChallenge(j), proof.L[j].Marshal()); err != nil {
			return err
		}
		if err := fs.Bind(roundChallenge(j), proof.R[j].Marshal()); err != nil {
			return err
		}
		xs[j], err = squeeze(fs, roundChallenge(j))
		if err != nil {
			return err
		}
	}
	xInvs := fr.BatchInvert(xs)

	// P ← P + x²·L + x⁻²·R for each round
	var sq fr.Element
	for j := 0; j < rounds; j++ {
		sq.Square(&xs[j])
		t.ScalarMultiplication(&proof.L[j], sq.BigInt(&bi))
		p.Add(&p, &t)
		sq.Square(&xInvs[j])
		t.ScalarMultiplication(&proof.R[j], sq.BigInt(&bi))
		p.Add(&p, &t)
	}

	// fold the generator vector: s_i = ∏_j x_j^{±1} depending on bit k-1-j
	// of i
	s := make([]fr.Element, n)
	utils.Parallelize(n, func(start, end int) {
		for i := start; i < end; i++ {
			s[i].SetOne()
			for j := 0; j < rounds; j++ {
				if i&(1<<(rounds-1-j)) != 0 {
					s[i].Mul(&s[i], &xs[j])
				} else {
					s[i].Mul(&s[i], &xInvs[j])
				}
			}
		}
	})
	var gJac curve.G1Jac
	if _, err := gJac.MultiExp(vk.G, s, ecc.MultiExpConfig{}); err != nil {
		return err
	}
	var gFinal curve.G1Affine
	gFinal.FromJacobian(&gJac)

	// fold the power vector of the point: round j halves length n>>j, so it
	// contributes x_j⁻¹ + x_j·point^(n>>(j+1))
	var bFinal, f fr.Element
	bFinal.SetOne()
	if rounds > 0 {
		zPow := make([]fr.Element, rounds)
		zPow[rounds-1] = point
		for j := rounds - 2; j >= 0; j-- {
			zPow[j].Square(&zPow[j+1])
		}
		for j := 0; j < rounds; j++ {
			f.Mul(&xs[j], &zPow[j]).Add(&f, &xInvs[j])
			bFinal.Mul(&bFinal, &f)
		}
	}

	// closing check: P == A·G_final + A·b_final·U'
	var expected curve.G1Affine
	expected.ScalarMultiplication(&gFinal, proof.A.BigInt(&bi))
	f.Mul(&proof.A, &bFinal)
	t.ScalarMultiplication(&uPrime, f.BigInt(&bi))
	expected.Add(&expected, &t)

	if !p.Equal(&expected) {
		return ErrVerifyOpeningProof
	}
	return nil
}

func newTranscript(rounds int) *fiatshamir.Transcript {
	ids := make([]string, 0, rounds+2)
	ids = append(ids, "c", "u")
	for j := 0; j < rounds; j++ {
		ids = append(ids, roundChallenge(j))
	}
	return fiatshamir.NewTranscript(sha256.New(), ids...)
}

func roundChallenge(j int) string {
	return "x" + strconv.Itoa(j)
}

func bindOpening(fs *fiatshamir.Transcript, digest *Digest, point, claimedValue, openingChallenge fr.Element, hidingComm *curve.G1Affine) error {
	for _, b := range [][]byte{
		digest.Marshal(),
		point.Marshal(),
		claimedValue.Marshal(),
		openingChallenge.Marshal(),
		hidingComm.Marshal(),
	} {
		if err := fs.Bind("c", b); err != nil {
			return err
		}
	}
	return nil
}

func squeeze(fs *fiatshamir.Transcript, id string) (fr.Element, error) {
	var x fr.Element
	b, err := fs.ComputeChallenge(id)
	if err != nil {
		return x, err
	}
	x.SetBytes(b)
	if x.IsZero() {
		return x, ErrZeroChallenge
	}
	return x, nil
}

func innerProduct(a, b []fr.Element) fr.Element {
	var res, t fr.Element
	for i := range a {
		t.Mul(&a[i], &b[i])
		res.Add(&res, &t)
	}
	return res
}

// eval returns p(point) where p is interpreted as a polynomial
// ∑_{i<len(p)}p[i]Xⁱ
func eval(p []fr.Element, point fr.Element) fr.Element {
	var res fr.Element
	n := len(p)
	res.Set(&p[n-1])
	for i := n - 2; i >= 0; i-- {
		res.Mul(&res, &point).Add(&res, &p[i])
	}
	return res
}
