// Package equivalence proves that two commitments produced under two
// different polynomial commitment schemes bind the same polynomial, without
// revealing it.
//
// The protocol derives an unpredictable evaluation point from a Fiat-Shamir
// transcript over both commitments, opens the polynomial at that point under
// each scheme, and accepts only if both openings check against the same
// claimed value. Two distinct polynomials of degree at most d agree at the
// derived point with probability at most d divided by the field size
// (Schwartz-Zippel), so agreement at an unpredictable point is binding
// evidence of equality.
//
// The evaluation value is revealed by the proof; this protocol does not hide
// it.
package equivalence
