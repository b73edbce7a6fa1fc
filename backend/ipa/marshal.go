package ipa

import (
	"io"

	curve "github.com/consensys/gnark-crypto/ecc/bn254"
)

// WriteTo writes binary encoding of the proving key
func (pk *ProvingKey) WriteTo(w io.Writer) (int64, error) {
	enc := curve.NewEncoder(w)

	toEncode := []interface{}{
		pk.G,
		&pk.S,
		&pk.U,
	}
	for _, v := range toEncode {
		if err := enc.Encode(v); err != nil {
			return enc.BytesWritten(), err
		}
	}
	return enc.BytesWritten(), nil
}

// ReadFrom reads binary encoding of the proving key
func (pk *ProvingKey) ReadFrom(r io.Reader) (int64, error) {
	dec := curve.NewDecoder(r)

	toDecode := []interface{}{
		&pk.G,
		&pk.S,
		&pk.U,
	}
	for _, v := range toDecode {
		if err := dec.Decode(v); err != nil {
			return dec.BytesRead(), err
		}
	}
	return dec.BytesRead(), nil
}

// WriteTo writes binary encoding of the verifying key
func (vk *VerifyingKey) WriteTo(w io.Writer) (int64, error) {
	enc := curve.NewEncoder(w)

	toEncode := []interface{}{
		vk.G,
		&vk.S,
		&vk.U,
	}
	for _, v := range toEncode {
		if err := enc.Encode(v); err != nil {
			return enc.BytesWritten(), err
		}
	}
	return enc.BytesWritten(), nil
}

// ReadFrom reads binary encoding of the verifying key
func (vk *VerifyingKey) ReadFrom(r io.Reader) (int64, error) {
	dec := curve.NewDecoder(r)

	toDecode := []interface{}{
		&vk.G,
		&vk.S,
		&vk.U,
	}
	for _, v := range toDecode {
		if err := dec.Decode(v); err != nil {
			return dec.BytesRead(), err
		}
	}
	return dec.BytesRead(), nil
}

// WriteTo writes binary encoding of the SRS
func (srs *SRS) WriteTo(w io.Writer) (int64, error) {
	n, err := srs.Pk.WriteTo(w)
	if err != nil {
		return n, err
	}
	m, err := srs.Vk.WriteTo(w)
	return n + m, err
}

// ReadFrom reads binary encoding of the SRS
func (srs *SRS) ReadFrom(r io.Reader) (int64, error) {
	n, err := srs.Pk.ReadFrom(r)
	if err != nil {
		return n, err
	}
	m, err := srs.Vk.ReadFrom(r)
	return n + m, err
}

// WriteTo writes binary encoding of the opening proof, in the order
// (HidingComm, Blinding, L, R, A)
func (proof *OpeningProof) WriteTo(w io.Writer) (int64, error) {
	enc := curve.NewEncoder(w)

	toEncode := []interface{}{
		&proof.HidingComm,
		&proof.Blinding,
		proof.L,
		proof.R,
		&proof.A,
	}
	for _, v := range toEncode {
		if err := enc.Encode(v); err != nil {
			return enc.BytesWritten(), err
		}
	}
	return enc.BytesWritten(), nil
}

// ReadFrom reads binary encoding of the opening proof
func (proof *OpeningProof) ReadFrom(r io.Reader) (int64, error) {
	dec := curve.NewDecoder(r)

	toDecode := []interface{}{
		&proof.HidingComm,
		&proof.Blinding,
		&proof.L,
		&proof.R,
		&proof.A,
	}
	for _, v := range toDecode {
		if err := dec.Decode(v); err != nil {
			return dec.BytesRead(), err
		}
	}
	return dec.BytesRead(), nil
}
