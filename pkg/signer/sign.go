package signer

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Signature is a signed LNURL-auth challenge: the strict-DER signature and
// the compressed public key of the linking key that produced it.
type Signature struct {
	DER       []byte
	PublicKey []byte
}

// DERHex returns the hex encoding of the DER signature, as submitted in
// the `sig` query parameter.
func (s *Signature) DERHex() string {
	return hex.EncodeToString(s.DER)
}

// PublicKeyHex returns the hex encoding of the compressed public key, as
// submitted in the `key` query parameter.
func (s *Signature) PublicKeyHex() string {
	return hex.EncodeToString(s.PublicKey)
}

// Sign signs the raw k1 challenge bytes with the linking key. The nonce is
// derived per RFC 6979, so the same (key, k1) pair always yields the same
// signature, and k1 is signed as-is: it is already a digest-length
// challenge and gets no additional hashing.
func Sign(priv *btcec.PrivateKey, k1 []byte) (*Signature, error) {
	if priv == nil || priv.Key.IsZero() {
		return nil, ErrInvalidKey
	}

	sig := ecdsa.Sign(priv, k1)
	r, s := sig.R(), sig.S()
	normalizeS(&s)

	return &Signature{
		DER:       encodeDER(r.Bytes(), s.Bytes()),
		PublicKey: priv.PubKey().SerializeCompressed(),
	}, nil
}

// normalizeS replaces s with order-s when it exceeds half the curve order,
// producing the canonical low-S form.
func normalizeS(s *secp256k1.ModNScalar) {
	if s.IsOverHalfOrder() {
		s.Negate()
	}
}

// encodeDER assembles the strict DER encoding
// 0x30 <len> 0x02 <len(r)> r 0x02 <len(s)> s from 32-byte big-endian r
// and s values.
func encodeDER(r, s [32]byte) []byte {
	rb := canonicalInt(r[:])
	sb := canonicalInt(s[:])

	der := make([]byte, 0, 6+len(rb)+len(sb))
	der = append(der, 0x30, byte(4+len(rb)+len(sb)))
	der = append(der, 0x02, byte(len(rb)))
	der = append(der, rb...)
	der = append(der, 0x02, byte(len(sb)))
	der = append(der, sb...)

	return der
}

// canonicalInt returns the minimal big-endian encoding of a non-negative
// integer: leading zero bytes stripped, zero kept as a single zero byte,
// and a zero byte prepended when the high bit is set so the value cannot
// be read as negative.
func canonicalInt(b []byte) []byte {
	i := 0
	for i < len(b)-1 && b[i] == 0 {
		i++
	}
	b = b[i:]

	if b[0]&0x80 != 0 {
		return append([]byte{0}, b...)
	}

	return b
}
