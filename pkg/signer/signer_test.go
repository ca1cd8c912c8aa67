package signer

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// halfOrder is secp256k1's curve order divided by two, the low-S
// threshold.
var halfOrder = new(big.Int).Rsh(btcec.S256().N, 1)

const testMnemonic = "abandon abandon abandon abandon abandon abandon " +
	"abandon abandon abandon abandon abandon about"

func TestLinkingKeyFromRaw(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, 32)
	priv, err := LinkingKeyFromRaw(key)
	require.NoError(t, err)
	assert.Equal(t, key, priv.Serialize())

	_, err = LinkingKeyFromRaw(key[:31])
	assert.ErrorIs(t, err, ErrInvalidKeyLength)

	_, err = LinkingKeyFromRaw(make([]byte, 32))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

// TestLinkingKeyFromEmptySecret pins the fixed vector: with an empty
// secret and HMAC disabled, the linking key is SHA-256 of the empty
// string.
func TestLinkingKeyFromEmptySecret(t *testing.T) {
	priv, err := LinkingKeyFromSecret(nil, "", false)
	require.NoError(t, err)

	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		hex.EncodeToString(priv.Serialize()),
	)
}

func TestLinkingKeyFromSecretHMAC(t *testing.T) {
	secret := []byte("correct horse battery staple")

	withHMAC, err := LinkingKeyFromSecret(secret, "https://service.com/cb", true)
	require.NoError(t, err)

	withoutHMAC, err := LinkingKeyFromSecret(secret, "https://service.com/cb", false)
	require.NoError(t, err)

	// The HMAC step must change the key, and the same (secret, host)
	// pair must reproduce it.
	assert.NotEqual(t, withoutHMAC.Serialize(), withHMAC.Serialize())

	again, err := LinkingKeyFromSecret(secret, "https://service.com/cb", true)
	require.NoError(t, err)
	assert.Equal(t, withHMAC.Serialize(), again.Serialize())

	// A different host yields a different identity.
	other, err := LinkingKeyFromSecret(secret, "https://other.com/cb", true)
	require.NoError(t, err)
	assert.NotEqual(t, withHMAC.Serialize(), other.Serialize())

	// The port is part of the committed authority.
	withPort, err := LinkingKeyFromSecret(secret, "https://service.com:8080/cb", true)
	require.NoError(t, err)
	assert.NotEqual(t, withHMAC.Serialize(), withPort.Serialize())
}

func TestLinkingKeyFromSecretBadCallback(t *testing.T) {
	_, err := LinkingKeyFromSecret([]byte("secret"), "not-a-url", true)
	assert.ErrorIs(t, err, ErrInvalidCallback)
}

func TestLinkingKeyFromMnemonic(t *testing.T) {
	priv, err := LinkingKeyFromMnemonic(testMnemonic, "https://service.com/cb")
	require.NoError(t, err)

	again, err := LinkingKeyFromMnemonic(testMnemonic, "https://service.com/cb")
	require.NoError(t, err)
	assert.Equal(t, priv.Serialize(), again.Serialize())

	other, err := LinkingKeyFromMnemonic(testMnemonic, "https://other.com/cb")
	require.NoError(t, err)
	assert.NotEqual(t, priv.Serialize(), other.Serialize())

	_, err = LinkingKeyFromMnemonic("definitely not a mnemonic", "https://service.com/cb")
	assert.ErrorIs(t, err, ErrInvalidMnemonic)
}

func TestSignDeterministic(t *testing.T) {
	priv, err := LinkingKeyFromSecret([]byte("secret"), "", false)
	require.NoError(t, err)

	k1 := sha256.Sum256([]byte("challenge"))

	first, err := Sign(priv, k1[:])
	require.NoError(t, err)
	second, err := Sign(priv, k1[:])
	require.NoError(t, err)

	assert.Equal(t, first.DER, second.DER)
	assert.Equal(t, first.PublicKey, second.PublicKey)
}

func TestSignVerifies(t *testing.T) {
	priv, err := LinkingKeyFromSecret(nil, "", false)
	require.NoError(t, err)

	k1 := sha256.Sum256([]byte("k1"))

	sig, err := Sign(priv, k1[:])
	require.NoError(t, err)

	require.Len(t, sig.PublicKey, 33)
	pub, err := btcec.ParsePubKey(sig.PublicKey)
	require.NoError(t, err)

	parsed, err := ecdsa.ParseDERSignature(sig.DER)
	require.NoError(t, err)
	assert.True(t, parsed.Verify(k1[:], pub))
}

// TestSignLowS checks that every produced signature carries an s value of
// at most half the curve order.
func TestSignLowS(t *testing.T) {
	priv, err := LinkingKeyFromSecret([]byte("low-s"), "", false)
	require.NoError(t, err)

	for i := 0; i < 16; i++ {
		k1 := sha256.Sum256([]byte{byte(i)})

		sig, err := Sign(priv, k1[:])
		require.NoError(t, err)

		_, s := parseDERInts(t, sig.DER)
		assert.LessOrEqual(t, s.Cmp(halfOrder), 0, "iteration %d", i)
	}
}

func TestNormalizeS(t *testing.T) {
	// order-1 is the largest scalar and is over half the order; its
	// negation is 1.
	orderMinusOne := new(big.Int).Sub(btcec.S256().N, big.NewInt(1))

	var s secp256k1.ModNScalar
	overflow := s.SetByteSlice(orderMinusOne.Bytes())
	require.False(t, overflow)
	require.True(t, s.IsOverHalfOrder())

	normalizeS(&s)
	got := s.Bytes()

	var want [32]byte
	want[31] = 1
	assert.Equal(t, want, got)

	// Values at or below the threshold are untouched.
	var small secp256k1.ModNScalar
	small.SetInt(7)
	normalizeS(&small)
	smallBytes := small.Bytes()
	assert.Equal(t, byte(7), smallBytes[31])
}

func TestEncodeDER(t *testing.T) {
	tests := []struct {
		name string
		r    []byte
		s    []byte
		want []byte
	}{
		{
			name: "small values",
			r:    []byte{0x01},
			s:    []byte{0x02},
			want: []byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x02},
		},
		{
			name: "high bit forces zero prefix",
			r:    []byte{0x80},
			s:    []byte{0x7f},
			want: []byte{0x30, 0x07, 0x02, 0x02, 0x00, 0x80, 0x02, 0x01, 0x7f},
		},
		{
			name: "zero is a single zero byte",
			r:    nil,
			s:    []byte{0x01},
			want: []byte{0x30, 0x06, 0x02, 0x01, 0x00, 0x02, 0x01, 0x01},
		},
		{
			name: "leading zeros are stripped",
			r:    []byte{0x00, 0x00, 0x01, 0x02},
			s:    []byte{0x03},
			want: []byte{0x30, 0x07, 0x02, 0x02, 0x01, 0x02, 0x02, 0x01, 0x03},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r, s [32]byte
			copy(r[32-len(tt.r):], tt.r)
			copy(s[32-len(tt.s):], tt.s)
			assert.Equal(t, tt.want, encodeDER(r, s))
		})
	}
}

// parseDERInts extracts the raw r and s integers from a DER signature.
func parseDERInts(t *testing.T, der []byte) (*big.Int, *big.Int) {
	t.Helper()

	require.GreaterOrEqual(t, len(der), 8)
	require.Equal(t, byte(0x30), der[0])
	require.Equal(t, byte(0x02), der[2])

	rLen := int(der[3])
	require.GreaterOrEqual(t, len(der), 6+rLen)
	r := new(big.Int).SetBytes(der[4 : 4+rLen])

	require.Equal(t, byte(0x02), der[4+rLen])
	sLen := int(der[5+rLen])
	require.Equal(t, 6+rLen+sLen, len(der))
	s := new(big.Int).SetBytes(der[6+rLen:])

	return r, s
}
