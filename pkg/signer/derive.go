// Package signer derives per-service linking keys and produces the
// deterministic, strict-DER ECDSA signatures required by LNURL-auth.
package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"net/url"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
)

// lnurlAuthPurpose is the hardened BIP-32 purpose index reserved for
// LNURL-auth (LUD-05).
const lnurlAuthPurpose = 0x80000000 + 138

// LinkingKeyFromRaw interprets key as a secp256k1 private scalar. The key
// must be exactly 32 bytes.
func LinkingKeyFromRaw(key []byte) (*btcec.PrivateKey, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeyLength, len(key))
	}

	priv, _ := btcec.PrivKeyFromBytes(key)
	if priv.Key.IsZero() {
		return nil, ErrInvalidKey
	}

	return priv, nil
}

// LinkingKeyFromSecret derives a linking key from an arbitrary secret. The
// hashing key is SHA256(secret). With useHMAC set, the linking key is
// HMAC-SHA256 of the callback host keyed with the hashing key, giving a
// stable pseudonymous identity per service. With useHMAC unset the hashing
// key itself is the linking key.
func LinkingKeyFromSecret(secret []byte, callback string, useHMAC bool) (*btcec.PrivateKey, error) {
	hashingKey := sha256.Sum256(secret)
	if !useHMAC {
		return LinkingKeyFromRaw(hashingKey[:])
	}

	host, err := callbackHost(callback)
	if err != nil {
		return nil, err
	}

	mac := hmac.New(sha256.New, hashingKey[:])
	mac.Write([]byte(host))

	return LinkingKeyFromRaw(mac.Sum(nil))
}

// LinkingKeyFromMnemonic derives a linking key from a BIP-39 mnemonic
// using the LUD-05 path m/138'/<i1>/<i2>/<i3>/<i4>, where the four child
// indexes are taken from HMAC-SHA256 of the callback host keyed with the
// m/138'/0 child key.
func LinkingKeyFromMnemonic(mnemonic, callback string) (*btcec.PrivateKey, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}

	host, err := callbackHost(callback)
	if err != nil {
		return nil, err
	}

	seed := bip39.NewSeed(mnemonic, "")
	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	authKey, err := masterKey.NewChildKey(lnurlAuthPurpose)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	hashingKey, err := authKey.NewChildKey(0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	mac := hmac.New(sha256.New, hashingKey.Key)
	mac.Write([]byte(host))
	digest := mac.Sum(nil)

	child := authKey
	for i := 0; i < 4; i++ {
		index := binary.BigEndian.Uint32(digest[i*4 : i*4+4])
		child, err = child.NewChildKey(index)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
	}

	return LinkingKeyFromRaw(child.Key)
}

// callbackHost extracts the authority (host with optional port) from a
// callback URL of the shape scheme://host/..., which is the message the
// HMAC derivation commits to.
func callbackHost(callback string) (string, error) {
	u, err := url.Parse(callback)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCallback, err)
	}
	if u.Host == "" {
		return "", ErrInvalidCallback
	}

	return u.Host, nil
}
