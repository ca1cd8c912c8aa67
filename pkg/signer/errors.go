package signer

import "errors"

var (
	// ErrInvalidKeyLength indicates a raw linking key is not exactly 32
	// bytes.
	ErrInvalidKeyLength = errors.New("signer: linking key must be 32 bytes")

	// ErrInvalidKey indicates the key bytes do not form a usable
	// secp256k1 scalar.
	ErrInvalidKey = errors.New("signer: invalid linking key")

	// ErrInvalidCallback indicates the callback URL has no extractable
	// host for the HMAC message.
	ErrInvalidCallback = errors.New("signer: callback URL has no host")

	// ErrInvalidMnemonic indicates the BIP-39 mnemonic failed its
	// checksum or wordlist validation.
	ErrInvalidMnemonic = errors.New("signer: invalid mnemonic")
)
