package bech32

import "errors"

var (
	// ErrInvalidLength indicates the string is longer than the 1023
	// character limit or too short to hold an HRP and a checksum.
	ErrInvalidLength = errors.New("bech32: invalid string length")

	// ErrMixedCase indicates the string contains both upper and lower
	// case characters.
	ErrMixedCase = errors.New("bech32: string must not mix upper and lower case")

	// ErrInvalidCharacter indicates a character outside the printable
	// ASCII range or outside the bech32 charset.
	ErrInvalidCharacter = errors.New("bech32: invalid character")

	// ErrInvalidSeparator indicates the separator '1' is missing or
	// leaves an empty human-readable part.
	ErrInvalidSeparator = errors.New("bech32: invalid separator position")

	// ErrInvalidChecksum indicates the checksum polynomial does not match
	// either the bech32 or the bech32m constant.
	ErrInvalidChecksum = errors.New("bech32: invalid checksum")

	// ErrInvalidPadding indicates leftover non-zero bits after regrouping
	// the 5-bit payload into bytes.
	ErrInvalidPadding = errors.New("bech32: invalid padding bits")

	// ErrInvalidURL indicates the decoded payload is not valid UTF-8 and
	// therefore cannot be an embedded URL.
	ErrInvalidURL = errors.New("bech32: decoded payload is not a valid UTF-8 string")
)
