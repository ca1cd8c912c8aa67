// Package bech32 implements decoding of bech32 and bech32m strings as
// defined in BIP-173 and BIP-350, relaxed to the 1023-character limit used
// by LNURL payloads.
package bech32

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const charset = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"

// maxLength is the LNURL limit, not the 90 characters of BIP-173.
const maxLength = 1023

var gen = [5]uint32{0x3b6a57b2, 0x26508e6d, 0x1ea119fa, 0x3d4233dd, 0x2a1462b3}

// Version identifies which checksum constant a decoded string matched.
type Version int

const (
	// VersionBech32 is the original BIP-173 encoding.
	VersionBech32 Version = iota

	// VersionBech32m is the BIP-350 encoding.
	VersionBech32m
)

const bech32mConst = 0x2bc830a3

func polymod(values []byte) uint32 {
	chk := uint32(1)
	for _, v := range values {
		b := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (b>>uint(i))&1 == 1 {
				chk ^= gen[i]
			}
		}
	}
	return chk
}

func hrpExpand(hrp string) []byte {
	ret := make([]byte, 0, len(hrp)*2+1)
	for i := 0; i < len(hrp); i++ {
		ret = append(ret, hrp[i]>>5)
	}
	ret = append(ret, 0)
	for i := 0; i < len(hrp); i++ {
		ret = append(ret, hrp[i]&31)
	}
	return ret
}

// Decode decodes a bech32 or bech32m string into its human-readable part
// and the regrouped 8-bit payload. The checksum constant that matched is
// reported through the returned Version.
func Decode(bech string) (string, []byte, Version, error) {
	if len(bech) > maxLength {
		return "", nil, 0, fmt.Errorf("%w: %d characters", ErrInvalidLength, len(bech))
	}

	hasLower := false
	hasUpper := false
	for i := 0; i < len(bech); i++ {
		c := bech[i]
		if c < 33 || c > 126 {
			return "", nil, 0, fmt.Errorf("%w: %q at position %d",
				ErrInvalidCharacter, c, i)
		}
		if c >= 'a' && c <= 'z' {
			hasLower = true
		}
		if c >= 'A' && c <= 'Z' {
			hasUpper = true
		}
	}
	if hasLower && hasUpper {
		return "", nil, 0, ErrMixedCase
	}
	bech = strings.ToLower(bech)

	pos := strings.LastIndexByte(bech, '1')
	if pos < 1 {
		return "", nil, 0, ErrInvalidSeparator
	}
	if len(bech)-pos-1 < 6 {
		return "", nil, 0, fmt.Errorf("%w: checksum too short", ErrInvalidLength)
	}

	hrp := bech[:pos]
	values := make([]byte, len(bech)-pos-1)
	for i := pos + 1; i < len(bech); i++ {
		idx := strings.IndexByte(charset, bech[i])
		if idx < 0 {
			return "", nil, 0, fmt.Errorf("%w: %q at position %d",
				ErrInvalidCharacter, bech[i], i)
		}
		values[i-pos-1] = byte(idx)
	}

	var version Version
	switch polymod(append(hrpExpand(hrp), values...)) {
	case 1:
		version = VersionBech32
	case bech32mConst:
		version = VersionBech32m
	default:
		return "", nil, 0, ErrInvalidChecksum
	}

	data, err := ConvertBits(values[:len(values)-6], 5, 8, false)
	if err != nil {
		return "", nil, 0, err
	}

	return hrp, data, version, nil
}

// DecodeURL decodes a bech32-encoded LNURL and returns the embedded URL
// string. The payload must decode to valid UTF-8.
func DecodeURL(bech string) (string, error) {
	_, data, _, err := Decode(bech)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(data) {
		return "", ErrInvalidURL
	}

	return string(data), nil
}

// ConvertBits regroups a slice of fromBits-wide groups into toBits-wide
// groups. With pad disabled, any leftover bits must be zero and narrower
// than fromBits, otherwise the conversion fails.
func ConvertBits(data []byte, fromBits, toBits uint8, pad bool) ([]byte, error) {
	if fromBits < 1 || fromBits > 8 || toBits < 1 || toBits > 8 {
		return nil, fmt.Errorf("%w: only bit groups between 1 and 8 are supported",
			ErrInvalidPadding)
	}

	acc := uint32(0)
	bits := uint8(0)
	maxv := uint32(1)<<toBits - 1
	ret := make([]byte, 0, len(data)*int(fromBits)/int(toBits)+1)
	for i, value := range data {
		if uint32(value)>>fromBits != 0 {
			return nil, fmt.Errorf("%w: value %d at position %d exceeds %d bits",
				ErrInvalidCharacter, value, i, fromBits)
		}
		acc = acc<<fromBits | uint32(value)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			ret = append(ret, byte(acc>>bits&maxv))
		}
	}

	if pad {
		if bits > 0 {
			ret = append(ret, byte(acc<<(toBits-bits)&maxv))
		}
	} else if bits >= fromBits || acc<<(toBits-bits)&maxv != 0 {
		return nil, ErrInvalidPadding
	}

	return ret, nil
}
