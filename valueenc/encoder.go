// Package valueenc implements the value encoder (spec §4.6, component C6):
// packing a time-delta together with a signal's new value into a single
// variant_u64-prefixed record. The format differs by signal shape (1-bit
// 2-/9-state, multi-bit digital/non-digital, real), so — per spec §9 —
// each shape gets its own routine rather than a single parameterized one,
// the same way the teacher dedicates a distinct encoder type per encoding
// strategy (encoding/numeric_raw.go vs encoding/ts_delta.go) instead of a
// single encoder branching on a mode flag.
package valueenc

import (
	"fmt"

	"github.com/ekiwi/fst-writer/endian"
	"github.com/ekiwi/fst-writer/errs"
)

// nineStateCode maps a 9-value logic character to its 3-bit encoding.
var nineStateCode = map[byte]uint64{
	'x': 0, 'X': 0,
	'z': 1, 'Z': 1,
	'h': 2, 'H': 2,
	'u': 3, 'U': 3,
	'w': 4, 'W': 4,
	'l': 5, 'L': 5,
	'-': 6,
	'?': 7,
}

// EncodeOneBit appends the encoding of a single-bit signal's new value.
//
//   - '0'/'1': tag bit 0, value bit at position 1, time_delta shifted by 2:
//     variant_u64((time_delta<<2) | (bit<<1))
//   - 9-value logic character: tag bit 1, value in bits 1..3, time_delta
//     shifted by 4: variant_u64((time_delta<<4) | (enc<<1) | 1)
func EncodeOneBit(dst []byte, timeDelta uint64, v byte) ([]byte, error) {
	switch v {
	case '0':
		return endian.AppendVariantU64(dst, timeDelta<<2), nil
	case '1':
		return endian.AppendVariantU64(dst, (timeDelta<<2)|(1<<1)), nil
	}

	if enc, ok := nineStateCode[v]; ok {
		return endian.AppendVariantU64(dst, (timeDelta<<4)|(enc<<1)|1), nil
	}

	return dst, fmt.Errorf("%w: %q", errs.ErrInvalidCharacter, v)
}

// EncodeMultiBit appends the encoding of a multi-bit bit-vector signal's
// new value.
//
// variant_u64((time_delta<<1) | !is_digital) is emitted first. If every
// byte of values is '0'/'1', the bits are packed 8/byte, MSB first,
// left-to-right, zero-padding the final byte. Otherwise values is emitted
// verbatim (one byte per 9-state character).
func EncodeMultiBit(dst []byte, timeDelta uint64, values []byte) []byte {
	isDigital := true
	for _, v := range values {
		if v != '0' && v != '1' {
			isDigital = false
			break
		}
	}

	tag := uint64(0)
	if !isDigital {
		tag = 1
	}
	dst = endian.AppendVariantU64(dst, (timeDelta<<1)|tag)

	if !isDigital {
		return append(dst, values...)
	}

	return packDigitalBits(dst, values)
}

// EncodeReal appends the encoding of a real-valued signal's new value:
// variant_u64(time_delta<<1) (bit 0 clear, the dense-packed path) followed
// by the value as a little-endian float64.
func EncodeReal(dst []byte, timeDelta uint64, value float64) []byte {
	dst = endian.AppendVariantU64(dst, timeDelta<<1)
	engine := endian.NewEngine()
	return engine.PutF64LE(dst, value)
}

// packDigitalBits packs values (a byte string of '0'/'1' characters) into
// dst at 8 bits per output byte, most-significant-bit first, padding the
// final partial byte with zero bits.
func packDigitalBits(dst []byte, values []byte) []byte {
	var cur byte
	nbits := 0

	for _, v := range values {
		bit := byte(0)
		if v == '1' {
			bit = 1
		}
		cur = (cur << 1) | bit
		nbits++
		if nbits == 8 {
			dst = append(dst, cur)
			cur = 0
			nbits = 0
		}
	}

	if nbits > 0 {
		cur <<= (8 - nbits) //nolint:gosec
		dst = append(dst, cur)
	}

	return dst
}

// ExpandValue expands value to exactly width bytes per the special-value
// expansion rule (spec §4.6): if value is already width bytes, it is
// returned unchanged. If shorter, its leading character determines the
// pad: '0'/'1' zero-extend with '0'; 'x'/'X'/'z'/'Z' extend with a copy of
// that character. Any other leading character, or a value longer than
// width, is an error.
func ExpandValue(value []byte, width int) ([]byte, error) {
	if len(value) == width {
		return value, nil
	}
	if len(value) > width || len(value) == 0 {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", errs.ErrInvalidValueLength, width, len(value))
	}

	var pad byte
	switch value[0] {
	case '0', '1':
		pad = '0'
	case 'x', 'X', 'z', 'Z':
		pad = value[0]
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidCharacter, value[0])
	}

	out := make([]byte, width)
	padLen := width - len(value)
	for i := 0; i < padLen; i++ {
		out[i] = pad
	}
	copy(out[padLen:], value)

	return out, nil
}
