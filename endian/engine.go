// Package endian provides the fixed-endian integer/float primitives and the
// LEB128-style variant-integer codec used throughout the FST block format.
//
// FST mixes two byte orders in the same file: integers in block headers and
// section framing are big-endian, while the single f64 endianness-test
// constant in the header is little-endian. Keeping both behind one small
// package (rather than reaching for encoding/binary ad hoc at every call
// site) keeps the choice explicit at each write.
package endian

import (
	"encoding/binary"
	"math"
)

// Engine writes the fixed-width integer and float primitives used by the FST
// format. All multi-byte integers are big-endian; the one f64 written to the
// header is little-endian by convention (readers use it to detect host byte
// order, not to select a decode path).
type Engine struct{}

// NewEngine returns the (stateless) big-endian primitive writer.
func NewEngine() Engine { return Engine{} }

// PutU64 appends a big-endian uint64.
func (Engine) PutU64(dst []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(dst, v)
}

// PutU32 appends a big-endian uint32.
func (Engine) PutU32(dst []byte, v uint32) []byte {
	return binary.BigEndian.AppendUint32(dst, v)
}

// PutU8 appends a single byte.
func (Engine) PutU8(dst []byte, v uint8) []byte {
	return append(dst, v)
}

// PutI8 appends a signed byte.
func (Engine) PutI8(dst []byte, v int8) []byte {
	return append(dst, byte(v))
}

// PutF64LE appends a little-endian IEEE 754 float64. FST uses this solely
// for the header's endianness-test constant (math.E).
func (Engine) PutF64LE(dst []byte, v float64) []byte {
	return binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
}

// Float64FromLEBytes decodes a little-endian IEEE 754 float64 from exactly
// 8 bytes, the layout PutF64LE/EncodeReal use for real-valued signals.
func Float64FromLEBytes(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

// EndiannessTestConstant is the value the header's canonical f64 field
// stores; a reader compares the decoded bytes against this constant (or its
// byte-swapped form) to determine host byte order.
const EndiannessTestConstant = math.E

// CStr appends the raw bytes of s followed by a single zero terminator.
func CStr(dst []byte, s string) []byte {
	dst = append(dst, s...)
	return append(dst, 0)
}

// CStrFixed appends the bytes of s followed by zero padding so the total
// appended length is exactly n. It fails if len(s) >= n, since at least one
// terminating zero byte must fit.
func CStrFixed(dst []byte, s string, n int) ([]byte, bool) {
	if len(s) >= n {
		return dst, false
	}
	dst = append(dst, s...)
	for i := len(s); i < n; i++ {
		dst = append(dst, 0)
	}
	return dst, true
}
