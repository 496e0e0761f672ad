package valueenc

import (
	"testing"

	"github.com/ekiwi/fst-writer/endian"
	"github.com/ekiwi/fst-writer/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeOneBitTwoState(t *testing.T) {
	buf, err := EncodeOneBit(nil, 3, '0')
	require.NoError(t, err)
	v, _, ok := endian.DecodeVariantU64(buf)
	require.True(t, ok)
	assert.Equal(t, uint64(3<<2), v)

	buf, err = EncodeOneBit(nil, 3, '1')
	require.NoError(t, err)
	v, _, ok = endian.DecodeVariantU64(buf)
	require.True(t, ok)
	assert.Equal(t, uint64((3<<2)|(1<<1)), v)
}

func TestEncodeOneBitNineState(t *testing.T) {
	buf, err := EncodeOneBit(nil, 2, 'x')
	require.NoError(t, err)
	v, _, ok := endian.DecodeVariantU64(buf)
	require.True(t, ok)
	assert.Equal(t, uint64((2<<4)|(0<<1)|1), v)

	buf, err = EncodeOneBit(nil, 2, 'Z')
	require.NoError(t, err)
	v, _, ok = endian.DecodeVariantU64(buf)
	require.True(t, ok)
	assert.Equal(t, uint64((2<<4)|(1<<1)|1), v)
}

func TestEncodeOneBitInvalidCharacter(t *testing.T) {
	_, err := EncodeOneBit(nil, 0, '2')
	assert.ErrorIs(t, err, errs.ErrInvalidCharacter)
}

func TestEncodeMultiBitDigitalPacking(t *testing.T) {
	buf := EncodeMultiBit(nil, 1, []byte("1010101010101010"))
	tag, n, ok := endian.DecodeVariantU64(buf)
	require.True(t, ok)
	assert.Equal(t, uint64(1<<1), tag) // digital: bit0 clear

	packed := buf[n:]
	require.Len(t, packed, 2)
	assert.Equal(t, byte(0b10101010), packed[0])
	assert.Equal(t, byte(0b10101010), packed[1])
}

func TestEncodeMultiBitNonDigitalVerbatim(t *testing.T) {
	values := []byte("101010XX10101010")
	buf := EncodeMultiBit(nil, 1, values)
	tag, n, ok := endian.DecodeVariantU64(buf)
	require.True(t, ok)
	assert.Equal(t, uint64((1<<1)|1), tag) // non-digital: bit0 set

	assert.Equal(t, values, buf[n:])
}

func TestEncodeMultiBitPartialByteZeroPadded(t *testing.T) {
	buf := EncodeMultiBit(nil, 0, []byte("101"))
	_, n, ok := endian.DecodeVariantU64(buf)
	require.True(t, ok)
	packed := buf[n:]
	require.Len(t, packed, 1)
	assert.Equal(t, byte(0b1010_0000), packed[0])
}

func TestEncodeReal(t *testing.T) {
	buf := EncodeReal(nil, 9, 3.25)
	delta, n, ok := endian.DecodeVariantU64(buf)
	require.True(t, ok)
	assert.Equal(t, uint64(9<<1), delta)
	assert.Equal(t, 3.25, endian.Float64FromLEBytes(buf[n:]))
}

func TestExpandValueExactLength(t *testing.T) {
	v, err := ExpandValue([]byte("1010"), 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("1010"), v)
}

func TestExpandValueZeroExtend(t *testing.T) {
	v, err := ExpandValue([]byte("1"), 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("0001"), v)
}

func TestExpandValueXExtend(t *testing.T) {
	v, err := ExpandValue([]byte("x"), 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("xxxx"), v)

	v, err = ExpandValue([]byte("Z"), 4)
	require.NoError(t, err)
	assert.Equal(t, []byte("ZZZZ"), v)
}

func TestExpandValueInvalidLeadingCharacter(t *testing.T) {
	_, err := ExpandValue([]byte("2"), 4)
	assert.ErrorIs(t, err, errs.ErrInvalidCharacter)
}

func TestExpandValueTooLong(t *testing.T) {
	_, err := ExpandValue([]byte("11111"), 4)
	assert.ErrorIs(t, err, errs.ErrInvalidValueLength)
}

func TestExpandValueEightBitShortExtend(t *testing.T) {
	v, err := ExpandValue([]byte("1"), 8)
	require.NoError(t, err)
	assert.Equal(t, []byte("00000001"), v)
}
