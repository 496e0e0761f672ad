package fst

// A minimal, test-only decoder for the blocks this writer produces. It is
// not a production FST reader (spec §1 puts readers out of scope) — it
// exists solely so the round-trip tests in fst_test.go can assert the
// writer's own bytes are self-consistent, per spec §8's round-trip
// property.

import (
	"encoding/binary"
	"os"
	"testing"

	"github.com/ekiwi/fst-writer/compress"
	"github.com/ekiwi/fst-writer/endian"
	"github.com/stretchr/testify/require"
)

type decodedHeader struct {
	StartTime, EndTime             uint64
	ScopeCount, VarCount, MaxHandle uint64
	VCSectionCount                 uint64
	TimescaleExp                   int8
	Version, Date                  string
	FileType                       byte
	TimeZero                       uint64
}

type decodedSection struct {
	StartTime, EndTime uint64
	TimeTableDeltas    []uint64
	Frame              []byte
	Chains             [][]byte // per-signal raw concatenated records
}

type decodedFile struct {
	Header   decodedHeader
	Widths   []uint64
	Sections []decodedSection
}

func readAll(t *testing.T, path string) []byte {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return raw
}

func beU64(b []byte) uint64 { return binary.BigEndian.Uint64(b) }

func decodeFile(t *testing.T, path string) decodedFile {
	t.Helper()
	raw := readAll(t, path)

	var out decodedFile
	pos := 0

	// Header block (tag 0, fixed 329-byte length).
	require.Equal(t, byte(0), raw[pos])
	pos++
	length := beU64(raw[pos : pos+8])
	pos += 8
	body := raw[pos : pos+int(length)-8]
	pos += int(length) - 8

	out.Header.StartTime = beU64(body[0:8])
	out.Header.EndTime = beU64(body[8:16])
	// body[16:24] is the f64 endianness constant; skipped.
	out.Header.ScopeCount = beU64(body[32:40])
	out.Header.VarCount = beU64(body[40:48])
	out.Header.MaxHandle = beU64(body[48:56])
	out.Header.VCSectionCount = beU64(body[56:64])
	out.Header.TimescaleExp = int8(body[64]) //nolint:gosec
	out.Header.Version = cstrFixed(body[65 : 65+128])
	out.Header.Date = cstrFixed(body[65+128 : 65+128+119])
	out.Header.FileType = body[65+128+119]
	out.Header.TimeZero = beU64(body[65+128+119+1:])

	// HierarchyLZ4 block (tag 6): skip over it, we don't decode names here.
	require.Equal(t, byte(6), raw[pos])
	pos++
	length = beU64(raw[pos : pos+8])
	pos += 8 + int(length) - 8

	// Geometry block (tag 3).
	require.Equal(t, byte(3), raw[pos])
	pos++
	length = beU64(raw[pos : pos+8])
	geomBody := raw[pos+8 : pos+8+int(length)-8]
	pos += 8 + int(length) - 8

	widthBytes := geomBody[16:]
	for len(widthBytes) > 0 {
		v, n, ok := endian.DecodeVariantU64(widthBytes)
		require.True(t, ok)
		out.Widths = append(out.Widths, v)
		widthBytes = widthBytes[n:]
	}

	codec := compress.NewLZ4Compressor()

	for pos < len(raw) {
		require.Equal(t, byte(8), raw[pos])
		pos++
		length = beU64(raw[pos : pos+8])
		sectionBody := raw[pos+8 : pos+8+int(length)-8]
		pos += 8 + int(length) - 8

		out.Sections = append(out.Sections, decodeVCSection(t, sectionBody, codec))
	}

	return out
}

func cstrFixed(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func decodeVCSection(t *testing.T, body []byte, codec compress.Codec) decodedSection {
	t.Helper()
	var sec decodedSection

	sec.StartTime = beU64(body[0:8])
	sec.EndTime = beU64(body[8:16])
	rest := body[24:]

	// Frame.
	uncompLen, n, ok := endian.DecodeVariantU64(rest)
	require.True(t, ok)
	rest = rest[n:]
	_, n, ok = endian.DecodeVariantU64(rest) // compressed_len, unused (== uncompLen)
	require.True(t, ok)
	rest = rest[n:]
	_, n, ok = endian.DecodeVariantU64(rest) // max_handle
	require.True(t, ok)
	rest = rest[n:]
	sec.Frame = rest[:uncompLen]
	rest = rest[uncompLen:]

	// Value-change payload.
	maxHandle, n, ok := endian.DecodeVariantU64(rest)
	require.True(t, ok)
	rest = rest[n:]
	require.Equal(t, byte('4'), rest[0])
	rest = rest[1:]
	payloadUncompLen, n, ok := endian.DecodeVariantU64(rest)
	require.True(t, ok)
	rest = rest[n:]
	payloadCompLen, n, ok := endian.DecodeVariantU64(rest)
	require.True(t, ok)
	rest = rest[n:]

	compressed := rest[:payloadCompLen]
	rest = rest[payloadCompLen:]

	var uncompressed []byte
	switch {
	case payloadUncompLen == 0:
		// nothing to do
	case payloadCompLen == payloadUncompLen:
		// LZ4Compressor.Compress falls back to storing the data verbatim
		// when it is incompressible (compressed/uncompressed lengths equal
		// signals this, per its own doc comment); nothing to decompress.
		uncompressed = compressed
	default:
		var err error
		uncompressed, err = codec.(interface {
			DecompressTo([]byte, int) ([]byte, error)
		}).DecompressTo(compressed, int(payloadUncompLen))
		require.NoError(t, err)
	}

	offsetTable := uncompressed[:8*maxHandle]
	chainsBlob := uncompressed[8*maxHandle:]
	for i := uint64(0); i < maxHandle; i++ {
		start := beU64(offsetTable[i*8 : i*8+8])
		var end uint64
		if i+1 < maxHandle {
			end = beU64(offsetTable[(i+1)*8 : (i+1)*8+8])
		} else {
			end = uint64(len(chainsBlob)) //nolint:gosec
		}
		sec.Chains = append(sec.Chains, chainsBlob[start:end])
	}

	// Time-table tail: [time_table bytes][uncompressed_len:u64][compressed_len:u64][entries:u64].
	// The two length fields are always equal (the time table is never
	// compressed), so either can be used to find where the raw bytes end.
	tail := rest
	entries := beU64(tail[len(tail)-8:])
	tableLen := beU64(tail[len(tail)-24 : len(tail)-16])
	timeTableBytes := tail[:tableLen]
	for len(timeTableBytes) > 0 {
		v, nn, ok := endian.DecodeVariantU64(timeTableBytes)
		require.True(t, ok)
		sec.TimeTableDeltas = append(sec.TimeTableDeltas, v)
		timeTableBytes = timeTableBytes[nn:]
	}
	require.Equal(t, entries, uint64(len(sec.TimeTableDeltas)))

	return sec
}

// nineStateChar is the inverse of valueenc's nineStateCode map.
var nineStateChar = map[uint64]byte{0: 'x', 1: 'z', 2: 'h', 3: 'u', 4: 'w', 5: 'l', 6: '-', 7: '?'}

type oneBitRecord struct {
	Delta uint64
	Value byte
}

// decodeOneBitChain parses a chain produced by valueenc.EncodeOneBit.
func decodeOneBitChain(t *testing.T, chain []byte) []oneBitRecord {
	t.Helper()
	var out []oneBitRecord
	for len(chain) > 0 {
		v, n, ok := endian.DecodeVariantU64(chain)
		require.True(t, ok)
		chain = chain[n:]

		var rec oneBitRecord
		if v&1 == 0 {
			rec.Delta = v >> 2
			if (v>>1)&1 == 1 {
				rec.Value = '1'
			} else {
				rec.Value = '0'
			}
		} else {
			rec.Delta = v >> 4
			rec.Value = nineStateChar[(v>>1)&0x7]
		}
		out = append(out, rec)
	}
	return out
}

type multiBitRecord struct {
	Delta uint64
	Value string
}

// decodeMultiBitChain parses a chain produced by valueenc.EncodeMultiBit for
// a signal of the given bit width.
func decodeMultiBitChain(t *testing.T, chain []byte, width int) []multiBitRecord {
	t.Helper()
	var out []multiBitRecord
	for len(chain) > 0 {
		v, n, ok := endian.DecodeVariantU64(chain)
		require.True(t, ok)
		chain = chain[n:]

		nonDigital := v&1 == 1
		rec := multiBitRecord{Delta: v >> 1}
		if nonDigital {
			rec.Value = string(chain[:width])
			chain = chain[width:]
		} else {
			packedLen := (width + 7) / 8
			rec.Value = unpackDigitalBits(chain[:packedLen], width)
			chain = chain[packedLen:]
		}
		out = append(out, rec)
	}
	return out
}

func unpackDigitalBits(packed []byte, width int) string {
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		byteIdx := i / 8
		bitIdx := 7 - (i % 8)
		bit := (packed[byteIdx] >> uint(bitIdx)) & 1 //nolint:gosec
		if bit == 1 {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out)
}
