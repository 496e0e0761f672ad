package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances; the compressor keeps an
// internal hash table that is worth reusing across the many small blocks
// (hierarchy, each value-change section's packed stream) a single writer
// produces over its lifetime.
var lz4CompressorPool = sync.Pool{
	New: func() any { return &lz4.Compressor{} },
}

// LZ4Compressor implements Codec using raw (frameless) LZ4 blocks, matching
// the FST format's HierarchyLZ4 block and the '4' pack-type tag in the
// value-change section.
type LZ4Compressor struct{}

var _ Codec = LZ4Compressor{}

// NewLZ4Compressor returns an LZ4Compressor.
func NewLZ4Compressor() LZ4Compressor { return LZ4Compressor{} }

// Compress LZ4-compresses data as a single raw block.
func (LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	c, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(c)

	n, err := c.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Incompressible input: lz4 signals this by writing zero bytes.
		// Store the block uncompressed; callers compare compressed/
		// uncompressed length to detect this case if they need to.
		return data, nil
	}

	return dst[:n], nil
}

// Decompress reverses Compress without knowing the uncompressed length.
// Since raw LZ4 blocks carry no size header, it guesses: it starts with a
// buffer four times the input size and doubles it on a short-buffer error,
// up to 128 MiB. Data stored verbatim by Compress's incompressible fallback
// is not recognized and is decoded as an LZ4 block. Callers that know the
// uncompressed length (FST records it alongside the compressed length in
// the section framing) can use DecompressTo instead.
func (LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	bufSize := len(data) * 4
	const maxSize = 128 * 1024 * 1024

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}
			return nil, err
		}
		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}

// DecompressTo decompresses data into a buffer of exactly uncompressedSize
// bytes. FST sections always record the uncompressed length, so readers
// should prefer this over the size-guessing Decompress.
func (LZ4Compressor) DecompressTo(data []byte, uncompressedSize int) ([]byte, error) {
	if uncompressedSize == 0 {
		return nil, nil
	}
	dst := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}
