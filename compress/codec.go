// Package compress provides the block compression used by the hierarchy
// section and the value-change section's per-signal packed stream.
//
// The FST format fixes LZ4 as the only compression algorithm for these
// sections (block tag HierarchyLZ4, pack-type byte '4'); this package keeps
// a small Codec interface around that single implementation so the rest of
// the writer depends on an interface, not a concrete compressor, the way
// the teacher corpus does even where only one implementation exists.
package compress

// Codec compresses and decompresses a byte buffer in one shot. FST sections
// are always compressed as a single LZ4 block (no framing), so a streaming
// interface is unnecessary.
type Codec interface {
	// Compress returns the compressed form of data. A nil/empty input
	// returns a nil result without error.
	Compress(data []byte) ([]byte, error)

	// Decompress returns the decompressed form of data.
	Decompress(data []byte) ([]byte, error)
}
