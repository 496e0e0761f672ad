package section

import (
	"fmt"
	"io"

	"github.com/ekiwi/fst-writer/endian"
)

// Writer frames one FST block on a seekable output stream: write the tag,
// reserve the length field, let the caller write the body, then seek back
// and patch the length once the body's size is known.
//
// A Writer must not be reused after End(); create a new one per block via
// BeginBlock.
type Writer struct {
	w         io.WriteSeeker
	engine    endian.Engine
	lenPos    int64 // file offset of the reserved 8-byte length field
	bodyStart int64 // file offset where the body begins (lenPos + 8)
	ended     bool
}

// BeginBlock writes the block's tag byte, reserves its length field, and
// returns a Writer positioned at the start of the body.
func BeginBlock(w io.WriteSeeker, tag BlockTag) (*Writer, error) {
	engine := endian.NewEngine()

	if _, err := w.Write(engine.PutU8(nil, uint8(tag))); err != nil {
		return nil, fmt.Errorf("section: write block tag: %w", err)
	}

	lenPos, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("section: locate length field: %w", err)
	}

	if _, err := w.Write(make([]byte, 8)); err != nil {
		return nil, fmt.Errorf("section: reserve length field: %w", err)
	}

	return &Writer{
		w:         w,
		engine:    engine,
		lenPos:    lenPos,
		bodyStart: lenPos + 8,
	}, nil
}

// Write appends raw bytes to the block body.
func (bw *Writer) Write(p []byte) (int, error) {
	return bw.w.Write(p)
}

// Pos returns the writer's current absolute file offset.
func (bw *Writer) Pos() (int64, error) {
	return bw.w.Seek(0, io.SeekCurrent)
}

// ReservePatch writes 8 zero bytes at the current position and returns a
// Patch that can later overwrite them, e.g. for a section's
// uncompressed-length or max-handle field that is only known after the
// body has been produced.
func (bw *Writer) ReservePatch() (Patch, error) {
	pos, err := bw.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return Patch{}, err
	}
	if _, err := bw.w.Write(make([]byte, 8)); err != nil {
		return Patch{}, err
	}
	return Patch{pos: pos}, nil
}

// PatchU64 writes value into a previously reserved Patch location, then
// restores the stream position to where it was before the call.
func (bw *Writer) PatchU64(p Patch, value uint64) error {
	resume, err := bw.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err := bw.w.Seek(p.pos, io.SeekStart); err != nil {
		return err
	}
	if _, err := bw.w.Write(bw.engine.PutU64(nil, value)); err != nil {
		return err
	}
	_, err = bw.w.Seek(resume, io.SeekStart)
	return err
}

// End finishes the block: it measures the body written since BeginBlock,
// seeks back to the reserved length field, writes the final length — which
// by convention (matching the header's 329-byte self-inclusive count)
// includes the 8-byte length field itself — and seeks forward again so the
// stream is left positioned at the end of the block, ready for the next
// one.
func (bw *Writer) End() (length uint64, err error) {
	if bw.ended {
		return 0, fmt.Errorf("section: block writer already ended")
	}
	bw.ended = true

	end, err := bw.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}

	length = uint64(end - bw.lenPos) //nolint:gosec

	if _, err := bw.w.Seek(bw.lenPos, io.SeekStart); err != nil {
		return 0, err
	}
	if _, err := bw.w.Write(bw.engine.PutU64(nil, length)); err != nil {
		return 0, err
	}
	if _, err := bw.w.Seek(end, io.SeekStart); err != nil {
		return 0, err
	}

	return length, nil
}

// Patch is an opaque handle to a reserved 8-byte field inside a block body
// that will be overwritten once its value is known.
type Patch struct {
	pos int64
}
