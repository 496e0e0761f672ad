package section

import (
	"fmt"
	"io"

	"github.com/ekiwi/fst-writer/endian"
	"github.com/ekiwi/fst-writer/errs"
)

// Header is the fixed-layout content of the tag-0 Header block (spec §4.8):
// a 321-byte body, 329 bytes counting the block's length field.
// It is written once with placeholder counts when the file is opened, and
// rewritten in place (seek to offset 0) once the trace is finished and the
// real counts are known.
type Header struct {
	StartTime      uint64
	EndTime        uint64
	ScopeCount     uint64
	VarCount       uint64
	MaxHandle      uint64
	VCSectionCount uint64
	TimescaleExp   int8
	Version        string
	Date           string
	FileType       FileType
	TimeZero       uint64

	// MemoryUsed is advisory (bytes of writer-side memory at finish time);
	// readers do not rely on it. Left zero unless the caller wants to
	// report it for diagnostics.
	MemoryUsed uint64
}

// Bytes serializes the header body (321 bytes, everything after the
// block's own length field) in the fixed layout from spec §4.8.
func (h Header) Bytes() ([]byte, error) {
	engine := endian.NewEngine()
	buf := make([]byte, 0, HeaderBodySize-8)

	buf = engine.PutU64(buf, h.StartTime)
	buf = engine.PutU64(buf, h.EndTime)
	buf = engine.PutF64LE(buf, endian.EndiannessTestConstant)
	buf = engine.PutU64(buf, h.MemoryUsed)
	buf = engine.PutU64(buf, h.ScopeCount)
	buf = engine.PutU64(buf, h.VarCount)
	buf = engine.PutU64(buf, h.MaxHandle)
	buf = engine.PutU64(buf, h.VCSectionCount)
	buf = engine.PutI8(buf, h.TimescaleExp)

	var ok bool
	buf, ok = endian.CStrFixed(buf, h.Version, HeaderVersionFieldSize)
	if !ok {
		return nil, fmt.Errorf("%w: version %q exceeds %d bytes", errs.ErrStringTooLong, h.Version, HeaderVersionFieldSize-1)
	}
	buf, ok = endian.CStrFixed(buf, h.Date, HeaderDateFieldSize)
	if !ok {
		return nil, fmt.Errorf("%w: date %q exceeds %d bytes", errs.ErrStringTooLong, h.Date, HeaderDateFieldSize-1)
	}

	buf = engine.PutU8(buf, uint8(h.FileType))
	buf = engine.PutU64(buf, h.TimeZero)

	return buf, nil
}

// WriteHeaderAt writes the full Header block (tag + length + body) starting at
// the given absolute offset. Used both for the initial placeholder write
// (offset 0) and the final rewrite once counts are known.
func WriteHeaderAt(w io.WriteSeeker, offset int64, h Header) error {
	if _, err := w.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("section: seek to header offset: %w", err)
	}

	bw, err := BeginBlock(w, TagHeader)
	if err != nil {
		return err
	}

	body, err := h.Bytes()
	if err != nil {
		return err
	}
	if _, err := bw.Write(body); err != nil {
		return fmt.Errorf("section: write header body: %w", err)
	}

	length, err := bw.End()
	if err != nil {
		return err
	}
	if length != HeaderBodySize {
		return fmt.Errorf("section: header body length %d, expected %d", length, HeaderBodySize)
	}

	return nil
}
