// Package hierarchy implements the hierarchy buffer (spec §4.3, component
// C3): the byte-accumulating encoder for scope/up-scope/var records that is
// LZ4-compressed and flushed as a single HierarchyLZ4 block.
//
// The writer never stores or traverses an explicit tree; it only tracks
// scope depth and appends record bytes, mirroring the teacher's
// VarStringEncoder (encoding/varstring.go): a flat growable buffer plus a
// running count, with no intermediate data structure.
package hierarchy

import (
	"fmt"
	"io"

	"github.com/ekiwi/fst-writer/compress"
	"github.com/ekiwi/fst-writer/endian"
	"github.com/ekiwi/fst-writer/errs"
	"github.com/ekiwi/fst-writer/internal/pool"
	"github.com/ekiwi/fst-writer/section"
)

const (
	tagScope   = 0xFE
	tagUpScope = 0xFF
)

// Buffer accumulates hierarchy records and tracks scope depth.
type Buffer struct {
	buf        *pool.Buffer
	depth      int
	scopeCount uint64
	varCount   uint64
	nameLimit  int
}

// NewBuffer creates an empty hierarchy buffer. nameLimit bounds scope and
// var names (spec §4.3); a value <= 0 falls back to the format's default,
// section.MaxHierarchyNameLength.
func NewBuffer(nameLimit int) *Buffer {
	if nameLimit <= 0 {
		nameLimit = section.MaxHierarchyNameLength
	}
	return &Buffer{buf: pool.GetSectionBuffer(), nameLimit: nameLimit}
}

// Scope appends a scope-open record and increments depth.
//
// Record layout: 0xFE | tpe:u8 | c_str(name) | c_str(component).
func (b *Buffer) Scope(name, component string, tpe section.ScopeType) error {
	if len(name) >= b.nameLimit || len(component) >= b.nameLimit {
		return fmt.Errorf("%w: scope name/component too long", errs.ErrNameTooLong)
	}

	b.buf.Grow(2 + len(name) + len(component) + 2)
	b.buf.AppendByte(tagScope)
	b.buf.AppendByte(byte(tpe))
	b.buf.B = endian.CStr(b.buf.B, name)
	b.buf.B = endian.CStr(b.buf.B, component)

	b.depth++
	b.scopeCount++

	return nil
}

// UpScope appends a scope-close record and decrements depth.
//
// Record layout: 0xFF.
func (b *Buffer) UpScope() error {
	if b.depth == 0 {
		return fmt.Errorf("up_scope called with no open scope")
	}
	b.buf.AppendByte(tagUpScope)
	b.depth--
	return nil
}

// Var appends a variable record.
//
// Record layout:
//
//	var_tpe:u8 | direction:u8 | c_str(name) | variant_u64(raw_length) | variant_u64(alias_index)
//
// aliasIndex is 0 when the variable is not an alias, otherwise the 1-based
// handle of the signal it aliases.
func (b *Buffer) Var(name string, sigType section.SignalType, varType section.VarType, dir section.VarDirection, aliasIndex uint64) error {
	if len(name) >= b.nameLimit {
		return fmt.Errorf("%w: var name too long", errs.ErrNameTooLong)
	}

	rawLen := sigType.HierarchyRawLength(varType)

	b.buf.Grow(2 + len(name) + 1 + endian.MaxVariantLen*2)
	b.buf.AppendByte(byte(varType))
	b.buf.AppendByte(byte(dir))
	b.buf.B = endian.CStr(b.buf.B, name)
	b.buf.B = endian.AppendVariantU64(b.buf.B, rawLen)
	b.buf.B = endian.AppendVariantU64(b.buf.B, aliasIndex)

	b.varCount++

	return nil
}

// Depth returns the current scope nesting depth.
func (b *Buffer) Depth() int { return b.depth }

// ScopeCount returns the number of Scope calls made so far.
func (b *Buffer) ScopeCount() uint64 { return b.scopeCount }

// VarCount returns the number of Var calls made so far.
func (b *Buffer) VarCount() uint64 { return b.varCount }

// Bytes returns the accumulated, uncompressed hierarchy record bytes.
func (b *Buffer) Bytes() []byte { return b.buf.Bytes() }

// Flush LZ4-compresses the accumulated buffer and writes it as a single
// HierarchyLZ4 block to w: tag | length | uncompressed_len:u64 | compressed bytes.
func (b *Buffer) Flush(w io.WriteSeeker, codec compress.Codec) error {
	if b.depth != 0 {
		return errs.ErrScopeNotClosed
	}

	uncompressed := b.Bytes()
	compressed, err := codec.Compress(uncompressed)
	if err != nil {
		return fmt.Errorf("hierarchy: compress: %w", err)
	}

	bw, err := section.BeginBlock(w, section.TagHierarchyLZ4)
	if err != nil {
		return err
	}

	engine := endian.NewEngine()
	if _, err := bw.Write(engine.PutU64(nil, uint64(len(uncompressed)))); err != nil {
		return fmt.Errorf("hierarchy: write uncompressed length: %w", err)
	}
	if _, err := bw.Write(compressed); err != nil {
		return fmt.Errorf("hierarchy: write compressed body: %w", err)
	}

	_, err = bw.End()
	return err
}

// Release returns the internal buffer to the pool. Call after Flush.
func (b *Buffer) Release() {
	if b.buf != nil {
		pool.PutSectionBuffer(b.buf)
		b.buf = nil
	}
}
