package fst

import (
	"io"
	"os"

	"github.com/ekiwi/fst-writer/errs"
	"github.com/ekiwi/fst-writer/internal/iox"
	"github.com/ekiwi/fst-writer/section"
	"github.com/ekiwi/fst-writer/signalbuf"
)

// BodyWriter is the writer's body phase: TimeChange/SignalChange/Flush
// drive one or more value-change sections; Finish flushes any pending
// section, back-patches the header with final counts, and closes the
// file.
type BodyWriter struct {
	f   *os.File
	out *iox.BufSeekWriter
	cfg config

	info Info
	buf  *signalbuf.Buffer

	scopeCount     uint64
	varCount       uint64
	maxHandle      uint64
	vcSectionCount uint64
	endTime        uint64

	finished bool
}

// TimeChange advances the current value-change section's time. t must be
// >= the section's current end time; equal values are a no-op.
func (b *BodyWriter) TimeChange(t uint64) error {
	if b.finished {
		return errs.ErrAlreadyFinished
	}
	if err := b.buf.TimeChange(t); err != nil {
		return err
	}
	return b.maybeAutoFlush()
}

// SignalChange records a new value for id (a SignalId returned by
// HeaderWriter.Var). value is normalized to the signal's declared width
// per spec §4.6's special-value expansion if it is shorter.
func (b *BodyWriter) SignalChange(id SignalId, value []byte) error {
	if b.finished {
		return errs.ErrAlreadyFinished
	}
	if err := b.buf.SignalChange(int(id)-1, value); err != nil { //nolint:gosec
		return err
	}
	return b.maybeAutoFlush()
}

func (b *BodyWriter) maybeAutoFlush() error {
	if b.cfg.autoFlushBytes > 0 && b.buf.Size() >= b.cfg.autoFlushBytes {
		return b.Flush()
	}
	return nil
}

// Size reports the bytes currently buffered for the in-progress
// value-change section.
func (b *BodyWriter) Size() int { return b.buf.Size() }

// Flush writes the current value-change section as a VcDataDynamicAlias2
// block and resets state for the next section.
func (b *BodyWriter) Flush() error {
	if b.finished {
		return errs.ErrAlreadyFinished
	}
	return b.flush()
}

func (b *BodyWriter) flush() error {
	endTime, err := b.buf.Flush(b.out)
	if err != nil {
		return err
	}
	b.endTime = endTime
	b.vcSectionCount++
	return nil
}

// Finish flushes any pending value-change section, rewrites the header
// with final counts, flushes buffered output, and closes the file. The
// BodyWriter must not be used afterward.
func (b *BodyWriter) Finish() error {
	if b.finished {
		return errs.ErrAlreadyFinished
	}

	if err := b.flush(); err != nil {
		return err
	}
	b.finished = true
	b.buf.Release()

	h := section.Header{
		StartTime:      b.info.StartTime,
		EndTime:        b.endTime,
		ScopeCount:     b.scopeCount,
		VarCount:       b.varCount,
		MaxHandle:      b.maxHandle,
		VCSectionCount: b.vcSectionCount,
		TimescaleExp:   b.info.TimescaleExp,
		Version:        b.info.Version,
		Date:           b.info.Date,
		FileType:       b.info.FileType,
		TimeZero:       0,
	}
	if err := section.WriteHeaderAt(b.out, 0, h); err != nil {
		return err
	}

	if err := b.out.Flush(); err != nil {
		return err
	}

	return b.out.Close()
}

var _ io.Closer = (*BodyWriter)(nil)

// Close aborts the write: it releases pooled resources and closes the
// underlying file without rewriting the header, leaving a file with an
// incomplete (placeholder) header. Call Finish for a valid file; Close
// exists only so BodyWriter satisfies io.Closer for use in defer-on-error
// paths.
func (b *BodyWriter) Close() error {
	if b.finished {
		return nil
	}
	b.finished = true
	b.buf.Release()
	return b.f.Close()
}
