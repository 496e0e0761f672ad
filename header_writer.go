package fst

import (
	"fmt"
	"os"

	"github.com/ekiwi/fst-writer/compress"
	"github.com/ekiwi/fst-writer/errs"
	"github.com/ekiwi/fst-writer/geometry"
	"github.com/ekiwi/fst-writer/hierarchy"
	"github.com/ekiwi/fst-writer/internal/iox"
	"github.com/ekiwi/fst-writer/internal/options"
	"github.com/ekiwi/fst-writer/section"
	"github.com/ekiwi/fst-writer/signalbuf"
)

// HeaderWriter is the writer's header phase: the only phase in which
// Scope, UpScope, and Var may be called. Finish closes it and returns the
// BodyWriter for the body phase.
type HeaderWriter struct {
	f    *os.File
	out  *iox.BufSeekWriter
	cfg  config
	info Info

	hier    *hierarchy.Buffer
	codec   compress.Codec
	signals []section.SignalType // non-alias signals, index = handle-1

	finished bool
}

// Open creates path, writes a placeholder header, and returns a
// HeaderWriter ready to accept Scope/UpScope/Var calls.
func Open(path string, info Info, opts ...Option) (*HeaderWriter, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("fst: create %s: %w", path, err)
	}

	out := iox.NewBufSeekWriter(f, cfg.bufferedWriterSize)

	placeholder := section.Header{
		StartTime:    info.StartTime,
		EndTime:      info.StartTime,
		TimescaleExp: info.TimescaleExp,
		Version:      info.Version,
		Date:         info.Date,
		FileType:     info.FileType,
	}
	if err := section.WriteHeaderAt(out, 0, placeholder); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &HeaderWriter{
		f:     f,
		out:   out,
		cfg:   cfg,
		info:  info,
		hier:  hierarchy.NewBuffer(cfg.hierarchyNameLimit),
		codec: compress.NewLZ4Compressor(),
	}, nil
}

// Scope appends a scope-open record to the hierarchy.
func (h *HeaderWriter) Scope(name, component string, tpe ScopeType) error {
	if h.finished {
		return errs.ErrAlreadyFinished
	}
	return h.hier.Scope(name, component, tpe)
}

// UpScope appends a scope-close record to the hierarchy.
func (h *HeaderWriter) UpScope() error {
	if h.finished {
		return errs.ErrAlreadyFinished
	}
	return h.hier.UpScope()
}

// Var registers a signal. If alias is nil, the next sequential handle is
// assigned and a storage slot reserved for it. If alias is non-nil, it
// must name a previously registered non-alias SignalId; the returned
// SignalId equals alias, and no new storage slot is created — writes
// through either handle update the same values (spec §3, invariant 4).
func (h *HeaderWriter) Var(name string, sigType SignalType, varType VarType, dir VarDirection, alias *SignalId) (SignalId, error) {
	if h.finished {
		return 0, errs.ErrAlreadyFinished
	}
	if err := sigType.Validate(); err != nil {
		return 0, err
	}

	var id SignalId
	var aliasWire uint64

	if alias != nil {
		target := *alias
		if target < 1 || int(target) > len(h.signals) { //nolint:gosec
			return 0, errs.ErrInvalidAlias
		}
		id = target
		aliasWire = uint64(target)
	} else {
		id = SignalId(len(h.signals) + 1) //nolint:gosec
		h.signals = append(h.signals, sigType)
	}

	if err := h.hier.Var(name, sigType, varType, dir, aliasWire); err != nil {
		return 0, err
	}

	return id, nil
}

// Finish closes the hierarchy (must have zero open scopes), emits the
// HierarchyLZ4 and Geometry blocks, and returns a BodyWriter for the value
// changes.
func (h *HeaderWriter) Finish() (*BodyWriter, error) {
	if h.finished {
		return nil, errs.ErrAlreadyFinished
	}
	h.finished = true

	scopeCount := h.hier.ScopeCount()
	varCount := h.hier.VarCount()

	if err := h.hier.Flush(h.out, h.codec); err != nil {
		return nil, err
	}
	h.hier.Release()

	if err := geometry.WriteBlock(h.out, h.signals); err != nil {
		return nil, err
	}

	buf := signalbuf.New(h.signals, h.info.StartTime, h.codec)

	return &BodyWriter{
		f:          h.f,
		out:        h.out,
		cfg:        h.cfg,
		info:       h.info,
		buf:        buf,
		scopeCount: scopeCount,
		varCount:   varCount,
		maxHandle:  uint64(len(h.signals)), //nolint:gosec
		endTime:    h.info.StartTime,
	}, nil
}
