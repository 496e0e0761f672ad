// Package fst is the thin top-level facade (component C8): a phase-typed
// writer for the FST waveform container. Open returns a HeaderWriter;
// HeaderWriter.Finish closes the hierarchy/geometry sections and returns a
// BodyWriter for the simulation's value changes. This mirrors the
// teacher's mebo.go facade: a small top-level type whose job is wiring
// together the internal packages (section, hierarchy, geometry, signalbuf)
// behind one import path, with no logic of its own beyond lifecycle
// sequencing and header back-patching.
package fst

import (
	"github.com/ekiwi/fst-writer/section"
)

// SignalId is a 1-based handle identifying a signal's storage. An alias
// handle (returned by Var when alias is non-nil) equals its target's
// SignalId; writing through either updates the same underlying values.
type SignalId uint64

// Info carries the trace-level metadata recorded in the file header, and
// is also the means by which Open configures the writer's output (spec
// §6's `info` parameter).
type Info struct {
	StartTime    uint64
	TimescaleExp int8
	Version      string
	Date         string
	FileType     section.FileType
}

// Re-exported enums and signal type constructors, so callers need only
// import this package for the common path.
type (
	ScopeType    = section.ScopeType
	VarType      = section.VarType
	VarDirection = section.VarDirection
	FileType     = section.FileType
	SignalType   = section.SignalType
)

const (
	ScopeModule    = section.ScopeModule
	ScopeTask      = section.ScopeTask
	ScopeFunction  = section.ScopeFunction
	ScopeBegin     = section.ScopeBegin
	ScopeFork      = section.ScopeFork
	ScopeGenerate  = section.ScopeGenerate
	ScopeStruct    = section.ScopeStruct
	ScopeUnion     = section.ScopeUnion
	ScopeClass     = section.ScopeClass
	ScopeInterface = section.ScopeInterface
	ScopePackage   = section.ScopePackage
	ScopeProgram   = section.ScopeProgram
)

const (
	VarEvent         = section.VarEvent
	VarInteger       = section.VarInteger
	VarParameter     = section.VarParameter
	VarReal          = section.VarReal
	VarReg           = section.VarReg
	VarPort          = section.VarPort
	VarWire          = section.VarWire
	VarLogic         = section.VarLogic
	VarBit           = section.VarBit
	VarInt           = section.VarInt
	VarGenericString = section.VarGenericString
)

const (
	DirImplicit = section.DirImplicit
	DirInput    = section.DirInput
	DirOutput   = section.DirOutput
	DirInOut    = section.DirInOut
	DirBuffer   = section.DirBuffer
	DirLinkage  = section.DirLinkage
)

const (
	FileTypeVerilog     = section.FileTypeVerilog
	FileTypeVhdl        = section.FileTypeVhdl
	FileTypeVerilogVhdl = section.FileTypeVerilogVhdl
)

// BitVector returns a SignalType for a fixed-width digital signal.
func BitVector(width int) SignalType { return section.BitVector(width) }

// Real returns the SignalType for a floating-point signal.
func Real() SignalType { return section.Real() }
