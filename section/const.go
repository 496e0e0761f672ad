// Package section implements the FST block container format: the block
// type tags, the fixed-size header, and the seek-back length-patching block
// writer that every section (header, hierarchy, geometry, value-change) is
// framed with.
package section

// BlockTag identifies the kind of block that follows in the file.
type BlockTag uint8

const (
	TagHeader              BlockTag = 0
	TagVcData              BlockTag = 1   // reserved, not emitted by this writer
	TagBlackout            BlockTag = 2   // reserved, not emitted by this writer
	TagGeometry            BlockTag = 3
	TagHierarchy           BlockTag = 4   // reserved, not emitted by this writer
	TagVcDataDynamicAlias  BlockTag = 5   // reserved, not emitted by this writer
	TagHierarchyLZ4        BlockTag = 6
	TagHierarchyLZ4Duo     BlockTag = 7   // reserved, not emitted by this writer
	TagVcDataDynamicAlias2 BlockTag = 8
	TagGZipWrapper         BlockTag = 254 // reserved, not emitted by this writer
	TagSkip                BlockTag = 255 // reserved, not emitted by this writer
)

// ScopeType enumerates the hierarchy scope kinds, bit-for-bit with the FST
// format (Verilog scope kinds 0-11, VHDL-specific kinds 12-25).
type ScopeType uint8

const (
	ScopeModule ScopeType = iota
	ScopeTask
	ScopeFunction
	ScopeBegin
	ScopeFork
	ScopeGenerate
	ScopeStruct
	ScopeUnion
	ScopeClass
	ScopeInterface
	ScopePackage
	ScopeProgram
	// VHDL-specific scope kinds (12-25).
	ScopeVhdlArchitecture
	ScopeVhdlProcedure
	ScopeVhdlFunction
	ScopeVhdlRecord
	ScopeVhdlProcess
	ScopeVhdlBlock
	ScopeVhdlForGenerate
	ScopeVhdlIfGenerate
	ScopeVhdlGenerate
	ScopeVhdlPackage
	ScopeVhdlForGenerate2
	ScopeVhdlIfGenerate2
	ScopeVhdlGenerateBlock
	ScopeVhdlGenerateFor
)

// VarType enumerates the kind of a declared variable/signal.
type VarType uint8

const (
	VarEvent VarType = iota
	VarInteger
	VarParameter
	VarReal
	VarReg
	VarSupply0
	VarSupply1
	VarTime
	VarTri
	VarTriAnd
	VarTriOr
	VarTriReg
	VarTri0
	VarTri1
	VarWand
	VarWire
	VarWor
	VarPort
	VarSparseArray
	VarRealTime
	VarGenericString
	VarBit
	VarLogic
	VarInt
	VarShortInt
	VarLongInt
	VarByte
	VarEnum
	VarShortReal
)

// VarDirection enumerates a variable's port direction.
type VarDirection uint8

const (
	DirImplicit VarDirection = iota
	DirInput
	DirOutput
	DirInOut
	DirBuffer
	DirLinkage
)

// FileType enumerates the source HDL dialect recorded in the header.
type FileType uint8

const (
	FileTypeVerilog FileType = iota
	FileTypeVhdl
	FileTypeVerilogVhdl
)

// Fixed sizes used by the header block and the hierarchy/name constraints.
const (
	// HeaderBodySize is the size, in bytes, of the header section
	// (including its own 8-byte length field), i.e. the value written into
	// the length placeholder for the Header block.
	HeaderBodySize = 329

	// HeaderVersionFieldSize and HeaderDateFieldSize are the fixed widths
	// of the version/date c_str_fixed fields in the header.
	HeaderVersionFieldSize = 128
	HeaderDateFieldSize    = 119

	// MaxHierarchyNameLength bounds scope/var names in the hierarchy buffer.
	MaxHierarchyNameLength = 512

	// MaxAttributeLength bounds a single attribute record (not currently
	// emitted by this writer, reserved for forward compatibility).
	MaxAttributeLength = 65536 + 4096
)
