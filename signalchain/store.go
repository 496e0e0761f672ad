// Package signalchain implements the signal-change chain store (spec §4.5,
// component C5): one shared byte vector holding every signal's append-only
// change records, linked by 32-bit back-pointers, so that N signals each
// accumulating changes over a section do not require N growing vectors.
//
// This has no direct counterpart in the teacher package (mebo's columnar
// encoders each own one buffer per encoding instance, since mebo sections
// one buffer per metric-as-a-whole rather than per-signal-within-a-section);
// it is built from spec §4.5/§9 directly, carrying over the teacher's
// buffer-reuse discipline (internal/pool.Buffer) for the single backing
// vector.
package signalchain

import (
	"encoding/binary"

	"github.com/ekiwi/fst-writer/endian"
	"github.com/ekiwi/fst-writer/internal/pool"
)

// Store holds the per-signal change chains for one value-change section.
type Store struct {
	data *pool.Buffer
	last []uint32 // last[i] == 0: empty; else offset+1 of the most recent record
}

// NewStore allocates a Store for numLists signal chains.
func NewStore(numLists int) *Store {
	return &Store{
		data: pool.GetSectionBuffer(),
		last: make([]uint32, numLists),
	}
}

// IsEmpty reports whether list has no recorded changes yet.
func (s *Store) IsEmpty(list int) bool { return s.last[list] == 0 }

// TotalBytes returns the number of bytes currently held across every list in
// the shared backing vector, used to size auto-flush decisions.
func (s *Store) TotalBytes() int { return s.data.Len() }

// AppendFixed appends a fixed-size record to list. body must be exactly
// fixedSize bytes (the caller, not the store, fixes the size per list).
//
// Record layout: prevOffset+1:u32(LE) | body.
func (s *Store) AppendFixed(list int, body []byte) {
	s.appendRecord(list, body, false)
}

// AppendVariable appends a variable-size record to list.
//
// Record layout: prevOffset+1:u32(LE) | variant_u64(len(body)) | body.
func (s *Store) AppendVariable(list int, body []byte) {
	s.appendRecord(list, body, true)
}

func (s *Store) appendRecord(list int, body []byte, variable bool) {
	prev := s.last[list]
	recordStart := s.data.Len()

	s.data.Grow(4 + endian.MaxVariantLen + len(body))

	var backPtr [4]byte
	binary.LittleEndian.PutUint32(backPtr[:], prev)
	s.data.B = append(s.data.B, backPtr[:]...)

	if variable {
		s.data.B = endian.AppendVariantU64(s.data.B, uint64(len(body))) //nolint:gosec
	}
	s.data.B = append(s.data.B, body...)

	s.last[list] = uint32(recordStart) + 1 //nolint:gosec
}

type recordSpan struct {
	off, length int
}

// walk collects every record of list in newest-to-oldest order, without
// materializing their bytes.
func (s *Store) walk(list int, fixedSize int) []recordSpan {
	var spans []recordSpan

	cur := s.last[list]
	for cur != 0 {
		recordStart := int(cur) - 1
		prev := binary.LittleEndian.Uint32(s.data.B[recordStart : recordStart+4])

		var bodyOff, bodyLen int
		if fixedSize > 0 {
			bodyOff = recordStart + 4
			bodyLen = fixedSize
		} else {
			v, n, ok := endian.DecodeVariantU64(s.data.B[recordStart+4:])
			if !ok {
				break // corrupted store; stop rather than read out of bounds
			}
			bodyOff = recordStart + 4 + n
			bodyLen = int(v)
		}

		spans = append(spans, recordSpan{bodyOff, bodyLen})
		cur = prev
	}

	return spans
}

// ExtractFixed reverse-walks list's fixed-size records and returns their
// bodies concatenated in append (oldest-first) order.
func (s *Store) ExtractFixed(list int, fixedSize int) []byte {
	return s.extract(s.walk(list, fixedSize))
}

// ExtractVariable reverse-walks list's variable-size records and returns
// their bodies concatenated in append (oldest-first) order.
func (s *Store) ExtractVariable(list int) []byte {
	return s.extract(s.walk(list, 0))
}

func (s *Store) extract(spans []recordSpan) []byte {
	total := 0
	for _, sp := range spans {
		total += sp.length
	}

	out := make([]byte, total)
	cursor := total
	for _, sp := range spans {
		cursor -= sp.length
		copy(out[cursor:cursor+sp.length], s.data.B[sp.off:sp.off+sp.length])
	}

	return out
}

// Clear zeros every list's back-pointer and truncates the backing vector,
// preserving its capacity so the Store can be reused for the next section.
func (s *Store) Clear() {
	for i := range s.last {
		s.last[i] = 0
	}
	s.data.Reset()
}

// Release returns the backing buffer to the pool. The Store must not be
// used afterward.
func (s *Store) Release() {
	if s.data != nil {
		pool.PutSectionBuffer(s.data)
		s.data = nil
	}
}
