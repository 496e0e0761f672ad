// Package pool provides a pooled, amortized-growth byte buffer used by the
// hierarchy buffer, the signal-change chain store, and the per-section
// scratch buffers. It exists so that high-frequency append paths (one
// variant_u64 at a time, potentially millions of times per simulation run)
// do not pay for a reallocation on every call.
package pool

import "sync"

// Default and ceiling sizes for pooled buffers. Sections in an FST file are
// typically tens of KiB to low MiB; buffers larger than the threshold are
// discarded rather than retained, to avoid pinning large allocations from a
// single oversized section.
const (
	DefaultSize  = 1024 * 16  // 16KiB
	MaxThreshold = 1024 * 128 // 128KiB
)

// Buffer is a growable byte slice with an amortized growth strategy: small
// buffers grow by a fixed chunk, larger ones by a fraction of their current
// capacity, so that a long append sequence does not reallocate on every
// call while a one-off small buffer doesn't over-allocate.
type Buffer struct {
	B []byte
}

// NewBuffer creates a Buffer with the given starting capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{B: make([]byte, 0, capacity)}
}

// Bytes returns the buffer's contents. The returned slice aliases the
// buffer's storage and must not be retained past the next mutating call.
func (b *Buffer) Bytes() []byte { return b.B }

// Len returns the number of bytes currently held.
func (b *Buffer) Len() int { return len(b.B) }

// Cap returns the buffer's current capacity.
func (b *Buffer) Cap() int { return cap(b.B) }

// Reset empties the buffer but keeps its backing array for reuse.
func (b *Buffer) Reset() { b.B = b.B[:0] }

// Truncate shortens the buffer to n bytes, keeping the backing array.
// Panics if n is out of [0, len(b.B)].
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > len(b.B) {
		panic("pool.Buffer.Truncate: index out of range")
	}
	b.B = b.B[:n]
}

// Grow ensures at least `need` more bytes can be appended without a further
// reallocation.
func (b *Buffer) Grow(need int) {
	if cap(b.B)-len(b.B) >= need {
		return
	}

	growBy := DefaultSize
	if cap(b.B) > 4*DefaultSize {
		growBy = cap(b.B) / 4
	}
	if growBy < need {
		growBy = need
	}

	newBuf := make([]byte, len(b.B), len(b.B)+growBy)
	copy(newBuf, b.B)
	b.B = newBuf
}

// Append grows the buffer as needed and appends data.
func (b *Buffer) Append(data []byte) {
	b.Grow(len(data))
	b.B = append(b.B, data...)
}

// AppendByte grows the buffer as needed and appends a single byte.
func (b *Buffer) AppendByte(v byte) {
	b.Grow(1)
	b.B = append(b.B, v)
}

// bufferPool pools *Buffer instances keyed by their intended default size.
type bufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

func newBufferPool(defaultSize, maxThreshold int) *bufferPool {
	return &bufferPool{
		pool: sync.Pool{
			New: func() any { return NewBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

func (p *bufferPool) get() *Buffer {
	buf, _ := p.pool.Get().(*Buffer)
	return buf
}

func (p *bufferPool) put(buf *Buffer) {
	if buf == nil {
		return
	}
	if p.maxThreshold > 0 && cap(buf.B) > p.maxThreshold {
		return // discard oversized buffers instead of pinning their memory
	}
	buf.Reset()
	p.pool.Put(buf)
}

var sectionPool = newBufferPool(DefaultSize, MaxThreshold)

// GetSectionBuffer retrieves a pooled buffer sized for a value-change or
// hierarchy section body.
func GetSectionBuffer() *Buffer { return sectionPool.get() }

// PutSectionBuffer returns a section buffer to the pool.
func PutSectionBuffer(b *Buffer) { sectionPool.put(b) }
