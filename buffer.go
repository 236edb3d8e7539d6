package tsio

// inlineCapacity is how many bytes a Buffer can hold before it promotes
// its storage to a heap-backed slice. Chosen to keep the common case —
// a short formatted line — entirely allocation-free.
const inlineCapacity = 1024

// Buffer is a growable byte sequence with a small-buffer optimization:
// up to inlineCapacity bytes live in an inline array with no heap
// allocation; once that fills up, storage is promoted to a
// geometrically-growing heap slice and never demoted.
//
// The zero value is ready to use.
type Buffer struct {
	inline   [inlineCapacity]byte
	heap     []byte
	size     int
	promoted bool
}

// NewBuffer returns a Buffer pre-sized for hint bytes: a hint above
// inlineCapacity starts the buffer already promoted to a heap slice of
// that capacity. A hint of 0 or up to inlineCapacity keeps the default
// inline storage.
func NewBuffer(hint int) *Buffer {
	b := &Buffer{}
	if hint > inlineCapacity {
		b.heap = make([]byte, 0, hint)
		b.promoted = true
	}
	return b
}

// Len returns the current size of the buffer in bytes.
func (b *Buffer) Len() int { return b.size }

// Bytes returns the buffer's current contents. The slice is only valid
// until the next mutating call on b.
func (b *Buffer) Bytes() []byte {
	if b.promoted {
		return b.heap[:b.size]
	}
	return b.inline[:b.size]
}

// String returns a copy of the buffer's contents as a string.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

// Reset empties the buffer without releasing any heap storage it has
// already promoted to, so a reused Buffer doesn't re-pay the promotion
// cost on its next execution.
func (b *Buffer) Reset() {
	b.size = 0
}

// WriteByte appends a single byte.
func (b *Buffer) WriteByte(c byte) error {
	b.grow(1)
	if b.promoted {
		b.heap[b.size] = c
	} else {
		b.inline[b.size] = c
	}
	b.size++
	return nil
}

// WriteString appends s.
func (b *Buffer) WriteString(s string) (int, error) {
	return b.Write([]byte(s))
}

// Write appends p, satisfying io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b.grow(len(p))
	if b.promoted {
		copy(b.heap[b.size:], p)
	} else {
		copy(b.inline[b.size:], p)
	}
	b.size += len(p)
	return len(p), nil
}

// WriteFill appends n copies of c. This is the "append-fill" primitive
// spec.md §3 calls out for padding.
func (b *Buffer) WriteFill(c byte, n int) {
	if n <= 0 {
		return
	}
	b.grow(n)
	if b.promoted {
		fillBytes(b.heap[b.size:b.size+n], c)
	} else {
		fillBytes(b.inline[b.size:b.size+n], c)
	}
	b.size += n
}

// Reserve grows the buffer by n bytes, leaving the new room
// uninitialized (it may still hold bytes written before a Reset) for
// the caller to fill in directly via ReservedSlice. This is the
// "reserve-widen" primitive from spec.md §3, used by kernels that know
// their exact output length ahead of time and want to avoid an
// intermediate scratch buffer.
func (b *Buffer) Reserve(n int) {
	b.grow(n)
	b.size += n
}

// ReservedSlice returns the last n bytes of the buffer, intended to be
// called immediately after Reserve(n) to fill the room it made.
func (b *Buffer) ReservedSlice(n int) []byte {
	if b.promoted {
		return b.heap[b.size-n : b.size]
	}
	return b.inline[b.size-n : b.size]
}

// LastByte returns the final byte written to the buffer and whether the
// buffer is non-empty.
func (b *Buffer) LastByte() (byte, bool) {
	if b.size == 0 {
		return 0, false
	}
	return b.Bytes()[b.size-1], true
}

// Column returns the number of bytes written since the last newline
// (or since the start of the buffer, if none). Used by %T.
func (b *Buffer) Column() int {
	data := b.Bytes()
	for i := len(data) - 1; i >= 0; i-- {
		if data[i] == '\n' {
			return len(data) - i - 1
		}
	}
	return len(data)
}

// grow ensures there is room for n more bytes, promoting inline storage
// to the heap the first time the inline array would overflow, then
// growing geometrically on every later overflow: the new capacity is
// twice inlineCapacity, doubled until it covers the requirement.
func (b *Buffer) grow(n int) {
	need := b.size + n

	if !b.promoted {
		if need <= inlineCapacity {
			return
		}
		c := geometricCapacity(need)
		heap := make([]byte, c)
		copy(heap, b.inline[:b.size])
		b.heap = heap
		b.promoted = true
		return
	}

	if need <= cap(b.heap) {
		b.heap = b.heap[:cap(b.heap)]
		return
	}
	c := geometricCapacity(need)
	heap := make([]byte, c)
	copy(heap, b.heap[:b.size])
	b.heap = heap
}

func geometricCapacity(need int) int {
	c := inlineCapacity * 2
	for c < need {
		c *= 2
	}
	return c
}

func fillBytes(dst []byte, c byte) {
	if len(dst) == 0 {
		return
	}
	dst[0] = c
	for i := 1; i < len(dst); i *= 2 {
		copy(dst[i:], dst[:i])
	}
}
