package uistream

// DefaultBufferSize is the chunk capacity of a Buffer created with a
// non-positive size.
const DefaultBufferSize = 1000

// Buffer collects chunks up to a fixed capacity before they are processed.
// It is not safe for concurrent use.
type Buffer struct {
	max    int
	chunks []Chunk
}

// NewBuffer returns a Buffer holding at most size chunks.
func NewBuffer(size int) *Buffer {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Buffer{max: size}
}

// Add appends c and reports whether there was room for it.
func (b *Buffer) Add(c Chunk) bool {
	if len(b.chunks) >= b.max {
		return false
	}
	b.chunks = append(b.chunks, c)
	return true
}

// Len returns the number of buffered chunks.
func (b *Buffer) Len() int { return len(b.chunks) }

// Drain returns the buffered chunks and empties the buffer.
func (b *Buffer) Drain() []Chunk {
	out := b.chunks
	b.chunks = nil
	return out
}

// ProcessWith feeds the buffered chunks to acc and materializes the result.
// The buffer keeps its contents; call Drain to clear it.
func (b *Buffer) ProcessWith(acc *Accumulator) Message {
	for _, c := range b.chunks {
		acc.Process(c)
	}
	return acc.Message()
}
