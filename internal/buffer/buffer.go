package buffer

// Buffer accumulates byte sequences up to a hard limit. Data is written into the current
// segment, which is completed by Finish, so a single buffer may host several non-interrelated
// sequences, e.g. a request line and header lines, one after another.
type Buffer struct {
	memory  []byte
	begin   int
	maxSize int
}

func New(initialSize, maxSize int) *Buffer {
	return &Buffer{
		memory:  make([]byte, 0, min(initialSize, maxSize)),
		maxSize: maxSize,
	}
}

// Append writes data, checking whether the new amount of bytes doesn't exceed the
// limit, otherwise discarding the data and returning false.
func (b *Buffer) Append(elements []byte) (ok bool) {
	if len(b.memory)+len(elements) > b.maxSize {
		return false
	}

	b.memory = append(b.memory, elements...)
	return true
}

// SegmentLength returns a number of bytes taken by current segment.
func (b *Buffer) SegmentLength() int {
	return len(b.memory) - b.begin
}

// Len returns the number of bytes taken by all segments together.
func (b *Buffer) Len() int {
	return len(b.memory)
}

// Tail returns at most n last bytes of the current segment.
func (b *Buffer) Tail(n int) []byte {
	segment := b.Preview()
	return segment[max(0, len(segment)-n):]
}

// Preview returns current segment without moving the head.
func (b *Buffer) Preview() []byte {
	return b.memory[b.begin:]
}

// Finish completes current segment, returning its value.
func (b *Buffer) Finish() []byte {
	segment := b.memory[b.begin:]
	b.begin = len(b.memory)

	return segment
}
