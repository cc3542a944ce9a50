package row

import "unicode/utf8"

// Buffer accumulates the runes of the field being tokenized
type Buffer struct {
	buffer []byte
	offset int
}

// NewBuffer creates a buffer instance with given initial size
func NewBuffer(size int) *Buffer {
	return &Buffer{
		buffer: make([]byte, size),
	}
}

// WriteRune appends utf8 encoded rune
func (b *Buffer) WriteRune(r rune) {
	if r < utf8.RuneSelf {
		b.writeByte(byte(r))
		return
	}
	size := utf8.RuneLen(r)
	if size < 0 {
		r, size = utf8.RuneError, utf8.RuneLen(utf8.RuneError)
	}
	b.ensure(size)
	b.offset += utf8.EncodeRune(b.buffer[b.offset:], r)
}

// String returns a copy of the buffered field
func (b *Buffer) String() string {
	return string(b.buffer[:b.offset])
}

// Reset sets actual buffer len to 0
func (b *Buffer) Reset() {
	b.offset = 0
}

func (b *Buffer) writeByte(c byte) {
	b.ensure(1)
	b.buffer[b.offset] = c
	b.offset++
}

func (b *Buffer) ensure(size int) {
	if b.offset+size <= len(b.buffer) {
		return
	}
	newSize := 2 * len(b.buffer)
	if newSize < b.offset+size {
		newSize = b.offset + size
	}
	grown := make([]byte, newSize)
	copy(grown, b.buffer[:b.offset])
	b.buffer = grown
}
