package pool

import (
	"io"
	"sync"
)

// Buffer sizes for tape serialization. A typical single-material tape is a
// few hundred KiB.
const (
	TapeBufferDefaultSize  = 1024 * 256       // 256KiB
	TapeBufferMaxThreshold = 1024 * 1024 * 16 // 16MiB
	LineBufferDefaultSize  = 1024 * 4         // 4KiB
	LineBufferMaxThreshold = 1024 * 64        // 64KiB
)

// ByteBuffer is an append-only byte buffer for building tape text.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// String returns a copy of the buffer contents as a string.
func (bb *ByteBuffer) String() string {
	return string(bb.B)
}

// Reset empties the buffer and keeps its capacity.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Grow ensures room for n more bytes without reallocating.
//
// Small buffers grow by LineBufferDefaultSize, larger ones by a quarter of
// their capacity.
func (bb *ByteBuffer) Grow(n int) {
	if cap(bb.B)-len(bb.B) >= n {
		return
	}

	growBy := LineBufferDefaultSize
	if cap(bb.B) > 4*LineBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	growBy = max(growBy, n)

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends data to the buffer. It never fails.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteString appends s to the buffer. It never fails.
func (bb *ByteBuffer) WriteString(s string) (int, error) {
	bb.B = append(bb.B, s...)
	return len(s), nil
}

// WriteByte appends c to the buffer. It never fails.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// WriteLine appends line followed by a newline.
func (bb *ByteBuffer) WriteLine(line string) {
	bb.B = append(bb.B, line...)
	bb.B = append(bb.B, '\n')
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a sync.Pool of ByteBuffers. Buffers grown beyond
// maxThreshold are dropped instead of being returned to the pool.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a pool of buffers with the given initial size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	tapeDefaultPool = NewByteBufferPool(TapeBufferDefaultSize, TapeBufferMaxThreshold)
	lineDefaultPool = NewByteBufferPool(LineBufferDefaultSize, LineBufferMaxThreshold)
)

// GetTapeBuffer retrieves a buffer sized for a whole tape.
func GetTapeBuffer() *ByteBuffer {
	return tapeDefaultPool.Get()
}

// PutTapeBuffer returns a buffer obtained from GetTapeBuffer.
func PutTapeBuffer(bb *ByteBuffer) {
	tapeDefaultPool.Put(bb)
}

// GetLineBuffer retrieves a buffer sized for a few lines or one section.
func GetLineBuffer() *ByteBuffer {
	return lineDefaultPool.Get()
}

// PutLineBuffer returns a buffer obtained from GetLineBuffer.
func PutLineBuffer(bb *ByteBuffer) {
	lineDefaultPool.Put(bb)
}
