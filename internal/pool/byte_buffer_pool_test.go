package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb.B)
	require.Zero(t, bb.Len())
	require.Equal(t, 1024, bb.Cap())
}

func TestByteBuffer_Writes(t *testing.T) {
	bb := NewByteBuffer(16)

	n, err := bb.WriteString("TAPE")
	require.NoError(t, err)
	require.Equal(t, 4, n)

	require.NoError(t, bb.WriteByte(' '))
	_, err = bb.Write([]byte("1"))
	require.NoError(t, err)
	bb.WriteLine("")
	bb.WriteLine("next")

	require.Equal(t, "TAPE 1\nnext\n", bb.String())
	require.Equal(t, []byte("TAPE 1\nnext\n"), bb.Bytes())
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(64)
	bb.WriteLine("some data")
	capBefore := bb.Cap()

	bb.Reset()

	require.Zero(t, bb.Len())
	require.Equal(t, capBefore, bb.Cap())
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("enough room", func(t *testing.T) {
		bb := NewByteBuffer(100)
		bb.Grow(50)
		require.Equal(t, 100, bb.Cap())
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(10)
		_, _ = bb.WriteString("abc")
		bb.Grow(20)
		require.Equal(t, 3+LineBufferDefaultSize, bb.Cap())
		require.Equal(t, "abc", bb.String())
	})

	t.Run("large request", func(t *testing.T) {
		bb := NewByteBuffer(10)
		bb.Grow(LineBufferDefaultSize * 3)
		require.GreaterOrEqual(t, bb.Cap(), LineBufferDefaultSize*3)
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * LineBufferDefaultSize
		bb := NewByteBuffer(size)
		bb.B = bb.B[:size]
		bb.Grow(1)
		require.Equal(t, size+size/4, bb.Cap())
	})
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.WriteLine("line")

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(5), n)
	require.Equal(t, "line\n", out.String())
}

func TestByteBufferPool(t *testing.T) {
	t.Run("get returns empty buffer", func(t *testing.T) {
		p := NewByteBufferPool(32, 0)
		bb := p.Get()
		bb.WriteLine("x")
		p.Put(bb)

		again := p.Get()
		require.Zero(t, again.Len())
	})

	t.Run("oversized buffers are dropped", func(t *testing.T) {
		p := NewByteBufferPool(32, 64)
		bb := p.Get()
		bb.Grow(1024)
		p.Put(bb)

		require.LessOrEqual(t, p.Get().Cap(), 64)
	})

	t.Run("nil put is ignored", func(t *testing.T) {
		p := NewByteBufferPool(32, 0)
		require.NotPanics(t, func() { p.Put(nil) })
	})

	t.Run("defaults", func(t *testing.T) {
		bb := GetTapeBuffer()
		require.GreaterOrEqual(t, bb.Cap(), TapeBufferDefaultSize)
		PutTapeBuffer(bb)

		lb := GetLineBuffer()
		require.GreaterOrEqual(t, lb.Cap(), LineBufferDefaultSize)
		PutLineBuffer(lb)
	})

	t.Run("concurrent use", func(t *testing.T) {
		p := NewByteBufferPool(32, 0)
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					bb := p.Get()
					bb.WriteLine("line")
					p.Put(bb)
				}
			}()
		}
		wg.Wait()
	})
}
