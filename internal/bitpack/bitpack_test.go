package bitpack

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/arloliu/blockpack/errs"
	"github.com/stretchr/testify/require"
)

func TestBitWidth(t *testing.T) {
	tests := []struct {
		max  uint64
		want uint8
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{255, 8},
		{256, 9},
		{math.MaxUint32, 32},
		{math.MaxUint32 + 1, 33},
		{math.MaxUint64, 64},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, BitWidth(tt.max), "max=%d", tt.max)
	}
}

func TestByteCount(t *testing.T) {
	require.Equal(t, 0, ByteCount(128, 0))
	require.Equal(t, 16, ByteCount(128, 1))
	require.Equal(t, 1, ByteCount(4, 2))
	require.Equal(t, 2, ByteCount(3, 3))
	require.Equal(t, 2, ByteCount(3, 4))
	require.Equal(t, 512, ByteCount(128, 32))
	require.Equal(t, 4, ByteCount(5, 5))
}

func TestWriter_BitOrder(t *testing.T) {
	// LSB-first: 0b01, 0b10, 0b11, 0b00 at width 2 -> 0b00_11_10_01
	dst := make([]byte, 1)
	w, err := NewWriter(dst, 2)
	require.NoError(t, err)

	for _, v := range []uint32{1, 2, 3, 0} {
		require.NoError(t, w.Write(v))
	}

	n, err := w.Close()
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, byte(0b00111001), dst[0])
}

func TestWriter_SpansBytes(t *testing.T) {
	dst := make([]byte, 2)
	w, err := NewWriter(dst, 5)
	require.NoError(t, err)

	require.NoError(t, w.Write(0b10101))
	require.NoError(t, w.Write(0b00111))

	n, err := w.Close()
	require.NoError(t, err)
	require.Equal(t, 2, n)
	// 0b00111 lands in bits 5-9, its zero high bits spill into byte 1
	require.Equal(t, byte(0b11110101), dst[0])
	require.Equal(t, byte(0b00000000), dst[1])
}

func TestWriter_ZeroWidth(t *testing.T) {
	w, err := NewWriter(nil, 0)
	require.NoError(t, err)

	for range 128 {
		require.NoError(t, w.Write(0))
	}

	n, err := w.Close()
	require.NoError(t, err)
	require.Equal(t, 0, n)

	err = w.Write(1)
	require.ErrorIs(t, err, errs.ErrValueOverflow)
}

func TestWriter_InvalidWidth(t *testing.T) {
	_, err := NewWriter(make([]byte, 8), 33)
	require.ErrorIs(t, err, errs.ErrInvalidBitWidth)
}

func TestWriter_ValueOverflow(t *testing.T) {
	w, err := NewWriter(make([]byte, 8), 3)
	require.NoError(t, err)

	require.NoError(t, w.Write(7))
	require.ErrorIs(t, w.Write(8), errs.ErrValueOverflow)
}

func TestWriter_BufferOverflow(t *testing.T) {
	w, err := NewWriter(make([]byte, 1), 8)
	require.NoError(t, err)

	require.NoError(t, w.Write(0xAB))
	require.ErrorIs(t, w.Write(0xCD), errs.ErrBufferOverflow)

	w, err = NewWriter(make([]byte, 1), 6)
	require.NoError(t, err)
	require.NoError(t, w.Write(1))
	require.NoError(t, w.Write(1))

	_, err = w.Close()
	require.ErrorIs(t, err, errs.ErrBufferOverflow)
}

func TestReader_Get(t *testing.T) {
	data := []byte{0b00111001}
	r := NewReader(data, 2)

	require.Equal(t, uint32(1), r.Get(0))
	require.Equal(t, uint32(2), r.Get(1))
	require.Equal(t, uint32(3), r.Get(2))
	require.Equal(t, uint32(0), r.Get(3))
}

func TestReader_ZeroWidth(t *testing.T) {
	r := NewReader(nil, 0)
	for i := range 128 {
		require.Equal(t, uint32(0), r.Get(i))
	}
}

func TestWriterReader_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))

	for width := uint8(0); width <= MaxWidth; width++ {
		for _, n := range []int{1, 3, 7, 8, 9, 31, 128} {
			values := make([]uint32, n)
			for i := range values {
				values[i] = uint32(rng.Uint64() & mask(width)) //nolint:gosec
			}

			dst := make([]byte, ByteCount(n, width))
			w, err := NewWriter(dst, width)
			require.NoError(t, err)

			for _, v := range values {
				require.NoError(t, w.Write(v))
			}

			written, err := w.Close()
			require.NoError(t, err)
			require.Equal(t, len(dst), written, "width=%d n=%d", width, n)

			r := NewReader(dst, width)
			for i, v := range values {
				require.Equal(t, v, r.Get(i), "width=%d n=%d i=%d", width, n, i)
			}
		}
	}
}

func TestWriter_Reset(t *testing.T) {
	dst := make([]byte, 4)
	w, err := NewWriter(dst, 4)
	require.NoError(t, err)
	require.NoError(t, w.Write(0xF))

	require.NoError(t, w.Reset(dst, 8))
	require.NoError(t, w.Write(0x12))

	n, err := w.Close()
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, byte(0x12), dst[0])
}

func BenchmarkReader_Get(b *testing.B) {
	values := make([]uint32, 128)
	for i := range values {
		values[i] = uint32(i * 977) //nolint:gosec
	}

	width := BitWidth(uint64(values[127]))
	dst := make([]byte, ByteCount(len(values), width))
	w, _ := NewWriter(dst, width)
	for _, v := range values {
		_ = w.Write(v)
	}
	_, _ = w.Close()

	r := NewReader(dst, width)

	b.ReportAllocs()
	b.ResetTimer()

	var sum uint32
	for i := 0; i < b.N; i++ {
		for j := range values {
			sum += r.Get(j)
		}
	}
	_ = sum
}
