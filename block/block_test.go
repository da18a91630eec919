package block

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/arloliu/blockpack/errs"
	"github.com/arloliu/blockpack/internal/bitpack"
	"github.com/stretchr/testify/require"
)

func genSorted(rng *rand.Rand, start uint32, maxDelta uint32) []uint32 {
	values := make([]uint32, BlockSize)
	cur := start
	for i := range values {
		if maxDelta > 0 {
			cur += rng.Uint32N(maxDelta + 1)
		}
		values[i] = cur
	}

	return values
}

func genUnsorted(rng *rand.Rand, maxVal uint32) []uint32 {
	values := make([]uint32, BlockSize)
	for i := range values {
		if maxVal == math.MaxUint32 {
			values[i] = rng.Uint32()
		} else {
			values[i] = rng.Uint32N(maxVal + 1)
		}
	}

	return values
}

// === Constants ===

func TestMaxCompressedSize(t *testing.T) {
	require.Equal(t, 513, MaxCompressedSize)
	require.Equal(t, MaxCompressedSize, CompressedSize(32))
	require.Equal(t, 1, CompressedSize(0))
	require.Equal(t, 17, CompressedSize(1))
}

// === DeltaEncode / DeltaDecode ===

func TestDeltaEncode_Example(t *testing.T) {
	src := []uint32{5, 7, 7, 10}
	deltas := make([]uint32, len(src))

	maxDelta, err := DeltaEncode(deltas, src, 5)
	require.NoError(t, err)
	require.Equal(t, []uint32{0, 2, 0, 3}, deltas)
	require.Equal(t, uint32(3), maxDelta)
	require.Equal(t, []uint32{5, 7, 7, 10}, src, "source must not be modified")

	width := bitpack.BitWidth(uint64(maxDelta))
	require.Equal(t, uint8(2), width)
	require.Equal(t, 2, 1+bitpack.ByteCount(len(src), width))

	packed := make([]byte, bitpack.ByteCount(len(src), width))
	w, err := bitpack.NewWriter(packed, width)
	require.NoError(t, err)
	for _, d := range deltas {
		require.NoError(t, w.Write(d))
	}
	n, err := w.Close()
	require.NoError(t, err)
	require.Equal(t, 1, n)

	r := bitpack.NewReader(packed, width)
	unpacked := make([]uint32, len(src))
	for i := range unpacked {
		unpacked[i] = r.Get(i)
	}

	decoded := make([]uint32, len(src))
	require.NoError(t, DeltaDecode(decoded, unpacked, 5))
	require.Equal(t, src, decoded)
}

func TestDeltaEncode_PrecedenceViolation(t *testing.T) {
	deltas := make([]uint32, 4)

	_, err := DeltaEncode(deltas, []uint32{5, 7, 6, 10}, 0)
	require.ErrorIs(t, err, errs.ErrPrecedenceViolation)

	_, err = DeltaEncode(deltas, []uint32{5, 7, 7, 10}, 6)
	require.ErrorIs(t, err, errs.ErrPrecedenceViolation)
}

func TestDeltaEncode_ShortDestination(t *testing.T) {
	_, err := DeltaEncode(make([]uint32, 2), []uint32{1, 2, 3}, 0)
	require.ErrorIs(t, err, errs.ErrLengthMismatch)

	err = DeltaDecode(make([]uint32, 2), []uint32{1, 2, 3}, 0)
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}

func TestDeltaDecode_Overflow(t *testing.T) {
	err := DeltaDecode(make([]uint32, 2), []uint32{1, math.MaxUint32}, 0)
	require.ErrorIs(t, err, errs.ErrValueOverflow)
}

// === Encoder ===

func TestEncoder_CompressSorted_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	enc := NewEncoder()
	dec := NewDecoder()

	for _, maxDelta := range []uint32{0, 1, 3, 100, 1 << 16, 1 << 24} {
		for _, start := range []uint32{0, 17, 1 << 20} {
			values := genSorted(rng, start, maxDelta)

			for _, offset := range []uint32{0, start / 2, start} {
				data, err := enc.CompressSorted(values, offset)
				require.NoError(t, err)

				rest, err := dec.UncompressSorted(data, offset)
				require.NoError(t, err)
				require.Empty(t, rest)
				require.Equal(t, values, dec.Output(), "maxDelta=%d start=%d offset=%d", maxDelta, start, offset)
			}
		}
	}
}

func TestEncoder_CompressUnsorted_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	enc := NewEncoder()
	dec := NewDecoder()

	for _, maxVal := range []uint32{0, 1, 7, 1000, 1<<31 - 1, math.MaxUint32} {
		values := genUnsorted(rng, maxVal)

		data, err := enc.CompressUnsorted(values)
		require.NoError(t, err)

		rest, err := dec.UncompressUnsorted(data)
		require.NoError(t, err)
		require.Empty(t, rest)
		require.Equal(t, values, dec.Output(), "maxVal=%d", maxVal)
	}
}

func TestEncoder_Minimality(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	enc := NewEncoder()

	for range 50 {
		values := genSorted(rng, rng.Uint32N(1000), rng.Uint32N(1<<uint(rng.IntN(20))))

		deltas := make([]uint32, BlockSize)
		maxDelta, err := DeltaEncode(deltas, values, 0)
		require.NoError(t, err)

		data, err := enc.CompressSorted(values, 0)
		require.NoError(t, err)

		width := bitpack.BitWidth(uint64(maxDelta))
		require.Equal(t, width, data[0])
		require.Len(t, data, 1+(BlockSize*int(width)+7)/8)
		require.Equal(t, len(data), enc.Size())
		require.Equal(t, data, enc.Bytes())

		unsorted := genUnsorted(rng, rng.Uint32N(1<<uint(rng.IntN(31))))
		data, err = enc.CompressUnsorted(unsorted)
		require.NoError(t, err)

		maxVal := slices.Max(unsorted)
		width = bitpack.BitWidth(uint64(maxVal))
		require.Equal(t, width, data[0])
		require.Len(t, data, CompressedSize(width))
	}
}

func TestEncoder_ZeroBlock(t *testing.T) {
	enc := NewEncoder()
	dec := NewDecoder()
	zeros := make([]uint32, BlockSize)

	data, err := enc.CompressSorted(zeros, 0)
	require.NoError(t, err)
	require.Equal(t, []byte{0}, data)

	rest, err := dec.UncompressSorted(data, 0)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, zeros, dec.Output())

	data, err = enc.CompressUnsorted(zeros)
	require.NoError(t, err)
	require.Equal(t, []byte{0}, data)
}

func TestEncoder_ConstantBlockWithOffset(t *testing.T) {
	enc := NewEncoder()
	dec := NewDecoder()
	values := make([]uint32, BlockSize)
	for i := range values {
		values[i] = 42
	}

	data, err := enc.CompressSorted(values, 42)
	require.NoError(t, err)
	require.Len(t, data, 1)

	_, err = dec.UncompressSorted(data, 42)
	require.NoError(t, err)
	require.Equal(t, values, dec.Output())
}

func TestEncoder_MaxWidthBlock(t *testing.T) {
	enc := NewEncoder()
	dec := NewDecoder()

	sorted := make([]uint32, BlockSize)
	sorted[BlockSize-1] = math.MaxUint32

	data, err := enc.CompressSorted(sorted, 0)
	require.NoError(t, err)
	require.Equal(t, uint8(32), data[0])
	require.Len(t, data, MaxCompressedSize)

	_, err = dec.UncompressSorted(data, 0)
	require.NoError(t, err)
	require.Equal(t, sorted, dec.Output())

	unsorted := make([]uint32, BlockSize)
	for i := range unsorted {
		unsorted[i] = math.MaxUint32 - uint32(i) //nolint:gosec
	}

	data, err = enc.CompressUnsorted(unsorted)
	require.NoError(t, err)
	require.Len(t, data, 1+BlockSize*4)

	_, err = dec.UncompressUnsorted(data)
	require.NoError(t, err)
	require.Equal(t, unsorted, dec.Output())
}

func TestEncoder_DoesNotMutateInput(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 8))
	enc := NewEncoder()

	values := genSorted(rng, 10, 50)
	original := slices.Clone(values)

	_, err := enc.CompressSorted(values, 3)
	require.NoError(t, err)
	require.Equal(t, original, values)
}

func TestEncoder_CompressSorted_Errors(t *testing.T) {
	enc := NewEncoder()

	_, err := enc.CompressSorted(make([]uint32, BlockSize-1), 0)
	require.ErrorIs(t, err, errs.ErrLengthMismatch)

	_, err = enc.CompressSorted(make([]uint32, BlockSize+1), 0)
	require.ErrorIs(t, err, errs.ErrLengthMismatch)

	_, err = enc.CompressSorted(nil, 0)
	require.ErrorIs(t, err, errs.ErrLengthMismatch)

	values := make([]uint32, BlockSize)
	for i := range values {
		values[i] = uint32(i + 10) //nolint:gosec
	}

	_, err = enc.CompressSorted(values, 11)
	require.ErrorIs(t, err, errs.ErrPrecedenceViolation)

	values[64] = 5
	_, err = enc.CompressSorted(values, 0)
	require.ErrorIs(t, err, errs.ErrPrecedenceViolation)
	require.Equal(t, 0, enc.Size())
}

func TestEncoder_CompressUnsorted_Errors(t *testing.T) {
	enc := NewEncoder()

	_, err := enc.CompressUnsorted(nil)
	require.ErrorIs(t, err, errs.ErrEmptyBlock)

	_, err = enc.CompressUnsorted([]uint32{})
	require.ErrorIs(t, err, errs.ErrEmptyBlock)

	_, err = enc.CompressUnsorted(make([]uint32, 3))
	require.ErrorIs(t, err, errs.ErrLengthMismatch)
}

// === Decoder ===

func TestDecoder_SequentialChaining(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 10))
	enc := NewEncoder()
	dec := NewDecoder()

	first := genSorted(rng, 3, 20)
	second := genSorted(rng, first[BlockSize-1], 1000)

	var buf []byte
	data, err := enc.CompressSorted(first, 0)
	require.NoError(t, err)
	buf = append(buf, data...)

	data, err = enc.CompressSorted(second, first[BlockSize-1])
	require.NoError(t, err)
	buf = append(buf, data...)

	rest, err := dec.UncompressSorted(buf, 0)
	require.NoError(t, err)
	require.Equal(t, first, dec.Output())
	require.Len(t, rest, len(data))

	rest, err = dec.UncompressSorted(rest, dec.At(BlockSize-1))
	require.NoError(t, err)
	require.Equal(t, second, dec.Output())
	require.Empty(t, rest)
}

func TestDecoder_SequentialChaining_Unsorted(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	enc := NewEncoder()
	dec := NewDecoder()

	blocks := [][]uint32{genUnsorted(rng, 5), genUnsorted(rng, math.MaxUint32), genUnsorted(rng, 0)}

	var buf []byte
	for _, b := range blocks {
		data, err := enc.CompressUnsorted(b)
		require.NoError(t, err)
		buf = append(buf, data...)
	}

	rest := buf
	for _, b := range blocks {
		var err error
		rest, err = dec.UncompressUnsorted(rest)
		require.NoError(t, err)
		require.Equal(t, b, dec.Output())
	}
	require.Empty(t, rest)
}

func TestDecoder_OutputBeforeDecode(t *testing.T) {
	dec := NewDecoder()

	require.Equal(t, 0, dec.Len())
	require.Empty(t, dec.Output())
}

func TestDecoder_TruncatedInput(t *testing.T) {
	dec := NewDecoder()

	_, err := dec.UncompressSorted(nil, 0)
	require.ErrorIs(t, err, errs.ErrTruncatedInput)

	_, err = dec.UncompressUnsorted([]byte{})
	require.ErrorIs(t, err, errs.ErrTruncatedInput)

	enc := NewEncoder()
	values := make([]uint32, BlockSize)
	for i := range values {
		values[i] = uint32(i) //nolint:gosec
	}
	data, err := enc.CompressSorted(values, 0)
	require.NoError(t, err)

	_, err = dec.UncompressSorted(data[:len(data)-1], 0)
	require.ErrorIs(t, err, errs.ErrTruncatedInput)
	require.Equal(t, 0, dec.Len())

	_, err = dec.UncompressUnsorted([]byte{1})
	require.ErrorIs(t, err, errs.ErrTruncatedInput)
}

func TestDecoder_InvalidBitWidth(t *testing.T) {
	dec := NewDecoder()
	data := make([]byte, 1+BlockSize*5)
	data[0] = 33

	_, err := dec.UncompressUnsorted(data)
	require.ErrorIs(t, err, errs.ErrInvalidBitWidth)
}

func TestDecoder_SortedOverflow(t *testing.T) {
	dec := NewDecoder()
	data := make([]byte, MaxCompressedSize)
	data[0] = 32
	for i := 1; i < len(data); i++ {
		data[i] = 0xFF
	}

	_, err := dec.UncompressSorted(data, 1)
	require.ErrorIs(t, err, errs.ErrValueOverflow)
	require.Empty(t, dec.Output())

	// the same bytes are a valid unsorted block
	rest, err := dec.UncompressUnsorted(data)
	require.NoError(t, err)
	require.Empty(t, rest)
	require.Equal(t, uint32(math.MaxUint32), dec.At(0))
}

func TestDecoder_Reuse(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	enc := NewEncoder()
	dec := NewDecoder()

	for range 20 {
		values := genSorted(rng, rng.Uint32N(1<<20), rng.Uint32N(1<<12))
		data, err := enc.CompressSorted(values, 0)
		require.NoError(t, err)

		_, err = dec.UncompressSorted(data, 0)
		require.NoError(t, err)
		require.Equal(t, BlockSize, dec.Len())
		require.Equal(t, values, dec.Output())
		require.Equal(t, values[BlockSize/2], dec.At(BlockSize/2))
	}
}
