package block

import (
	"fmt"

	"github.com/arloliu/blockpack/errs"
	"github.com/arloliu/blockpack/internal/bitpack"
)

// Encoder compresses blocks into an internal, reused output buffer.
//
// All buffers are fixed-size arrays allocated once by NewEncoder:
//   - scratch: BlockSize deltas for the sorted path, so caller input is never mutated
//   - output: MaxCompressedSize bytes, enough for any block at any width
//
// The slice returned by CompressSorted and CompressUnsorted points into output and is
// valid until the next compress call. Copy or append it before compressing another
// block.
//
// An Encoder is not safe for concurrent use.
type Encoder struct {
	scratch [BlockSize]uint32
	output  [MaxCompressedSize]byte
	size    int
	writer  bitpack.Writer
}

// NewEncoder creates a new block encoder with worst-case buffers.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// CompressSorted delta-encodes and bit-packs a sorted block.
//
// Parameters:
//   - values: Exactly BlockSize non-decreasing values
//   - offset: Value preceding values[0], must be <= values[0]
//
// Returns:
//   - []byte: Compressed block, 1 + ceil(BlockSize*width/8) bytes, owned by the encoder
//   - error: errs.ErrLengthMismatch or errs.ErrPrecedenceViolation
//
// Example:
//
//	enc := NewEncoder()
//	data, err := enc.CompressSorted(docIDs[:BlockSize], 0)
//	if err != nil {
//	    return err
//	}
//	out = append(out, data...)
func (e *Encoder) CompressSorted(values []uint32, offset uint32) ([]byte, error) {
	if len(values) != BlockSize {
		return nil, fmt.Errorf("%w: got %d values, want %d", errs.ErrLengthMismatch, len(values), BlockSize)
	}

	maxDelta, err := DeltaEncode(e.scratch[:], values, offset)
	if err != nil {
		e.size = 0
		return nil, err
	}

	return e.pack(e.scratch[:], maxDelta)
}

// CompressUnsorted bit-packs a block of arbitrary values without delta encoding.
//
// Parameters:
//   - values: Exactly BlockSize values in any order
//
// Returns:
//   - []byte: Compressed block, owned by the encoder
//   - error: errs.ErrEmptyBlock for empty input, errs.ErrLengthMismatch otherwise
func (e *Encoder) CompressUnsorted(values []uint32) ([]byte, error) {
	if len(values) == 0 {
		return nil, errs.ErrEmptyBlock
	}

	if len(values) != BlockSize {
		return nil, fmt.Errorf("%w: got %d values, want %d", errs.ErrLengthMismatch, len(values), BlockSize)
	}

	var maxVal uint32
	for _, v := range values {
		maxVal = max(maxVal, v)
	}

	return e.pack(values, maxVal)
}

// Bytes returns the most recently compressed block.
func (e *Encoder) Bytes() []byte {
	return e.output[:e.size]
}

// Size returns the length of the most recently compressed block.
func (e *Encoder) Size() int {
	return e.size
}

func (e *Encoder) pack(values []uint32, maxVal uint32) ([]byte, error) {
	width := bitpack.BitWidth(uint64(maxVal))
	e.output[0] = width
	e.size = 0

	// output holds MaxCompressedSize bytes, so none of the writer errors below can
	// occur for BlockSize values of at most 32 bits.
	if err := e.writer.Reset(e.output[1:], width); err != nil {
		return nil, err
	}

	for _, v := range values {
		if err := e.writer.Write(v); err != nil {
			return nil, err
		}
	}

	n, err := e.writer.Close()
	if err != nil {
		return nil, err
	}

	e.size = 1 + n

	return e.output[:e.size], nil
}
