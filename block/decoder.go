package block

import (
	"fmt"

	"github.com/arloliu/blockpack/errs"
	"github.com/arloliu/blockpack/internal/bitpack"
)

// Decoder decompresses blocks into an internal, reused output buffer.
//
// After a successful decode, Output exposes exactly BlockSize values. After a failed
// decode, Output is empty. The output buffer is overwritten by every decode call.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	output [BlockSize]uint32
	n      int
}

// NewDecoder creates a new block decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// UncompressSorted decodes a block produced by Encoder.CompressSorted.
//
// Values are rebuilt by accumulating deltas onto offset, so the same offset that was
// passed to CompressSorted must be passed here.
//
// Parameters:
//   - data: Compressed data starting at a block boundary, possibly followed by more blocks
//   - offset: Value preceding the first value of the block
//
// Returns:
//   - []byte: Bytes of data following the decoded block
//   - error: errs.ErrTruncatedInput, errs.ErrInvalidBitWidth, or errs.ErrValueOverflow
func (d *Decoder) UncompressSorted(data []byte, offset uint32) ([]byte, error) {
	rest, err := d.unpack(data)
	if err != nil {
		return nil, err
	}

	if err := DeltaDecode(d.output[:], d.output[:], offset); err != nil {
		d.n = 0
		return nil, err
	}

	return rest, nil
}

// UncompressUnsorted decodes a block produced by Encoder.CompressUnsorted.
//
// Returns the bytes of data following the decoded block.
func (d *Decoder) UncompressUnsorted(data []byte) ([]byte, error) {
	return d.unpack(data)
}

// Output returns the values of the last decoded block.
//
// The returned slice aliases the decoder buffer and is overwritten by the next decode.
func (d *Decoder) Output() []uint32 {
	return d.output[:d.n]
}

// At returns the value at index idx of the last decoded block.
// It panics if idx is outside [0, Len()).
func (d *Decoder) At(idx int) uint32 {
	return d.output[:d.n][idx]
}

// Len returns the number of valid values, BlockSize after a successful decode.
func (d *Decoder) Len() int {
	return d.n
}

func (d *Decoder) unpack(data []byte) ([]byte, error) {
	d.n = 0

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: missing bit width byte", errs.ErrTruncatedInput)
	}

	width := data[0]
	if width > bitpack.MaxWidth {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidBitWidth, width)
	}

	size := CompressedSize(width)
	if len(data) < size {
		return nil, fmt.Errorf("%w: width %d needs %d bytes, have %d", errs.ErrTruncatedInput, width, size, len(data))
	}

	r := bitpack.NewReader(data[1:size], width)
	for i := range d.output {
		d.output[i] = r.Get(i)
	}
	d.n = BlockSize

	return data[size:], nil
}
