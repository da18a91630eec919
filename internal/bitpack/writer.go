package bitpack

import (
	"fmt"

	"github.com/arloliu/blockpack/errs"
)

// Writer writes fixed-width values into a byte slice.
//
// Completed bytes are flushed from a 64-bit accumulator as soon as they fill, so the
// accumulator never holds more than 7+32 bits. Close must be called to flush the
// trailing partial byte.
//
// A Writer never grows its destination: writing past the end of dst returns
// errs.ErrBufferOverflow. Sizing dst with ByteCount makes that unreachable.
type Writer struct {
	dst   []byte
	pos   int
	acc   uint64
	nbits uint8
	width uint8
}

// NewWriter creates a Writer packing values of the given width into dst.
func NewWriter(dst []byte, width uint8) (*Writer, error) {
	w := &Writer{}
	if err := w.Reset(dst, width); err != nil {
		return nil, err
	}

	return w, nil
}

// Reset re-targets the writer to dst with a new width, discarding any pending bits.
func (w *Writer) Reset(dst []byte, width uint8) error {
	if width > MaxWidth {
		return fmt.Errorf("%w: %d", errs.ErrInvalidBitWidth, width)
	}

	w.dst = dst
	w.pos = 0
	w.acc = 0
	w.nbits = 0
	w.width = width

	return nil
}

// Write appends one value.
//
// Returns:
//   - errs.ErrValueOverflow if v needs more than the writer width
//   - errs.ErrBufferOverflow if the destination is full
func (w *Writer) Write(v uint32) error {
	if uint64(v)&^mask(w.width) != 0 {
		return fmt.Errorf("%w: %d does not fit in %d bits", errs.ErrValueOverflow, v, w.width)
	}

	if w.width == 0 {
		return nil
	}

	w.acc |= uint64(v) << w.nbits
	w.nbits += w.width

	for w.nbits >= 8 {
		if w.pos >= len(w.dst) {
			return errs.ErrBufferOverflow
		}

		w.dst[w.pos] = byte(w.acc)
		w.pos++
		w.acc >>= 8
		w.nbits -= 8
	}

	return nil
}

// Close flushes the trailing partial byte and returns the total number of bytes written.
func (w *Writer) Close() (int, error) {
	if w.nbits > 0 {
		if w.pos >= len(w.dst) {
			return w.pos, errs.ErrBufferOverflow
		}

		w.dst[w.pos] = byte(w.acc)
		w.pos++
		w.acc = 0
		w.nbits = 0
	}

	return w.pos, nil
}
