package bitpack

import "encoding/binary"

// Reader provides random access to fixed-width values packed by Writer.
//
// Reader does no bounds validation of its own beyond what slicing enforces; callers
// must check len(data) >= ByteCount(n, width) before reading n values.
type Reader struct {
	data  []byte
	width uint8
	mask  uint64
}

// NewReader creates a Reader over data holding values of the given width.
// The width must be at most MaxWidth.
func NewReader(data []byte, width uint8) Reader {
	return Reader{
		data:  data,
		width: width,
		mask:  mask(width),
	}
}

// Get returns the value at index i.
func (r Reader) Get(i int) uint32 {
	if r.width == 0 {
		return 0
	}

	bitPos := i * int(r.width)
	byteIdx := bitPos >> 3
	shift := uint(bitPos & 7) //nolint:gosec

	// fast path: a full 8-byte window is available
	if byteIdx+8 <= len(r.data) {
		word := binary.LittleEndian.Uint64(r.data[byteIdx:])
		return uint32((word >> shift) & r.mask) //nolint:gosec
	}

	// shift+width <= 39 bits, so at most 5 bytes are involved
	var word uint64
	for j := 0; j < 5 && byteIdx+j < len(r.data); j++ {
		word |= uint64(r.data[byteIdx+j]) << (8 * j)
	}

	return uint32((word >> shift) & r.mask) //nolint:gosec
}
