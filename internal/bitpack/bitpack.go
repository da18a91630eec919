// Package bitpack packs and unpacks fixed-width unsigned integers at bit granularity.
//
// Bit order: values are written least-significant bit first into a little-endian
// byte stream. Value i occupies stream bits [i*width, (i+1)*width), and stream bit k
// is bit k%8 of byte k/8. Unused high bits of the final byte are zero.
//
// The package provides the three primitives used by the block codec:
//   - BitWidth: minimal number of bits needed to represent a maximum value
//   - Writer: sequential fixed-width writer over a caller-provided byte slice
//   - Reader: O(1) random-access reader over a packed byte slice
package bitpack

import "math/bits"

// MaxWidth is the widest supported value width in bits.
const MaxWidth = 32

// BitWidth returns the minimal number of bits needed to represent every value in [0, max].
//
// It returns 0 for max == 0.
func BitWidth(max uint64) uint8 {
	return uint8(bits.Len64(max)) //nolint:gosec
}

// ByteCount returns the number of bytes needed to hold n values of the given width.
func ByteCount(n int, width uint8) int {
	return (n*int(width) + 7) / 8
}

func mask(width uint8) uint64 {
	return (uint64(1) << width) - 1
}
