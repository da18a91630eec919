package block

import "github.com/arloliu/blockpack/internal/bitpack"

const (
	// BlockSize is the number of values in every block.
	BlockSize = 128

	// MaxCompressedSize is the largest possible compressed block: one width byte plus
	// BlockSize values at 32 bits each. Encoder output buffers are allocated at this
	// size, which is why packing into them cannot run out of space.
	MaxCompressedSize = 1 + BlockSize*4
)

// CompressedSize returns the total length of a compressed block with the given bit width,
// including the width byte.
func CompressedSize(bitWidth uint8) int {
	return 1 + bitpack.ByteCount(BlockSize, bitWidth)
}
