package section

import "math"

const (
	// Bit masks of the options word
	SortedMask       = 0x0001 // Mask for ordering bit (bit 0), 1 = sorted
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1), 1 = big-endian
	ReservedBitsMask = 0x000C // Mask for reserved bits (bits 2-3), must be 0
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicPostingV1 is the version 1 magic number of the posting list container.
	MagicPostingV1 = 0xB170
)

// offsets and section sizes in the container
const (
	HeaderSize        = 32             // fixed header size in bytes
	IndexEntrySize    = 8              // fixed skip index entry size in bytes
	IndexOffsetOffset = HeaderSize     // byte offset where the skip index starts
	MaxValueCount     = math.MaxUint32 // maximum number of values in one container
)
