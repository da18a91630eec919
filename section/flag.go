package section

import (
	"github.com/arloliu/blockpack/block"
	"github.com/arloliu/blockpack/endian"
	"github.com/arloliu/blockpack/errs"
	"github.com/arloliu/blockpack/format"
)

// Flag is the first 4 bytes of the container header.
type Flag struct {
	// Options is a packed field, always stored little-endian.
	// Bit 0 is the ordering flag, 1 means sorted (delta-encoded) values.
	// Bit 1 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 2-3 are reserved and must be 0.
	// Bit 4-15 are the magic number, MagicPostingV1.
	Options uint16

	// Compression is the format.CompressionType applied to the payload.
	Compression uint8

	// BlockSize is the number of values per block; it must equal block.BlockSize.
	BlockSize uint8
}

// NewFlag creates a Flag for a sorted, little-endian, uncompressed container.
func NewFlag() Flag {
	flag := Flag{
		Options:     MagicPostingV1,
		Compression: uint8(format.CompressionNone),
		BlockSize:   block.BlockSize,
	}
	flag.SetOrdering(format.OrderSorted)
	flag.WithLittleEndian()

	return flag
}

// IsSorted returns whether values are stored as sorted deltas.
func (f Flag) IsSorted() bool {
	return (f.Options & SortedMask) != 0
}

// Ordering returns the ordering recorded in the flag.
func (f Flag) Ordering() format.Ordering {
	if f.IsSorted() {
		return format.OrderSorted
	}

	return format.OrderUnsorted
}

// SetOrdering records the ordering of the stored values.
func (f *Flag) SetOrdering(ordering format.Ordering) {
	if ordering == format.OrderSorted {
		f.Options |= SortedMask
	} else {
		f.Options &^= SortedMask
	}
}

// IsLittleEndian returns whether fixed-width fields are little-endian.
func (f Flag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether fixed-width fields are big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// CompressionType returns the payload compression type.
func (f Flag) CompressionType() format.CompressionType {
	return format.CompressionType(f.Compression)
}

// SetCompressionType sets the payload compression type.
func (f *Flag) SetCompressionType(compression format.CompressionType) {
	f.Compression = uint8(compression)
}

// Validate checks the magic number, reserved bits, compression type and block size.
func (f Flag) Validate() error {
	if f.GetMagicNumber() != MagicPostingV1 {
		return errs.ErrInvalidHeaderFlags
	}

	if f.Options&ReservedBitsMask != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	if !f.CompressionType().IsValid() {
		return errs.ErrInvalidCompression
	}

	if f.BlockSize != block.BlockSize {
		return errs.ErrInvalidBlockSize
	}

	return nil
}

// GetEndianEngine returns the endian engine selected by the flag.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}
