// Package format defines the enumerations stored in blockpack container headers.
package format

type (
	Ordering        uint8
	CompressionType uint8
)

const (
	OrderSorted   Ordering = 0x1 // OrderSorted represents non-decreasing values stored as deltas.
	OrderUnsorted Ordering = 0x2 // OrderUnsorted represents arbitrary values stored directly.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (o Ordering) String() string {
	switch o {
	case OrderSorted:
		return "Sorted"
	case OrderUnsorted:
		return "Unsorted"
	default:
		return "Unknown"
	}
}

// IsValid reports whether o is a known ordering.
func (o Ordering) IsValid() bool {
	return o == OrderSorted || o == OrderUnsorted
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a known compression type.
func (c CompressionType) IsValid() bool {
	switch c {
	case CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4:
		return true
	default:
		return false
	}
}
