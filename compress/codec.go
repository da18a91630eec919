package compress

import (
	"fmt"

	"github.com/arloliu/blockpack/errs"
	"github.com/arloliu/blockpack/format"
)

// Compressor compresses an encoded posting list payload.
//
// Payloads are concatenated compressed blocks followed by a varint tail. Bit-packed
// blocks leave little redundancy for general-purpose compressors, so compression pays
// off mostly for long lists with repeated delta patterns.
type Compressor interface {
	// Compress compresses data and returns the result.
	//
	// Memory management:
	//   - The returned slice is owned by the caller, except for NoOpCompressor which
	//     returns data itself
	//   - data is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
//
// Implementations must be safe for concurrent use.
type Decompressor interface {
	// Decompress decompresses data produced by the matching Compressor.
	//
	// Error conditions:
	//   - data is corrupted
	//   - data was produced by a different algorithm
	Decompress(data []byte) ([]byte, error)
}

// SizedDecompressor decompresses data whose decompressed length is known up front.
//
// The posting list container records the uncompressed payload length, and the header
// bounds it, so decoders allocate at most size bytes and reject data that decodes or
// declares any other length before allocating for it.
type SizedDecompressor interface {
	// DecompressSized decompresses data whose decompressed length is exactly size.
	DecompressSized(data []byte, size int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
	SizedDecompressor
}

func sizeMismatch(codec string, got, want int) error {
	return fmt.Errorf("%w: %s decompressed size %d, want %d", errs.ErrPayloadLengthMismatch, codec, got, want)
}

// CreateCodec creates a Codec for the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the shared built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
