package compress

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/blockpack/errs"
)

// ZstdCompressor provides Zstandard compression for posting list payloads.
//
// Best ratio of the built-in codecs; a good fit for cold index segments that are
// decoded rarely. The default build uses the pure-Go klauspost/compress
// implementation; building with cgo and the gozstd tag switches to the libzstd
// binding from valyala/gozstd. Both produce standard zstd frames and can read each
// other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(payload)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// checkZstdFrameSize verifies that data starts with a zstd frame declaring exactly size
// decompressed bytes. Both zstd backends write the content size into the frame header.
func checkZstdFrameSize(data []byte, size int) error {
	var h zstd.Header
	if err := h.Decode(data); err != nil {
		return fmt.Errorf("zstd frame header: %w", err)
	}

	if !h.HasFCS {
		return fmt.Errorf("%w: zstd frame without content size, want %d bytes", errs.ErrPayloadLengthMismatch, size)
	}

	if h.FrameContentSize != uint64(size) { //nolint:gosec
		return fmt.Errorf("%w: zstd frame declares %d bytes, want %d", errs.ErrPayloadLengthMismatch, h.FrameContentSize, size)
	}

	return nil
}
