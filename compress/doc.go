// Package compress provides the optional second-stage codecs for posting list payloads.
//
// A posting list payload is already compact: full blocks are delta-encoded and
// bit-packed, and the tail is varint-encoded. This package applies a general-purpose
// compressor on top of that payload as a whole, trading CPU for the remaining
// redundancy (repeated bit widths, runs of identical deltas in dense lists).
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): payload stored as-is, the default
//   - Zstd (format.CompressionZstd): best ratio, slowest
//   - S2 (format.CompressionS2): balanced
//   - LZ4 (format.CompressionLZ4): fastest decompression
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	stored, err := codec.Compress(payload)
//	...
//	payload, err = codec.Decompress(stored)
//
// # Build Tags
//
// Zstd is implemented with github.com/klauspost/compress/zstd by default. Building with
// cgo enabled and the gozstd tag swaps in github.com/valyala/gozstd (libzstd):
//
//	go build -tags gozstd ./...
//
// # Thread Safety
//
// All codecs are stateless values backed by sync.Pool where they keep state, and are
// safe for concurrent use.
package compress
