// Package blockpack compresses lists of 32-bit unsigned integers, such as posting lists
// of document IDs, in fixed-size blocks of 128 values.
//
// Each block is delta-encoded when the values are sorted, then bit-packed at the
// smallest width that holds every value of the block. Sorted blocks chain: every block
// is encoded relative to the last value of the block before it, so the first delta is
// as small as the rest.
//
// # Core Features
//
//   - Minimal per-block bit width (0 to 32 bits) with a one-byte block header
//   - Sorted (delta) and unsorted (raw) block modes
//   - Allocation-free block encoders and decoders that are reused across a stream
//   - Self-describing containers with a skip index for Seek and random block access
//   - Optional payload compression (None, Zstd, S2, LZ4) and xxHash64 checksums
//
// # Basic Usage
//
// Encoding and decoding a whole list:
//
//	data, err := blockpack.EncodeSorted(docIDs)
//	if err != nil {
//	    return err
//	}
//
//	values, err := blockpack.Decode(data)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the postings package.
// For streaming, Seek and block access use postings directly; for raw blocks without
// a container use the block package.
package blockpack

import (
	"slices"

	"github.com/arloliu/blockpack/postings"
)

// EncodeSorted encodes a non-decreasing list into a posting list container.
//
// Parameters:
//   - values: Non-decreasing values; it is not modified
//   - opts: Additional options, such as postings.WithCompression
//
// Returns:
//   - []byte: Encoded container
//   - error: errs.ErrPrecedenceViolation if values decrease anywhere, or option errors
func EncodeSorted(values []uint32, opts ...postings.EncoderOption) ([]byte, error) {
	return encode(values, append(slices.Clip(opts), postings.WithSorted()))
}

// EncodeUnsorted encodes a list in any order into a posting list container.
func EncodeUnsorted(values []uint32, opts ...postings.EncoderOption) ([]byte, error) {
	return encode(values, append(slices.Clip(opts), postings.WithUnsorted()))
}

// Decode decodes a container produced by EncodeSorted, EncodeUnsorted or a
// postings.Encoder into a new slice.
func Decode(data []byte) ([]uint32, error) {
	dec, err := postings.NewDecoder(data)
	if err != nil {
		return nil, err
	}

	return dec.Values()
}

func encode(values []uint32, opts []postings.EncoderOption) ([]byte, error) {
	enc, err := postings.NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	if err := enc.AddSlice(values); err != nil {
		return nil, err
	}

	return enc.Finish()
}
