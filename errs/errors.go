// Package errs defines the sentinel errors returned by blockpack packages.
//
// Callers should compare with errors.Is, since most errors are wrapped with
// additional context (block index, offending value) before being returned.
package errs

import "errors"

// Block codec errors.
var (
	// ErrPrecedenceViolation is returned when a sorted block decreases, or when the
	// seed offset is greater than the first value of the block.
	ErrPrecedenceViolation = errors.New("sorted values must be non-decreasing and not below the offset")
	// ErrLengthMismatch is returned when a block does not hold exactly BlockSize values,
	// or when a destination slice is too short for its source.
	ErrLengthMismatch = errors.New("block length mismatch")
	// ErrEmptyBlock is returned when an unsorted block is compressed from empty input.
	ErrEmptyBlock = errors.New("empty block")
	// ErrTruncatedInput is returned when compressed data is shorter than its bit width declares.
	ErrTruncatedInput = errors.New("truncated compressed input")
	// ErrInvalidBitWidth is returned when a bit width is greater than 32.
	ErrInvalidBitWidth = errors.New("invalid bit width")
	// ErrValueOverflow is returned when a value does not fit in its bit width, or when
	// sorted decoding accumulates past the uint32 range.
	ErrValueOverflow = errors.New("value overflow")
	// ErrBufferOverflow is returned when a bit writer runs out of destination space.
	ErrBufferOverflow = errors.New("bit writer buffer overflow")
)

// Posting list container errors.
var (
	ErrInvalidHeaderSize     = errors.New("invalid header size")
	ErrInvalidHeaderFlags    = errors.New("invalid header flags")
	ErrInvalidBlockSize      = errors.New("invalid block size")
	ErrInvalidIndexSize      = errors.New("invalid index size")
	ErrInvalidIndexEntrySize = errors.New("invalid index entry size")
	ErrInvalidPayloadOffset  = errors.New("invalid payload offset")
	ErrPayloadLengthMismatch = errors.New("payload length mismatch")
	ErrChecksumMismatch      = errors.New("container checksum mismatch")
	ErrIndexMismatch         = errors.New("block does not match its index entry")
	ErrInvalidCompression    = errors.New("invalid compression type")
	ErrTooManyValues         = errors.New("too many values")
	ErrNotSorted             = errors.New("posting list is not sorted")
	ErrBlockOutOfRange       = errors.New("block index out of range")
)
