package section

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/blockpack/block"
	"github.com/arloliu/blockpack/errs"
)

// Header is the fixed 32-byte section at the start of a posting list container.
type Header struct {
	// Flag holds ordering, endianness, compression and block size.
	Flag Flag // byte offset 0-3
	// Count is the total number of values in the list.
	Count uint32 // byte offset 4-7
	// BlockCount is the number of full blocks, always Count / BlockSize.
	BlockCount uint32 // byte offset 8-11
	// IndexOffset is the byte offset of the skip index, always HeaderSize.
	IndexOffset uint32 // byte offset 12-15
	// PayloadOffset is the byte offset of the stored payload, right after the skip index.
	PayloadOffset uint32 // byte offset 16-19
	// PayloadLength is the length of the payload before compression.
	PayloadLength uint32 // byte offset 20-23
	// Checksum is the xxHash64 of the skip index followed by the stored payload,
	// that is of every byte from IndexOffset to the end of the container.
	Checksum uint64 // byte offset 24-31
}

// NewHeader creates a header with the default flag. Counts, offsets and the checksum
// are filled in when the encoder finishes.
func NewHeader() *Header {
	return &Header{
		Flag:        NewFlag(),
		IndexOffset: IndexOffsetOffset,
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 32 bytes)
//
// Returns:
//   - error: errs.ErrInvalidHeaderSize if data is not 32 bytes, or flag validation errors
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// the options word is always little-endian, it carries the endianness bit
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.Compression = data[2]
	h.Flag.BlockSize = data[3]

	engine := h.Flag.GetEndianEngine()

	h.Count = engine.Uint32(data[4:8])
	h.BlockCount = engine.Uint32(data[8:12])
	h.IndexOffset = engine.Uint32(data[12:16])
	h.PayloadOffset = engine.Uint32(data[16:20])
	h.PayloadLength = engine.Uint32(data[20:24])
	h.Checksum = engine.Uint64(data[24:32])

	return h.Flag.Validate()
}

// Bytes serializes the header into a new 32-byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.Compression
	b[3] = h.Flag.BlockSize
	engine.PutUint32(b[4:8], h.Count)
	engine.PutUint32(b[8:12], h.BlockCount)
	engine.PutUint32(b[12:16], h.IndexOffset)
	engine.PutUint32(b[16:20], h.PayloadOffset)
	engine.PutUint32(b[20:24], h.PayloadLength)
	engine.PutUint64(b[24:32], h.Checksum)

	return b
}

// IndexSize returns the byte length of the skip index.
func (h *Header) IndexSize() int {
	return int(h.BlockCount) * IndexEntrySize
}

// ValidateLayout checks that counts and offsets are consistent with each other and
// with a container of dataLen bytes.
func (h *Header) ValidateLayout(dataLen int) error {
	if h.BlockCount != h.Count/block.BlockSize {
		return fmt.Errorf("%w: %d blocks for %d values", errs.ErrInvalidIndexSize, h.BlockCount, h.Count)
	}

	if h.IndexOffset != IndexOffsetOffset {
		return fmt.Errorf("%w: index offset %d", errs.ErrInvalidPayloadOffset, h.IndexOffset)
	}

	if uint64(h.PayloadOffset) != uint64(IndexOffsetOffset)+uint64(h.IndexSize()) {
		return fmt.Errorf("%w: payload offset %d", errs.ErrInvalidPayloadOffset, h.PayloadOffset)
	}

	if int(h.PayloadOffset) > dataLen {
		return fmt.Errorf("%w: payload offset %d beyond %d bytes", errs.ErrInvalidPayloadOffset, h.PayloadOffset, dataLen)
	}

	if maxLen := h.MaxPayloadLength(); uint64(h.PayloadLength) > maxLen {
		return fmt.Errorf("%w: payload length %d exceeds %d", errs.ErrPayloadLengthMismatch, h.PayloadLength, maxLen)
	}

	return nil
}

// MaxPayloadLength returns the largest uncompressed payload the header's counts allow:
// every full block at 32 bits per value plus a tail of BlockSize-1 five-byte uvarints.
func (h *Header) MaxPayloadLength() uint64 {
	return uint64(h.BlockCount)*block.MaxCompressedSize + (block.BlockSize-1)*binary.MaxVarintLen32
}

// ParseHeader parses a Header from the start of data.
//
// Returns errs.ErrInvalidHeaderSize if data is shorter than HeaderSize.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errs.ErrInvalidHeaderSize
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
