package postings

import (
	"encoding/binary"
	"fmt"
	"iter"
	"math"
	"slices"
	"sort"

	"github.com/arloliu/blockpack/block"
	"github.com/arloliu/blockpack/compress"
	"github.com/arloliu/blockpack/errs"
	"github.com/arloliu/blockpack/format"
	"github.com/arloliu/blockpack/internal/bitpack"
	"github.com/arloliu/blockpack/internal/hash"
	"github.com/arloliu/blockpack/section"
)

// Decoder reads a posting list container produced by Encoder.
//
// NewDecoder validates the header, verifies the checksum over the skip index and stored
// payload, decompresses the payload and walks the skip index once. Every decoded block
// is also checked against the last value its index entry records.
//
// Note: The Decoder is NOT thread-safe. It reuses a single block decoder for All,
// Values, Block and Seek.
type Decoder struct {
	header     section.Header
	index      []section.IndexEntry
	payload    []byte // uncompressed payload
	tailOffset int    // start of the varint tail in payload
	blockDec   *block.Decoder
}

// NewDecoder creates a Decoder for the given container.
//
// Parameters:
//   - data: Encoded container; it is not modified, and for uncompressed containers the
//     decoder keeps referencing it
//
// Returns:
//   - *Decoder: Decoder ready for reading
//   - error: Header, layout, checksum, decompression or skip index errors
func NewDecoder(data []byte) (*Decoder, error) {
	header, err := section.ParseHeader(data)
	if err != nil {
		return nil, err
	}

	if err := header.ValidateLayout(len(data)); err != nil {
		return nil, err
	}

	if !hash.Verify(data[header.IndexOffset:], header.Checksum) {
		return nil, errs.ErrChecksumMismatch
	}

	engine := header.Flag.GetEndianEngine()
	index, err := section.ParseIndex(data[header.IndexOffset:header.PayloadOffset], int(header.BlockCount), engine)
	if err != nil {
		return nil, err
	}

	stored := data[header.PayloadOffset:]

	payload, err := decompressPayload(header.Flag.CompressionType(), stored, int(header.PayloadLength))
	if err != nil {
		return nil, err
	}

	d := &Decoder{
		header:   header,
		index:    index,
		payload:  payload,
		blockDec: block.NewDecoder(),
	}

	if err := d.validateIndex(); err != nil {
		return nil, err
	}

	return d, nil
}

// Len returns the number of values in the list.
func (d *Decoder) Len() int {
	return int(d.header.Count)
}

// Sorted reports whether the list was encoded as a sorted list.
func (d *Decoder) Sorted() bool {
	return d.header.Flag.IsSorted()
}

// Ordering returns the ordering recorded in the header.
func (d *Decoder) Ordering() format.Ordering {
	return d.header.Flag.Ordering()
}

// Compression returns the payload compression recorded in the header.
func (d *Decoder) Compression() format.CompressionType {
	return d.header.Flag.CompressionType()
}

// BlockCount returns the number of full blocks, Len() / block.BlockSize.
func (d *Decoder) BlockCount() int {
	return len(d.index)
}

// All returns an iterator over every value in encoding order.
//
// Full blocks are decoded one at a time, each sorted block seeded with the last value
// of the block before it. Iteration stops early on malformed data; use Values to get
// the error.
//
// Example:
//
//	for docID := range dec.All() {
//	    fmt.Println(docID)
//	}
func (d *Decoder) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		_ = d.each(yield)
	}
}

// Values decodes the whole list into a new slice.
func (d *Decoder) Values() ([]uint32, error) {
	values := make([]uint32, 0, d.Len())
	err := d.each(func(v uint32) bool {
		values = append(values, v)
		return true
	})
	if err != nil {
		return nil, err
	}

	return values, nil
}

// Block decodes the i-th full block using the skip index.
//
// Returns:
//   - []uint32: New slice of block.BlockSize values
//   - error: errs.ErrBlockOutOfRange if i is not in [0, BlockCount()), or decode errors
func (d *Decoder) Block(i int) ([]uint32, error) {
	if err := d.decodeBlock(i); err != nil {
		return nil, err
	}

	return slices.Clone(d.blockDec.Output()), nil
}

// Seek returns the first value that is greater than or equal to target.
//
// The skip index is binary searched for the first block whose last value reaches
// target, so at most one block is decoded. Values past the last full block are read
// from the varint tail.
//
// Returns:
//   - uint32: The value found
//   - bool: false if every value is below target
//   - error: errs.ErrNotSorted for unsorted lists, or decode errors
func (d *Decoder) Seek(target uint32) (uint32, bool, error) {
	if !d.Sorted() {
		return 0, false, errs.ErrNotSorted
	}

	i := sort.Search(len(d.index), func(i int) bool {
		return d.index[i].LastValue >= target
	})

	if i < len(d.index) {
		if err := d.decodeBlock(i); err != nil {
			return 0, false, err
		}

		out := d.blockDec.Output()
		j := sort.Search(len(out), func(j int) bool { return out[j] >= target })

		return out[j], true, nil
	}

	// the tail continues from the last full block, decoded to confirm its index entry
	var prev uint32
	if n := len(d.index); n > 0 {
		if err := d.decodeBlock(n - 1); err != nil {
			return 0, false, err
		}
		prev = d.blockDec.At(block.BlockSize - 1)
	}

	var (
		found uint32
		ok    bool
	)
	err := d.eachTail(prev, func(v uint32) bool {
		if v >= target {
			found, ok = v, true
			return false
		}

		return true
	})
	if err != nil {
		return 0, false, err
	}

	return found, ok, nil
}

// each feeds every value to yield, stopping when yield returns false.
func (d *Decoder) each(yield func(uint32) bool) error {
	sorted := d.Sorted()
	rest := d.payload[:d.tailOffset]

	var (
		offset uint32
		err    error
	)
	for i := range d.index {
		if sorted {
			rest, err = d.blockDec.UncompressSorted(rest, offset)
		} else {
			rest, err = d.blockDec.UncompressUnsorted(rest)
		}
		if err != nil {
			return err
		}

		if err := d.checkBlockLast(i); err != nil {
			return err
		}

		for _, v := range d.blockDec.Output() {
			if !yield(v) {
				return nil
			}
		}

		offset = d.blockDec.At(block.BlockSize - 1)
	}

	return d.eachTail(offset, yield)
}

// eachTail feeds the values stored after the last full block to yield. For sorted
// lists prev is the decoded last value of that block, or 0 without full blocks.
func (d *Decoder) eachTail(prev uint32, yield func(uint32) bool) error {
	sorted := d.Sorted()
	tailCount := d.Len() % block.BlockSize
	tail := d.payload[d.tailOffset:]

	for i := range tailCount {
		raw, n := binary.Uvarint(tail)
		if n <= 0 {
			return fmt.Errorf("%w: tail value %d of %d", errs.ErrTruncatedInput, i, tailCount)
		}
		tail = tail[n:]

		v := raw
		if sorted && v <= math.MaxUint32 {
			v += uint64(prev)
		}
		if v > math.MaxUint32 {
			return fmt.Errorf("%w: tail value %d", errs.ErrValueOverflow, i)
		}
		prev = uint32(v)

		if !yield(prev) {
			return nil
		}
	}

	if len(tail) != 0 {
		return fmt.Errorf("%w: %d trailing bytes", errs.ErrPayloadLengthMismatch, len(tail))
	}

	return nil
}

// decodeBlock decodes the i-th full block into the block decoder.
func (d *Decoder) decodeBlock(i int) error {
	if i < 0 || i >= len(d.index) {
		return fmt.Errorf("%w: %d of %d", errs.ErrBlockOutOfRange, i, len(d.index))
	}

	data := d.payload[d.index[i].Offset:d.tailOffset]
	if !d.Sorted() {
		if _, err := d.blockDec.UncompressUnsorted(data); err != nil {
			return err
		}

		return d.checkBlockLast(i)
	}

	var offset uint32
	if i > 0 {
		offset = d.index[i-1].LastValue
	}

	if _, err := d.blockDec.UncompressSorted(data, offset); err != nil {
		return err
	}

	return d.checkBlockLast(i)
}

// checkBlockLast compares the last value in the block decoder with index entry i.
func (d *Decoder) checkBlockLast(i int) error {
	if last := d.blockDec.At(block.BlockSize - 1); last != d.index[i].LastValue {
		return fmt.Errorf("%w: block %d ends at %d, index says %d", errs.ErrIndexMismatch, i, last, d.index[i].LastValue)
	}

	return nil
}

// validateIndex checks that the skip index describes consecutive, well-formed blocks
// and locates the tail.
func (d *Decoder) validateIndex() error {
	pos := 0
	for i, entry := range d.index {
		if int(entry.Offset) != pos {
			return fmt.Errorf("%w: block %d at %d, expected %d", errs.ErrInvalidPayloadOffset, i, entry.Offset, pos)
		}

		if pos >= len(d.payload) {
			return fmt.Errorf("%w: block %d starts past the payload", errs.ErrTruncatedInput, i)
		}

		width := d.payload[pos]
		if width > bitpack.MaxWidth {
			return fmt.Errorf("%w: block %d has width %d", errs.ErrInvalidBitWidth, i, width)
		}

		pos += block.CompressedSize(width)
		if pos > len(d.payload) {
			return fmt.Errorf("%w: block %d", errs.ErrTruncatedInput, i)
		}

		if d.Sorted() && i > 0 && entry.LastValue < d.index[i-1].LastValue {
			return fmt.Errorf("%w: block %d ends below block %d", errs.ErrPrecedenceViolation, i, i-1)
		}
	}
	d.tailOffset = pos

	return nil
}

func decompressPayload(comp format.CompressionType, stored []byte, size int) ([]byte, error) {
	codec, err := compress.GetCodec(comp)
	if err != nil {
		return nil, err
	}

	// size was bounded by the header layout check
	payload, err := codec.DecompressSized(stored, size)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress payload: %w", err)
	}

	if len(payload) != size {
		return nil, fmt.Errorf("%w: got %d bytes, header says %d", errs.ErrPayloadLengthMismatch, len(payload), size)
	}

	return payload, nil
}
