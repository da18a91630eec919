package postings

import (
	"fmt"
	"io"
	"math"

	"github.com/arloliu/blockpack/block"
	"github.com/arloliu/blockpack/errs"
	"github.com/arloliu/blockpack/format"
	"github.com/arloliu/blockpack/internal/hash"
	"github.com/arloliu/blockpack/internal/options"
	"github.com/arloliu/blockpack/internal/pool"
	"github.com/arloliu/blockpack/section"
)

// Encoder builds a posting list container from a stream of values.
//
// Values are buffered until a full block is available, then compressed by a single
// reused block.Encoder and appended to the payload. For sorted lists each block is
// seeded with the last value of the previous block, so the first delta of a block is
// as small as the others. The final Count % BlockSize values are written as uvarints.
//
// An Encoder is reusable: Finish and WriteTo reset it for the next list with the same
// configuration. It is not safe for concurrent use.
type Encoder struct {
	*EncoderConfig

	blockEnc *block.Encoder
	pending  [block.BlockSize]uint32
	nPending int
	payload  *pool.ByteBuffer // borrowed on first flush, returned on Reset
	index    []section.IndexEntry
	indexBuf []byte // encoded skip index, rebuilt by seal

	count     uint64
	last      uint32 // last value added
	blockLast uint32 // last value of the last flushed block
}

// NewEncoder creates a posting list encoder.
//
// Parameters:
//   - opts: Optional configuration (ordering, compression, endianness)
//
// Returns:
//   - *Encoder: New encoder instance
//   - error: Configuration error if invalid options are provided
//
// Example:
//
//	enc, err := postings.NewEncoder(postings.WithCompression(format.CompressionZstd))
//	if err != nil {
//	    return err
//	}
//	if err := enc.AddSlice(docIDs); err != nil {
//	    return err
//	}
//	data, err := enc.Finish()
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	config := NewEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	return &Encoder{
		EncoderConfig: config,
		blockEnc:      block.NewEncoder(),
	}, nil
}

// Add appends one value.
//
// Returns:
//   - error: errs.ErrPrecedenceViolation if the list is sorted and v is below the
//     previous value, errs.ErrTooManyValues once section.MaxValueCount is reached
func (e *Encoder) Add(v uint32) error {
	if e.count >= section.MaxValueCount {
		return errs.ErrTooManyValues
	}

	if e.isSorted() && e.count > 0 && v < e.last {
		return fmt.Errorf("%w: value %d after %d at position %d", errs.ErrPrecedenceViolation, v, e.last, e.count)
	}

	e.pending[e.nPending] = v
	e.nPending++
	e.count++
	e.last = v

	if e.nPending == block.BlockSize {
		return e.flushBlock()
	}

	return nil
}

// AddSlice appends values in order. It stops at the first invalid value; values before
// it remain added.
func (e *Encoder) AddSlice(values []uint32) error {
	for _, v := range values {
		if err := e.Add(v); err != nil {
			return err
		}
	}

	return nil
}

// Len returns the number of values added since the last Finish or Reset.
func (e *Encoder) Len() int {
	return int(e.count) //nolint:gosec
}

// Finish completes the container and returns it.
//
// The returned slice is newly allocated and owned by the caller. The encoder is reset
// regardless of the outcome.
func (e *Encoder) Finish() ([]byte, error) {
	defer e.Reset()

	header, stored, err := e.seal()
	if err != nil {
		return nil, err
	}

	size := section.HeaderSize + len(e.indexBuf) + len(stored)
	blob := make([]byte, 0, size)
	blob = append(blob, header.Bytes()...)
	blob = append(blob, e.indexBuf...)
	blob = append(blob, stored...)

	return blob, nil
}

// WriteTo completes the container and writes it to w, assembling it in a pooled
// buffer instead of a new allocation. The encoder is reset regardless of the outcome.
func (e *Encoder) WriteTo(w io.Writer) (int64, error) {
	defer e.Reset()

	header, stored, err := e.seal()
	if err != nil {
		return 0, err
	}

	bb := pool.GetContainerBuffer()
	defer pool.PutContainerBuffer(bb)

	bb.Grow(section.HeaderSize + len(e.indexBuf) + len(stored))
	bb.MustWrite(header.Bytes())
	bb.MustWrite(e.indexBuf)
	bb.MustWrite(stored)

	return bb.WriteTo(w)
}

// Reset discards all added values and keeps the configuration.
func (e *Encoder) Reset() {
	if e.payload != nil {
		pool.PutPayloadBuffer(e.payload)
		e.payload = nil
	}
	e.index = e.index[:0]
	e.nPending = 0
	e.count = 0
	e.last = 0
	e.blockLast = 0
}

func (e *Encoder) isSorted() bool {
	return e.header.Flag.Ordering() == format.OrderSorted
}

func (e *Encoder) payloadBuffer() *pool.ByteBuffer {
	if e.payload == nil {
		e.payload = pool.GetPayloadBuffer()
	}

	return e.payload
}

func (e *Encoder) flushBlock() error {
	payload := e.payloadBuffer()

	start := payload.Len()
	if uint64(start) > math.MaxUint32 {
		return fmt.Errorf("%w: payload exceeds %d bytes", errs.ErrTooManyValues, uint32(math.MaxUint32))
	}

	var (
		data []byte
		err  error
	)
	if e.isSorted() {
		data, err = e.blockEnc.CompressSorted(e.pending[:], e.blockLast)
	} else {
		data, err = e.blockEnc.CompressUnsorted(e.pending[:])
	}
	if err != nil {
		return err
	}

	payload.MustWrite(data)

	last := e.pending[block.BlockSize-1]
	e.index = append(e.index, section.IndexEntry{
		LastValue: last,
		Offset:    uint32(start), //nolint:gosec
	})
	e.blockLast = last
	e.nPending = 0

	return nil
}

// seal writes the tail, compresses the payload, encodes the skip index and fills in
// the final header. The checksum covers the index and the stored payload.
func (e *Encoder) seal() (section.Header, []byte, error) {
	payload := e.payloadBuffer()

	prev := e.blockLast
	for _, v := range e.pending[:e.nPending] {
		if e.isSorted() {
			payload.AppendUvarint(uint64(v - prev))
			prev = v
		} else {
			payload.AppendUvarint(uint64(v))
		}
	}

	raw := payload.Bytes()
	if uint64(len(raw)) > math.MaxUint32 {
		return section.Header{}, nil, fmt.Errorf("%w: payload of %d bytes", errs.ErrTooManyValues, len(raw))
	}

	stored, err := e.codec.Compress(raw)
	if err != nil {
		return section.Header{}, nil, fmt.Errorf("failed to compress payload: %w", err)
	}

	e.indexBuf = e.indexBuf[:0]
	for _, entry := range e.index {
		e.indexBuf = entry.AppendTo(e.indexBuf, e.engine)
	}
	indexSize := len(e.indexBuf)

	header := *e.header
	header.Count = uint32(e.count)           //nolint:gosec
	header.BlockCount = uint32(len(e.index)) //nolint:gosec
	header.IndexOffset = section.IndexOffsetOffset
	header.PayloadOffset = uint32(section.IndexOffsetOffset + indexSize) //nolint:gosec
	header.PayloadLength = uint32(len(raw))                              //nolint:gosec
	header.Checksum = hash.Sum64Parts(e.indexBuf, stored)

	return header, stored, nil
}
