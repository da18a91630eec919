// Package block implements the fixed-size block codec for uint32 lists.
//
// A block is exactly BlockSize values. Two variants exist:
//
//   - Sorted blocks hold non-decreasing values (posting lists of document IDs or
//     positions). Each value is stored as its delta from the previous value; the first
//     value is stored as its delta from a caller-supplied offset, usually the last value
//     of the previous block.
//   - Unsorted blocks hold arbitrary values (term frequencies, field lengths) and are
//     stored directly.
//
// Either way, the stored values are bit-packed at the smallest width that fits the
// largest of them.
//
// # Wire Format
//
//	+-----------+---------------------------------------+
//	| width: u8 | packed: ceil(BlockSize*width/8) bytes |
//	+-----------+---------------------------------------+
//
// The length of a compressed block is fully determined by its first byte, so blocks
// can be concatenated with no framing. Decoders consume exactly one block and return
// the remaining bytes:
//
//	enc := block.NewEncoder()
//	buf = append(buf, must(enc.CompressSorted(first, 0))...)
//	buf = append(buf, must(enc.CompressSorted(second, first[block.BlockSize-1]))...)
//
//	dec := block.NewDecoder()
//	rest, _ := dec.UncompressSorted(buf, 0)
//	// dec.Output() holds first
//	rest, _ = dec.UncompressSorted(rest, dec.At(block.BlockSize-1))
//	// dec.Output() holds second, len(rest) == 0
//
// Packed values use least-significant-bit-first order in a little-endian byte stream.
//
// # Thread Safety
//
// Encoder and Decoder own mutable buffers and must not be shared between goroutines.
// Allocate one per goroutine and reuse it across blocks.
package block
