// Package postings stores whole uint32 lists, such as the document IDs of an inverted
// index term, as self-describing containers built from compressed blocks.
//
// # Container Layout
//
//	+---------------------------+ 0
//	| Header (32 bytes)         |
//	+---------------------------+ 32
//	| Skip index                |  BlockCount entries of 8 bytes:
//	|                           |  last value of the block, payload offset of the block
//	+---------------------------+ PayloadOffset
//	| Payload (maybe compressed)|  full blocks back to back, then Count % 128 uvarints
//	+---------------------------+
//
// Every full block of 128 values is compressed with package block. In a sorted list the
// first block is encoded against 0 and block i against the last value of block i-1,
// which the skip index records, so any single block can be decoded without touching
// the blocks before it. Tail values are deltas from the previous value for sorted
// lists and raw values otherwise.
//
// The header records ordering, byte order, payload compression, counts, offsets and an
// xxHash64 checksum of the skip index and stored payload. Fixed-width header and index
// fields follow the chosen byte order; block payloads never depend on it.
//
// # Basic Usage
//
//	enc, _ := postings.NewEncoder()
//	for _, id := range docIDs {
//	    if err := enc.Add(id); err != nil {
//	        return err
//	    }
//	}
//	data, err := enc.Finish()
//
//	dec, err := postings.NewDecoder(data)
//	if err != nil {
//	    return err
//	}
//	v, ok, err := dec.Seek(1000) // first ID >= 1000
package postings
