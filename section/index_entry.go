package section

import (
	"fmt"
	"unsafe"

	"github.com/arloliu/blockpack/endian"
	"github.com/arloliu/blockpack/errs"
)

// IndexEntry describes one full block in the skip index.
//
// For sorted lists, LastValue is both the largest value of the block and the offset
// needed to decode the next block, which is what makes Seek a binary search followed
// by a single block decode.
type IndexEntry struct {
	// LastValue is the last value of the block.
	//
	// Offset: 0, Size: 4 bytes
	LastValue uint32

	// Offset is the byte offset of the block inside the uncompressed payload.
	//
	// Offset: 4, Size: 4 bytes
	Offset uint32
}

// AppendTo appends the 8-byte encoded entry to dst.
func (e IndexEntry) AppendTo(dst []byte, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint32(dst, e.LastValue)
	return engine.AppendUint32(dst, e.Offset)
}

// ParseIndexEntry parses an entry from exactly IndexEntrySize bytes.
func ParseIndexEntry(data []byte, engine endian.EndianEngine) (IndexEntry, error) {
	if len(data) != IndexEntrySize {
		return IndexEntry{}, errs.ErrInvalidIndexEntrySize
	}

	return IndexEntry{
		LastValue: engine.Uint32(data[0:4]),
		Offset:    engine.Uint32(data[4:8]),
	}, nil
}

// ParseIndex parses count consecutive entries from data.
//
// When engine matches the host byte order and data is 4-byte aligned, the entries are
// copied directly from their wire form, which has the same layout as IndexEntry.
func ParseIndex(data []byte, count int, engine endian.EndianEngine) ([]IndexEntry, error) {
	if len(data) != count*IndexEntrySize {
		return nil, fmt.Errorf("%w: %d bytes for %d entries", errs.ErrInvalidIndexSize, len(data), count)
	}

	entries := make([]IndexEntry, count)
	if count == 0 {
		return entries, nil
	}

	if endian.CompareNativeEndian(engine) && uintptr(unsafe.Pointer(&data[0]))%unsafe.Alignof(IndexEntry{}) == 0 {
		copy(entries, unsafe.Slice((*IndexEntry)(unsafe.Pointer(&data[0])), count))
		return entries, nil
	}

	for i := range entries {
		off := i * IndexEntrySize
		entry, err := ParseIndexEntry(data[off:off+IndexEntrySize], engine)
		if err != nil {
			return nil, err
		}
		entries[i] = entry
	}

	return entries, nil
}
