// Package section defines the fixed-size binary structures of the posting list container.
//
// # Container Layout
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                                 │
//	│  - Flag (4 bytes): options, compression, block size      │
//	│  - Count, BlockCount (8 bytes)                           │
//	│  - IndexOffset, PayloadOffset, PayloadLength (12 bytes)  │
//	│  - Checksum (8 bytes): xxHash64 of index + payload       │
//	├──────────────────────────────────────────────────────────┤
//	│ Skip Index (BlockCount × 8 bytes)                        │
//	│  - LastValue, Offset per full block                      │
//	├──────────────────────────────────────────────────────────┤
//	│ Stored Payload (variable, optionally compressed)         │
//	│  - BlockCount compressed blocks, back to back            │
//	│  - Count % BlockSize uvarints (tail)                     │
//	└──────────────────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes  | Field          | Type   | Description
//	-------|----------------|--------|------------------------------------------
//	0-1    | Options        | uint16 | ordering, endianness, magic (always LE)
//	2      | Compression    | uint8  | format.CompressionType of the payload
//	3      | BlockSize      | uint8  | values per block, must be block.BlockSize
//	4-7    | Count          | uint32 | number of values
//	8-11   | BlockCount     | uint32 | number of full blocks (Count / BlockSize)
//	12-15  | IndexOffset    | uint32 | always 32
//	16-19  | PayloadOffset  | uint32 | 32 + BlockCount*8
//	20-23  | PayloadLength  | uint32 | uncompressed payload length
//	24-31  | Checksum       | uint64 | xxHash64 of skip index + stored payload
//
// Bytes 4-31 and all index entries use the byte order selected by the endianness bit.
package section
