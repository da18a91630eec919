// Package endian provides byte order engines for blockpack container headers.
//
// Block payloads are always packed least-significant-bit first in a little-endian byte
// stream. Only the fixed-width fields of the posting list header and skip index follow
// the byte order chosen at encode time, which is recorded in the header flag.
//
// # Basic Usage
//
// Little-endian is the default and the natural choice on most hosts:
//
//	engine := endian.GetLittleEndianEngine()
//	engine.PutUint32(buf, count)
//
// NativeEngine returns the host byte order, detected via golang.org/x/sys/cpu.
// CompareNativeEndian lets decoders pick a copy path when the stored byte order
// matches the host.
//
// # Thread Safety
//
// All functions are safe for concurrent use. Engines are immutable and stateless.
package endian

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary into a
// single interface.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// NativeEngine returns the engine matching the host byte order.
func NativeEngine() EndianEngine {
	if cpu.IsBigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// CompareNativeEndian reports whether engine matches the host byte order, in which
// case fixed-width fields can be copied without byte swapping.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == NativeEngine()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
