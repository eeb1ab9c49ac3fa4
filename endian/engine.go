// Package endian provides the byte order engine used by the binary signal codec.
//
// The ".bin" layout mirrors the .NET BinaryWriter, which is little-endian on every
// platform, so GetLittleEndianEngine is the engine the codec uses by default. The
// big-endian engine exists for tests and byte-swapped tooling.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	w := encoding.NewBinaryWriter(engine)
//
// # Thread Safety
//
// The returned EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsLittleEndian reports whether engine writes the least significant byte first.
func IsLittleEndian(engine EndianEngine) bool {
	var b [2]byte
	engine.PutUint16(b[:], 0x0102)

	return b[0] == 0x02
}
