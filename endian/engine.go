// Package endian provides byte order utilities for binary encoding and
// decoding, extending encoding/binary by combining ByteOrder and
// AppendByteOrder into a single interface.
//
// # Basic Usage
//
// Blink framing is little-endian throughout the VLC forms and big-endian
// for IEEE-754 float bytes. Package wire pins the engine each primitive
// needs rather than deferring to host byte order:
//
//	import "github.com/mbrannstrom/blinkcodec/endian"
//
//	engine := endian.GetBigEndianEngine()
//	engine.PutUint32(buf, math.Float32bits(v))
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine. Blink's VLC integer
// forms are little-endian, but §4 pins float framing to big-endian
// specifically, so this is the only engine constructor package wire needs.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
