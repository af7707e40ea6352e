package codec

import "io"

// Source is the byte source contract a decoder reads a stream of
// frames from. It composes two stdlib interfaces rather than
// inventing a bespoke one, the same way package endian composes
// binary.ByteOrder and binary.AppendByteOrder into EndianEngine.
type Source interface {
	io.Reader
	io.ByteReader
}

// Sink is the byte sink contract an encoder flushes a frame to.
type Sink interface {
	io.Writer
}
