// Package wire implements the Blink binary protocol's primitive
// encodings: variable-length coded (VLC) integers, booleans, floats,
// decimals, big integers, strings, binaries, timestamps and enum
// values, all with explicit null support.
//
// Every multibyte primitive is little-endian except IEEE-754 floats,
// which are framed big-endian per the wire format (§4.A). Nullable
// values use the single byte 0xC0 to denote null; this is also the
// zero-length form of the length-prefixed VLC frame.
//
// Encoders append to an *buffer.Buffer; decoders read from a []byte
// slice carrying an explicit cursor, keeping the append-only write
// path and the bounded-cursor read path as separate concerns.
package wire
