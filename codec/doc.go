// Package codec provides the framed codec frontend: the outermost
// layer that turns a compiled schema (packages schema, compile,
// dispatch) into something a caller can actually hand a Go value to
// and get bytes back, or hand bytes to and get a Go value back.
//
// # Basic usage
//
//	instrs, err := compile.Compile(s, b)
//	reg := dispatch.NewRegistry(instrs)
//	c, err := codec.New(reg, b)
//
//	var buf bytes.Buffer
//	if err := c.Encode(&buf, myVehicle); err != nil {
//	    // ...
//	}
//
//	got, err := c.Decode(&buf)
//
// # Framing
//
// Each message is one size-prefixed frame: an unsigned VLC size,
// followed by an unsigned VLC group ID, followed by the group's
// fields in flattened declaration order. Encode reserves the size
// slot up front and back-patches it once the payload length is known
// (internal/buffer.WriteSized); decode reads the size, slices off
// exactly that many bytes, and reads the group ID and fields from
// that bounded region. Trailing bytes left unread within the frame
// are skipped for forward compatibility; reading past the frame's
// declared size is a FrameOverrun fault.
//
// # Compression
//
// Frame compression (package compress) is an optional, symmetric
// configuration agreed out of band between encoder and decoder via
// WithFrameCompression or WithFrameCompressionType — there is no
// on-wire negotiation bit, since the base protocol has none. Leaving
// it unset keeps the emitted bytes identical to the uncompressed wire
// format.
package codec
