package codec

import (
	"fmt"

	"github.com/mbrannstrom/blinkcodec/compress"
	"github.com/mbrannstrom/blinkcodec/internal/buffer"
	"github.com/mbrannstrom/blinkcodec/internal/options"
)

// Option configures a Codec at construction time: private setters on
// the target, wrapped by public With* constructors. Most wrap
// options.NoError since their setter can't fail validation;
// WithFrameCompressionType wraps options.New since resolving an
// unknown CompressionType is an error.
type Option = options.Option[*Codec]

// WithFrameCompression sets the codec's frame payload compression.
// The same codec (or an equivalent one for the same CompressionType)
// must be configured on both the encoding and decoding side, since the
// wire format carries no compression-negotiation bit of its own. The
// zero value (no option given) performs no compression, leaving the
// emitted frame identical to the base wire format.
func WithFrameCompression(c compress.Codec) Option {
	return options.NoError(func(codec *Codec) {
		codec.compression = c
	})
}

// WithFrameCompressionType resolves t to one of the package's built-in
// compressors via compress.GetCodec and configures it the same way
// WithFrameCompression does. Prefer this over hand-constructing a
// compress.Codec when the algorithm is chosen at runtime, e.g. from a
// config value or CLI flag that names a CompressionType rather than
// wiring up a concrete compressor.
func WithFrameCompressionType(t compress.CompressionType) Option {
	return options.New(func(codec *Codec) error {
		c, err := compress.GetCodec(t)
		if err != nil {
			return fmt.Errorf("codec: %w", err)
		}
		codec.compression = c

		return nil
	})
}

// WithBufferPool overrides the pooled buffer source used to stage
// each frame's bytes before they are streamed to the sink. Codecs
// constructed without this option get their own private pool, sized
// the same as the package-level default in internal/buffer.
func WithBufferPool(pool *buffer.Pool) Option {
	return options.NoError(func(codec *Codec) {
		codec.pool = pool
	})
}
