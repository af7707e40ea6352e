// Package compress provides optional frame-payload compression for the
// codec frontend (package codec). It is not part of the base wire
// format: a frame's payload bytes are opaque to compression unless a
// codec.Codec is explicitly configured with one, in which case the
// whole payload region is compressed as a unit before the sized frame
// is written, and decompressed before field decoding begins.
//
// # Architecture
//
// Three small interfaces, composed from the same Compress/Decompress
// shape:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// # Supported algorithms
//
//   - None (CompressionNone): passes data through unchanged.
//   - Zstandard (CompressionZstd): best ratio, moderate speed.
//   - S2 (CompressionS2): a Snappy-family codec; fast with a
//     reasonable ratio.
//   - LZ4 (CompressionLZ4): very fast decompression, moderate ratio.
//
// CreateCodec and GetCodec both resolve a CompressionType to its
// Codec; codec.WithFrameCompressionType calls GetCodec so a caller can
// select an algorithm by CompressionType (e.g. from a config value)
// instead of constructing a compressor directly. Since encoded
// messages are typically a few hundred bytes to a few KiB, none of
// the codecs here need large-block tuning. Zstd pools its encoders and
// decoders and LZ4 pools its block compressors across calls; S2 and
// None keep no pooled state.
package compress
