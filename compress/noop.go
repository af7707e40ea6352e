package compress

// NoOpCompressor passes a frame's field bytes through unchanged. It is
// the zero value of frame compression: a Codec configured with it
// produces output byte-identical to the uncompressed wire format,
// useful as the default when a schema or connection hasn't opted into
// a real algorithm, and as a baseline when benchmarking the others.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor returns a compressor that does no compression.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data unchanged. The returned slice aliases data;
// callers must not mutate data afterward if they still hold the result.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged, mirroring Compress.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
