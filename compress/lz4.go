package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool reuses lz4.Compressor instances across frames: the
// compressor holds an internal hash table sized for its last input,
// and rebuilding that table per frame would dominate the cost of
// compressing a single small field region.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses a frame's field bytes with LZ4 block
// compression: the fastest codec in this package, trading away some
// compression ratio for it.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor returns an LZ4 compressor with the package defaults.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress LZ4-encodes data using a pooled block compressor.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dstSize := lz4.CompressBlockBound(len(data))
	dst := make([]byte, dstSize)

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress LZ4-decodes data. Block LZ4 carries no decompressed-size
// header, so the destination buffer is grown geometrically until the
// library stops reporting a short buffer, capped at maxDecompressSize
// to bound memory use against corrupted or adversarial input.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	const maxDecompressSize = 128 * 1024 * 1024

	for bufSize := len(data) * 4; bufSize <= maxDecompressSize; bufSize *= 2 {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(data, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
