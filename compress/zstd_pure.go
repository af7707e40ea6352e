package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool reuses zstd decoders across frames. klauspost/zstd's
// decoder is explicitly built for this: it allocates nothing once
// warmed up, so pooling it turns per-frame decompression into a
// pool Get/Put instead of a decoder construction.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("blink: zstd decoder pool: %v", err))
		}

		return decoder
	},
}

// zstdEncoderPool is zstdDecoderPool's encode-side counterpart.
var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("blink: zstd encoder pool: %v", err))
		}

		return encoder
	},
}

// Compress zstd-encodes a frame's field bytes using a pooled encoder.
func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	encoder := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(data, nil), nil
}

// Decompress zstd-decodes a frame's field bytes using a pooled decoder.
// A failed decode still returns its decoder to the pool — EncodeAll and
// DecodeAll are stateless per call, so a bad input leaves the decoder
// fit for the next frame.
func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	decoder := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	decompressed, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress frame payload: %w", err)
	}

	return decompressed, nil
}
