package report

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// ZstdBaselineBits returns the size, in bits, of the input compressed as a
// single zstd frame at the best-compression level.  It puts the Huffman
// payload in perspective; it is not part of the encoding.
func ZstdBaselineBits(input []byte) (int, error) {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
	)
	if err != nil {
		return 0, fmt.Errorf("zstd: %w", err)
	}
	defer enc.Close()

	return 8 * len(enc.EncodeAll(input, nil)), nil
}
