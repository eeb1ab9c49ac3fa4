package compress

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/luxsig/format"
)

// MaxDecompressedSize is the largest output Decompress produces, in bytes.
const MaxDecompressedSize = 1 << 30

// ErrSizeExceeded is returned when decompressed data would exceed its limit.
var ErrSizeExceeded = errors.New("decompressed size exceeds limit")

// Compressor compresses a whole encoded file.
//
// The returned slice is owned by the caller; the input is not modified.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a whole file compressed by the matching Compressor.
//
// It returns an error if the data is corrupted or was produced by another algorithm.
// Implementations are safe for concurrent use.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// limitedDecompressor is implemented by the codecs that inflate their input.
type limitedDecompressor interface {
	decompress(data []byte, limit int64) ([]byte, error)
}

// readLimited reads r to the end, failing with ErrSizeExceeded once more than
// limit bytes are produced.
func readLimited(r io.Reader, sizeHint int, limit int64) ([]byte, error) {
	var out bytes.Buffer
	out.Grow(int(min(int64(sizeHint), limit)))

	n, err := io.Copy(&out, io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if n > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrSizeExceeded, limit)
	}

	return out.Bytes(), nil
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one compression of a file, for logging.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64
}

// NewCompressionStats records the sizes of one compression.
func NewCompressionStats(algorithm format.CompressionType, original, compressed int) CompressionStats {
	return CompressionStats{
		Algorithm:      algorithm,
		OriginalSize:   int64(original),
		CompressedSize: int64(compressed),
	}
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression; 0.0 is returned for an
// empty original.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec is a factory function that creates a Codec based on the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (None, Zstd, S2, or LZ4)
//   - target: Description of target usage (for error messages)
//
// Returns:
//   - Codec: Compressor instance for the specified type
//   - error: Invalid compression type error
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// ForPath returns the codec selected by the compression suffix of path, and path
// without that suffix. A path without a known suffix gets the no-op codec.
func ForPath(path string) (Codec, format.CompressionType, string) {
	base, compression := format.SplitPath(path)

	return builtinCodecs[compression], compression, base
}
