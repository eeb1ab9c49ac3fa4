package compress

// ZstdCompressor provides Zstandard compression for ".zst" files.
//
// The pure-Go implementation from klauspost/compress is used by default. Building
// with cgo and the cgo_zstd tag switches to the gozstd bindings of the reference C
// library; both produce standard zstd frames, so files are interchangeable.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
