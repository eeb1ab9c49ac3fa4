// Package compress provides the optional whole-file compression of luxsig files.
//
// Any file path may carry a compression suffix after its format extension, e.g.
// "capture.txt.zst" or "capture.bin.lz4". The codec package encodes the file in
// memory, compresses the result with the Codec selected by the suffix and writes it
// in one piece; reading reverses the steps before the format reader sees the bytes.
//
// # Supported Algorithms
//
//	suffix  type                    implementation
//	(none)  format.CompressionNone  NoOpCompressor
//	.zst    format.CompressionZstd  ZstdCompressor (klauspost/compress, or gozstd with cgo_zstd)
//	.s2     format.CompressionS2    S2Compressor (klauspost/compress/s2)
//	.lz4    format.CompressionLZ4   LZ4Compressor (pierrec/lz4 frame format)
//
// # Basic Usage
//
//	codec, compression, base := compress.ForPath("capture.txt.zst")
//	// base == "capture.txt", compression == format.CompressionZstd
//	packed, err := codec.Compress(encoded)
//
// # Thread Safety
//
// All codecs are stateless values backed by sync.Pool where the underlying library
// benefits from reuse; they are safe for concurrent use.
package compress
