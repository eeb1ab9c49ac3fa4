package format

import (
	"path/filepath"
	"strings"
)

type (
	FileFormat      uint8
	CompressionType uint8
)

const (
	Unsupported FileFormat = 0x0 // Unsupported represents an extension no reader handles.
	ELux        FileFormat = 0x1 // ELux represents the ErgoLux ".elux" text format.
	Legacy      FileFormat = 0x2 // Legacy represents the SignalAnalysis ".sig" text format.
	PlainText   FileFormat = 0x3 // PlainText represents the ".txt" text format with stats.
	Binary      FileFormat = 0x4 // Binary represents the ".bin" BinaryWriter format.
	Results     FileFormat = 0x5 // Results represents the write-only ".results" report.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 frame compression.
)

func (f FileFormat) String() string {
	switch f {
	case ELux:
		return "ELux"
	case Legacy:
		return "Legacy"
	case PlainText:
		return "PlainText"
	case Binary:
		return "Binary"
	case Results:
		return "Results"
	default:
		return "Unsupported"
	}
}

// Extension returns the canonical file extension of f, including the leading dot.
func (f FileFormat) Extension() string {
	switch f {
	case ELux:
		return ".elux"
	case Legacy:
		return ".sig"
	case PlainText:
		return ".txt"
	case Binary:
		return ".bin"
	case Results:
		return ".results"
	default:
		return ""
	}
}

// IsText reports whether f is one of the line-oriented text formats.
func (f FileFormat) IsText() bool {
	return f == ELux || f == Legacy || f == PlainText
}

// HasTimestamps reports whether f carries start/end timestamps and the duration line.
func (f FileFormat) HasTimestamps() bool {
	return f == ELux || f == PlainText || f == Binary
}

// HasStats reports whether f carries the ten-field statistics block.
func (f FileFormat) HasStats() bool {
	return f == PlainText || f == Binary
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Extension returns the file suffix of c, or "" for CompressionNone.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// ParseCompression maps a compression name ("none", "zstd", "s2", "lz4"), case-insensitively.
func ParseCompression(name string) (CompressionType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, true
	case "zstd", "zst":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

// FromExtension maps a file extension to the format its reader expects.
//
// Matching is case-insensitive and the leading dot is optional. ".results" and
// unknown extensions map to Unsupported since no reader exists for them.
func FromExtension(ext string) FileFormat {
	switch normalize(ext) {
	case ".elux":
		return ELux
	case ".sig":
		return Legacy
	case ".txt":
		return PlainText
	case ".bin":
		return Binary
	default:
		return Unsupported
	}
}

// ForWrite maps a file extension to the format a writer produces.
// ".results" maps to Results; unknown extensions fall back to PlainText.
func ForWrite(ext string) FileFormat {
	if normalize(ext) == ".results" {
		return Results
	}
	if f := FromExtension(ext); f != Unsupported {
		return f
	}

	return PlainText
}

// SplitPath splits a trailing compression suffix from path.
//
// "data.txt.zst" yields ("data.txt", CompressionZstd); a path without a known
// suffix yields (path, CompressionNone).
func SplitPath(path string) (string, CompressionType) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, c := range []CompressionType{CompressionZstd, CompressionS2, CompressionLZ4} {
		if ext == c.Extension() {
			return strings.TrimSuffix(path, path[len(path)-len(ext):]), c
		}
	}

	return path, CompressionNone
}

// Detect returns the read format, the write format and the compression of path.
func Detect(path string) (read FileFormat, write FileFormat, compression CompressionType) {
	base, compression := SplitPath(path)
	ext := filepath.Ext(base)

	return FromExtension(ext), ForWrite(ext), compression
}

func normalize(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return ext
}
