// Package codec reads and writes luxsig signal files.
//
// ReadFile and WriteFile pick the format from the file extension:
//
//	.elux     ErgoLux text export: timestamps, sensor count (six fixed columns are implied)
//	.sig      legacy text export: counts and frequency only
//	.txt      SignalAnalysis text export: timestamps, statistics and a time column
//	.bin      SignalAnalysis binary export
//	.results  analysis report, write-only
//
// A trailing ".zst", ".s2" or ".lz4" suffix compresses the file with the matching
// codec from package compress.
//
// Text files are written as UTF-8 with a byte-order mark and CRLF line endings,
// formatted with the culture set by WithCulture. Readers take the culture from the
// format tag on the first line, so the same options read files of any culture.
//
// Example:
//
//	res, err := codec.ReadFile(ctx, "capture.elux", codec.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	err = codec.WriteFile(ctx, "capture.txt", res.Dataset,
//	    codec.WithCulture("es-ES"),
//	    codec.WithStats(stats),
//	    codec.WithRange(100, 600),
//	)
package codec
