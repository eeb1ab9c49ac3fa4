// Package encoding provides the low-level codecs of luxsig files.
//
// # Text Bodies
//
// The text formats (ELux, Legacy and PlainText) end with a tab-separated numeric
// body: one line per sample index, one column per series, optionally preceded by a
// timestamp column. BodyDecoder parses such a body with the number grammar of the
// file culture and BodyEncoder renders one with the active culture:
//
//	lines := encoding.NewLineReader(f)
//	// ... header lines consumed from lines ...
//	dec := encoding.NewBodyDecoder(lines, fileCulture, true)
//	rows, err := dec.Fill(dataset.Series)
//
//	enc, err := encoding.NewBodyEncoder(c, "0.##",
//	    encoding.WithTimestamps(start, 10, c.FullDateTimePattern()))
//	err = enc.Encode(buf, dataset.Series)
//
// # Binary Primitives
//
// The ".bin" format is laid out by the .NET BinaryWriter: little-endian fixed-width
// numbers, UTF-8 strings prefixed with a 7-bit encoded length, and date-times stored
// as 100ns ticks since 0001-01-01. BinaryWriter and BinaryReader implement exactly
// these primitives; the field order lives in the section package.
//
//	w := encoding.NewBinaryWriter(endian.GetLittleEndianEngine())
//	defer w.Finish()
//	w.WriteString("SignalAnalysis data (en-US)")
//	w.WriteDateTime(start)
//
//	r := encoding.NewBinaryReader(data, endian.GetLittleEndianEngine())
//	tag, err := r.ReadString()
//
// BinaryReader reports io.EOF when the data ends exactly at a field boundary and
// io.ErrUnexpectedEOF when it ends inside a field; IsEndOfData matches both.
package encoding
