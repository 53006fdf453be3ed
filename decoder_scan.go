package snapraw

import "io"

// scanSpan bounds the brute-force signature search. Directories in the
// supported families sit at or very near the start of the file.
const scanSpan = 4096

// decoderScan is the lowest-confidence path, used for extensions no
// other strategy claims: look for a tag-directory signature at offset 0,
// then anywhere in the first few KiB.
type decoderScan struct {
	*streamReader
	opts   Options
	fields *Fields
}

func (e *decoderScan) decode() error {
	span := e.length
	if span > scanSpan {
		span = scanSpan
	}
	if span < 8 {
		return errInvalidFormat
	}

	e.seek(0)
	chunk := make([]byte, span)
	if _, err := io.ReadFull(e.r, chunk); err != nil {
		return errInvalidFormat
	}

	// Offset 0 first; a signature there is a well-formed direct
	// directory and needs no scan.
	base := int64(-1)
	if _, ok := matchSignature(chunk[:4]); ok {
		base = 0
	} else {
		for _, match := range findDirectorySignatures(chunk) {
			base = int64(match.index)
			break
		}
	}
	if base < 0 {
		return errInvalidFormat
	}

	sig := chunk[base : base+4]
	order, _ := matchSignature(sig)
	e.byteOrder = order

	ifd := &ifdDecoder{
		streamReader: e.streamReader,
		opts:         e.opts,
		fields:       e.fields,
		base:         base,
	}
	_, err := ifd.decodeIFDAt("", false)
	return err
}
