package snapraw

import "encoding/binary"

// decoderTIFF handles the RAW families that embed the tag directory
// directly at the start of the file (CR2, NEF, ARW, DNG and friends).
type decoderTIFF struct {
	*streamReader
	opts   Options
	fields *Fields
}

func (e *decoderTIFF) decode() error {
	if !e.inBounds(0, 8) {
		return errInvalidFormat
	}

	byteOrderTag := e.read2()
	switch byteOrderTag {
	case byteOrderBigEndian:
		e.byteOrder = binary.BigEndian
	case byteOrderLittleEndian:
		e.byteOrder = binary.LittleEndian
	default:
		return errInvalidFormat
	}

	if e.read2() != tiffMagic {
		return errInvalidFormat
	}

	ifd := &ifdDecoder{
		streamReader: e.streamReader,
		opts:         e.opts,
		fields:       e.fields,
		base:         0,
	}
	_, err := ifd.decodeIFDAt("", false)
	return err
}
