package snapraw

import (
	"bytes"
	"encoding/binary"
)

// Fuji RAF files carry their tag directory inside an embedded preview
// JPEG. A fixed header field points at the preview; the directory base
// is a fixed distance past the JPEG's Exif marker sequence.
const (
	rafPreviewPointerOffset = 84

	// SOI marker, APP1 marker, 2-byte segment length, "Exif\0\0".
	rafExifHeaderLen = 12
)

var (
	jpegSOIAPP1   = []byte{0xff, 0xd8, 0xff, 0xe1}
	jpegExifLabel = []byte("Exif\x00\x00")
)

type decoderRAF struct {
	*streamReader
	opts   Options
	fields *Fields
}

func (e *decoderRAF) decode() error {
	e.byteOrder = binary.BigEndian

	if !e.inBounds(rafPreviewPointerOffset, 4) {
		return errInvalidFormat
	}
	e.seek(rafPreviewPointerOffset)
	previewOffset := int64(e.read4())

	if !e.inBounds(previewOffset, rafExifHeaderLen+8) {
		return errInvalidFormat
	}
	e.seek(previewOffset)
	hdr, err := e.readBytesVolatileE(rafExifHeaderLen)
	if err != nil {
		return errInvalidFormat
	}
	if !bytes.Equal(hdr[:4], jpegSOIAPP1) || !bytes.Equal(hdr[6:12], jpegExifLabel) {
		return errInvalidFormat
	}

	base := previewOffset + rafExifHeaderLen

	e.seek(base)
	sig, err := e.readBytesVolatileE(4)
	if err != nil {
		return errInvalidFormat
	}
	order, ok := matchSignature(sig)
	if !ok {
		return errInvalidFormat
	}
	e.byteOrder = order

	ifd := &ifdDecoder{
		streamReader: e.streamReader,
		opts:         e.opts,
		fields:       e.fields,
		base:         base,
	}
	_, err = ifd.decodeIFDAt("", false)
	return err
}

// matchSignature reports the byte order declared by a 4-byte tag
// directory signature.
func matchSignature(b []byte) (binary.ByteOrder, bool) {
	switch {
	case bytes.Equal(b, sigLittleEndian):
		return binary.LittleEndian, true
	case bytes.Equal(b, sigBigEndian):
		return binary.BigEndian, true
	}
	return nil, false
}
