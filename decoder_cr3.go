package snapraw

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/google/uuid"
)

type fourCC [4]byte

// Box and brand types used in the vendor ISO-BMFF container.
var (
	fccFtyp = fourCC{'f', 't', 'y', 'p'}
	fccUUID = fourCC{'u', 'u', 'i', 'd'}
	fccMoov = fourCC{'m', 'o', 'o', 'v'}
	fccTrak = fourCC{'t', 'r', 'a', 'k'}
	fccMdia = fourCC{'m', 'd', 'i', 'a'}
	fccMinf = fourCC{'m', 'i', 'n', 'f'}
	fccStbl = fourCC{'s', 't', 'b', 'l'}

	brandCRX = []byte("crx")
)

// canonMetadataUUID identifies the uuid box that carries the vendor
// metadata block (CMT1).
var canonMetadataUUID = uuid.MustParse("85c0b687-820f-11e0-8111-f4ce462b6a48")

// Tag-directory signatures: byte-order mark plus the 42 magic.
var (
	sigLittleEndian = []byte{0x49, 0x49, 0x2a, 0x00}
	sigBigEndian    = []byte{0x4d, 0x4d, 0x00, 0x2a}
)

// canonMakerNoteOrdinal is the embedded directory whose tag ids follow
// the maker-note dictionary instead of the standard one.
const canonMakerNoteOrdinal = 4

// isGroupingBox reports whether the walker descends into the box payload
// instead of skipping over it.
func isGroupingBox(typ fourCC) bool {
	switch typ {
	case fccMoov, fccTrak, fccMdia, fccMinf, fccStbl:
		return true
	}
	return false
}

type decoderCR3 struct {
	*streamReader
	opts   Options
	fields *Fields
}

// decode walks the container's boxes looking for the vendor metadata
// block and decodes every tag directory embedded in it. The walk stops
// at the first malformed box header, keeping whatever was assembled.
func (e *decoderCR3) decode() error {
	// The container must open with an ftyp box carrying the crx brand.
	ftypStart := e.pos()
	if !e.inBounds(ftypStart, 12) {
		return errInvalidFormat
	}
	ftypSize := uint64(e.read4())
	var ftypType fourCC
	e.readBytes(ftypType[:])
	brand := make([]byte, 4)
	e.readBytes(brand)
	if ftypType != fccFtyp || !bytes.Contains(brand, brandCRX) {
		return errInvalidFormat
	}
	if ftypSize == 0 || ftypSize > uint64(e.length) {
		return errInvalidFormat
	}
	e.seek(ftypStart + int64(ftypSize))

	for {
		// The directory scan switches the reader to each directory's
		// declared order; box headers are always big-endian.
		e.byteOrder = binary.BigEndian

		boxStart := e.pos()
		if !e.inBounds(boxStart, 8) {
			return nil
		}

		size := uint64(e.read4())
		var boxType fourCC
		e.readBytes(boxType[:])

		headerLen := int64(8)
		if size == 1 {
			// Extended size: next 8 bytes hold the actual size.
			if !e.inBounds(boxStart+8, 8) {
				return nil
			}
			size = e.read8()
			headerLen = 16
		}

		// A zero or over-long size means a malformed or adversarial
		// stream; the walk ends and partial results are kept.
		if size == 0 || size > uint64(e.length-boxStart) {
			return nil
		}

		if boxType == fccUUID && e.inBounds(boxStart+headerLen, 16) {
			var id [16]byte
			e.readBytes(id[:])
			boxUUID, err := uuid.FromBytes(id[:])
			if err == nil && boxUUID == canonMetadataUUID {
				payloadStart := boxStart + headerLen + 16
				payloadEnd := boxStart + int64(size)
				if err := e.scanMetadataBlock(payloadStart, payloadEnd); err != nil {
					return err
				}
				// Full extraction returns all fields from the first
				// metadata box that yields any.
				if e.fields.Len() > 0 {
					return nil
				}
			}
		}

		if isGroupingBox(boxType) {
			e.seek(boxStart + headerLen)
		} else {
			e.seek(boxStart + int64(size))
		}
	}
}

// scanMetadataBlock finds every embedded tag-directory signature within
// a bounded window of the metadata block and decodes each candidate.
// Ordinal position, not tag content, selects the dictionary: the vendor
// writes several independent directories back to back, and one known
// ordinal holds maker-note tags.
func (e *decoderCR3) scanMetadataBlock(start, end int64) error {
	window := int64(e.opts.ScanWindow)
	if blockLen := end - start; blockLen < window {
		window = blockLen
	}
	if window < int64(len(sigLittleEndian)) {
		return nil
	}

	e.seek(start)
	chunk := make([]byte, window)
	if _, err := io.ReadFull(e.r, chunk); err != nil {
		// Truncated metadata block; nothing to scan.
		e.opts.Warnf("cr3: truncated metadata block: %v", err)
		return nil
	}

	for ordinal, match := range findDirectorySignatures(chunk) {
		base := start + int64(match.index)
		if match.bigEndian {
			e.byteOrder = binary.BigEndian
		} else {
			e.byteOrder = binary.LittleEndian
		}

		ifd := &ifdDecoder{
			streamReader: e.streamReader,
			opts:         e.opts,
			fields:       e.fields,
			base:         base,
		}
		if _, err := ifd.decodeIFDAt(DirPrefix(ordinal), ordinal == canonMakerNoteOrdinal); err != nil {
			return err
		}
	}

	return nil
}

type signatureMatch struct {
	index     int
	bigEndian bool
}

// findDirectorySignatures returns every little- or big-endian directory
// signature in b, ordered by position. The position order defines each
// directory's ordinal.
func findDirectorySignatures(b []byte) []signatureMatch {
	var matches []signatureMatch
	for _, sig := range [][]byte{sigLittleEndian, sigBigEndian} {
		from := 0
		for {
			i := bytes.Index(b[from:], sig)
			if i < 0 {
				break
			}
			matches = append(matches, signatureMatch{
				index:     from + i,
				bigEndian: sig[0] == 0x4d,
			})
			from += i + 1
		}
	}
	// Merge the two signature passes back into position order.
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].index < matches[j-1].index; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}
	return matches
}
