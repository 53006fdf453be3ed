package snapraw

import (
	"fmt"
)

const (
	byteOrderBigEndian    = 0x4d4d
	byteOrderLittleEndian = 0x4949

	// tiffMagic follows the byte-order mark in every directory header.
	tiffMagic = 42
)

// First-directory offsets outside this range are garbage pointers and
// the candidate directory is rejected before any decode is attempted.
const (
	firstIFDOffsetMin = 8
	firstIFDOffsetMax = 50000
)

// maxTagValueCount caps an entry's declared value count. Counts above it
// come from corrupt slots and would size allocations before any byte of
// the value is read.
const maxTagValueCount = 0x10000

// exifType represents the basic tag directory data types.
type exifType uint16

const (
	exifTypeUnsignedByte  exifType = 1
	exifTypeASCII         exifType = 2
	exifTypeUnsignedShort exifType = 3
	exifTypeUnsignedLong  exifType = 4
	exifTypeUnsignedRat   exifType = 5
	exifTypeUndef         exifType = 7
	exifTypeSignedLong    exifType = 9
	exifTypeSignedRat     exifType = 10
)

// Size in bytes of each type.
var exifTypeSize = map[exifType]uint32{
	exifTypeUnsignedByte:  1,
	exifTypeASCII:         1,
	exifTypeUnsignedShort: 2,
	exifTypeUnsignedLong:  4,
	exifTypeUnsignedRat:   8,
	exifTypeUndef:         1,
	exifTypeSignedLong:    4,
	exifTypeSignedRat:     8,
}

// ifdDecoder walks one tag directory and its immediate children.
// base is the file position all out-of-line value offsets and child
// directory offsets are measured relative to.
type ifdDecoder struct {
	*streamReader
	opts   Options
	fields *Fields
	base   int64
}

// decodeIFD reads the directory at base+offset. Fields are recorded under
// prefix; makerNote selects the vendor override dictionary. depth guards
// child recursion: children of children are not followed, since no known
// format needs it and corrupt files would otherwise chain forever.
func (e *ifdDecoder) decodeIFD(offset int64, prefix string, makerNote bool, depth int) error {
	if !e.inBounds(e.base+offset, 2) {
		e.opts.Warnf("ifd: directory offset %d out of bounds", offset)
		return nil
	}
	e.seek(e.base + offset)

	numEntries, err := e.read2E()
	if err != nil {
		// Truncated directory header; abandon this directory.
		e.opts.Warnf("ifd: truncated directory at offset %d", offset)
		return nil
	}

	if uint32(numEntries) > e.opts.MaxDirEntries {
		// A count this large means the signature matched unrelated bytes.
		// The directory cannot be partially trusted, so it is skipped whole.
		e.opts.Warnf("ifd: entry count %d over ceiling %d, skipping directory", numEntries, e.opts.MaxDirEntries)
		return nil
	}

	for i := 0; i < int(numEntries); i++ {
		if !e.inBounds(e.pos(), 12) {
			e.opts.Warnf("ifd: truncated entry %d of %d", i, numEntries)
			return nil
		}
		if err := e.decodeEntry(prefix, makerNote, depth); err != nil {
			return err
		}
	}

	return nil
}

// An entry is represented in 12 bytes:
//   - 2 bytes for the tag id
//   - 2 bytes for the data type
//   - 4 bytes for the number of data values of the specified type
//   - 4 bytes for the value itself, if it fits, otherwise for a pointer
//     (relative to base) to where the data may be found; for two known
//     tag ids the pointer leads to a child directory instead.
func (e *ifdDecoder) decodeEntry(prefix string, makerNote bool, depth int) error {
	tagID := e.read2()
	typ := exifType(e.read2())
	count := e.read4()

	if tagID == tagExifIFDPointer || tagID == tagSubIFDs {
		childOffset := e.read4()
		if depth > 0 {
			// Deeper pointer chains are not followed.
			return nil
		}
		childPrefix := prefix
		if tagID == tagSubIFDs {
			childPrefix = prefix + "SubIFD_"
		}
		return e.preservePos(func() error {
			return e.decodeIFD(int64(childOffset), childPrefix, false, depth+1)
		})
	}

	if count > maxTagValueCount {
		e.skip(4)
		e.opts.Warnf("ifd: value count %d over ceiling, skipping entry", count)
		return nil
	}

	name := fieldName(tagID, makerNote)
	if name == "" {
		name = fmt.Sprintf("%s0x%x", UnknownPrefix, tagID)
	}
	name = prefix + name

	size, known := exifTypeSize[typ]
	if !known {
		// Unsupported type code: best-effort unsigned literal from the slot.
		e.fields.Add(name, e.read4())
		return nil
	}

	valLen := size * count

	if valLen > e.opts.LimitTagSize {
		e.skip(4)
		e.fields.Add(name, fmt.Sprintf("(Binary data %d bytes)", valLen))
		return nil
	}

	// Whether the slot holds the literal value or a pointer is decided
	// solely by whether the value fits in the 4-byte slot.
	if valLen <= 4 {
		val := e.convertValues(typ, count)
		if padding := 4 - valLen; padding > 0 {
			e.skip(int64(padding))
		}
		e.fields.Add(name, val)
		return nil
	}

	valueOffset := e.read4()
	absolute := e.base + int64(valueOffset)
	if !e.inBounds(absolute, int64(valLen)) {
		e.opts.Warnf("ifd: value offset %d for %s out of bounds", valueOffset, name)
		return nil
	}

	var val any
	err := e.preservePos(func() error {
		e.seek(absolute)
		val = e.convertValues(typ, count)
		return nil
	})
	if err != nil {
		e.fields.Add(name, fmt.Sprintf("<parse error: %v>", err))
		return nil
	}
	e.fields.Add(name, val)
	return nil
}

// convertValues materializes count values of the given type from the
// current cursor position, in the directory's byte order.
func (e *ifdDecoder) convertValues(typ exifType, count uint32) any {
	if count == 0 {
		return ""
	}

	switch typ {
	case exifTypeASCII:
		b := e.readBytesVolatile(int(count))
		return decodeText(b)
	case exifTypeUnsignedByte, exifTypeUndef:
		if count == 1 {
			return uint32(e.read1())
		}
		b := make([]byte, count)
		e.readBytes(b)
		return trimBytesNulls(b)
	case exifTypeUnsignedShort:
		if count == 1 {
			return uint32(e.read2())
		}
		vals := make([]uint32, count)
		for i := range vals {
			vals[i] = uint32(e.read2())
		}
		return vals
	case exifTypeUnsignedLong:
		if count == 1 {
			return e.read4()
		}
		vals := make([]uint32, count)
		for i := range vals {
			vals[i] = e.read4()
		}
		return vals
	case exifTypeSignedLong:
		if count == 1 {
			return e.read4s()
		}
		vals := make([]int32, count)
		for i := range vals {
			vals[i] = e.read4s()
		}
		return vals
	case exifTypeUnsignedRat:
		if count == 1 {
			return e.readRational()
		}
		vals := make([]float64, count)
		for i := range vals {
			vals[i] = e.readRational()
		}
		return vals
	case exifTypeSignedRat:
		if count == 1 {
			return e.readSignedRational()
		}
		vals := make([]float64, count)
		for i := range vals {
			vals[i] = e.readSignedRational()
		}
		return vals
	default:
		return e.read4()
	}
}

// A zero denominator decodes to zero rather than failing; cameras write
// 0/0 for fields that do not apply to the shot.
func (e *ifdDecoder) readRational() float64 {
	num, den := e.read4(), e.read4()
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func (e *ifdDecoder) readSignedRational() float64 {
	num, den := e.read4s(), e.read4s()
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

// decodeIFDAt validates a directory header at base (the 4-byte byte-order
// signature plus first-directory offset) and decodes the directory it
// points to. Returns the number of fields contributed.
func (e *ifdDecoder) decodeIFDAt(prefix string, makerNote bool) (int, error) {
	before := e.fields.Len()

	if !e.inBounds(e.base, 8) {
		return 0, nil
	}
	e.seek(e.base + 4)
	ifdOffset := e.read4()

	if ifdOffset < firstIFDOffsetMin || ifdOffset > firstIFDOffsetMax {
		e.opts.Warnf("ifd: implausible first directory offset %d", ifdOffset)
		return 0, nil
	}

	if err := e.decodeIFD(int64(ifdOffset), prefix, makerNote, 0); err != nil {
		return e.fields.Len() - before, err
	}
	return e.fields.Len() - before, nil
}
