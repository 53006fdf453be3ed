// Package snapraw extracts capture metadata (camera and lens attributes,
// exposure settings, capture date) embedded inside proprietary camera RAW
// files, without any vendor SDK.
package snapraw

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format selects the top-level strategy that reaches a file's tag
// directory. The set of supported RAW families is fixed.
type Format int

const (
	// FormatUnknown falls back to a brute-force signature scan.
	FormatUnknown Format = iota
	// FormatCR3 is the vendor ISO-BMFF container.
	FormatCR3
	// FormatTIFF covers the families with a tag directory at file start.
	FormatTIFF
	// FormatRAF stores the directory inside an embedded preview image.
	FormatRAF
)

func (f Format) String() string {
	switch f {
	case FormatCR3:
		return "CR3"
	case FormatTIFF:
		return "TIFF"
	case FormatRAF:
		return "RAF"
	default:
		return "Unknown"
	}
}

// Extensions of the RAW families that embed the tag directory directly
// at the start of the file.
var tiffExtensions = map[string]bool{
	".cr2": true,
	".nef": true, ".nrw": true,
	".arw": true, ".srf": true, ".sr2": true,
	".dng": true,
	".orf": true,
	".rw2": true,
	".iiq": true,
	".pef": true, ".ptx": true,
	".3fr": true, ".fff": true,
	".tif": true, ".tiff": true,
}

// FormatFromPath selects the decode strategy by file extension alone;
// file content is never inspected for dispatch.
func FormatFromPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ext == ".cr3":
		return FormatCR3
	case ext == ".raf":
		return FormatRAF
	case tiffExtensions[ext]:
		return FormatTIFF
	default:
		return FormatUnknown
	}
}

const (
	// defaultScanWindow bounds the signature scan inside a vendor
	// metadata block. Large enough to cover every directory copy seen
	// in practice, small enough to bound work on corrupt input.
	defaultScanWindow = 200 * 1024

	// defaultMaxDirEntries is the sanity ceiling on a directory's
	// declared entry count.
	defaultMaxDirEntries = 200

	// defaultLimitTagSize is the maximum size in bytes of a tag value
	// to materialize.
	defaultLimitTagSize = 10000
)

// Options contains the options for the Decode function.
type Options struct {
	// The Reader (typically a *os.File) to read metadata from.
	R io.ReadSeeker

	// The format family of R, normally from FormatFromPath.
	Format Format

	// ScanWindow is the number of bytes of a vendor metadata block
	// searched for embedded directory signatures.
	// Default value is 200 KiB.
	ScanWindow int

	// MaxDirEntries is the directory entry-count ceiling. Directories
	// declaring more entries are skipped whole.
	// Default value is 200.
	MaxDirEntries uint32

	// LimitTagSize is the maximum size in bytes of a tag value to read.
	// Larger values are recorded as a size placeholder.
	// Default value is 10000.
	LimitTagSize uint32

	// Warnf will be called for each recoverable decode problem.
	Warnf func(string, ...any)
}

func (o *Options) applyDefaults() error {
	if o.R == nil {
		return fmt.Errorf("no reader provided")
	}
	if o.ScanWindow == 0 {
		o.ScanWindow = defaultScanWindow
	}
	if o.MaxDirEntries == 0 {
		o.MaxDirEntries = defaultMaxDirEntries
	}
	if o.LimitTagSize == 0 {
		o.LimitTagSize = defaultLimitTagSize
	}
	if o.Warnf == nil {
		o.Warnf = func(string, ...any) {}
	}
	return nil
}

type decoder interface {
	decode() error
}

// Decode reads every decodable tag directory from r and returns the
// merged field mapping. ErrNoMetadata is returned when all strategies
// are exhausted without a single field; partial results survive
// container corruption.
func Decode(opts Options) (fields *Fields, err error) {
	var sr *streamReader

	errFinal := func(err2 error) error {
		if err2 == nil && sr != nil {
			err2 = sr.readErr
		}
		if err2 == nil {
			return nil
		}
		if err2 == errStop || err2 == io.EOF {
			return nil
		}
		if isInvalidFormatErrorCandidate(err2) {
			err2 = newInvalidFormatError(err2)
		}
		return err2
	}

	defer func() {
		err = errFinal(err)
		if err == nil && fields.Len() == 0 {
			err = ErrNoMetadata
		}
	}()

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if errp, ok := r.(error); ok {
			if err == nil {
				err = errp
			}
			return
		}
		err = fmt.Errorf("unknown panic: %v", r)
	}()

	fields = &Fields{}

	if err := opts.applyDefaults(); err != nil {
		return fields, err
	}

	sr, err = newStreamReader(opts.R)
	if err != nil {
		return fields, err
	}

	var dec decoder
	switch opts.Format {
	case FormatCR3:
		dec = &decoderCR3{streamReader: sr, opts: opts, fields: fields}
	case FormatTIFF:
		dec = &decoderTIFF{streamReader: sr, opts: opts, fields: fields}
	case FormatRAF:
		dec = &decoderRAF{streamReader: sr, opts: opts, fields: fields}
	default:
		dec = &decoderScan{streamReader: sr, opts: opts, fields: fields}
	}

	return fields, dec.decode()
}

// DecodeFile opens path read-only and decodes it, selecting the
// strategy from the file extension.
func DecodeFile(path string, opts Options) (*Fields, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	opts.R = f
	opts.Format = FormatFromPath(path)
	return Decode(opts)
}
