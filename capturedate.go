package snapraw

import (
	"os"
	"strings"
	"time"
)

// Capture-timestamp fields in resolution priority order.
var timestampFields = []string{"DateTimeOriginal", "DateTimeDigitized", "DateTime"}

const timestampLayout = "2006:01:02 15:04:05"

// CaptureTime resolves a single capture timestamp across directories.
// The first parseable hit wins: DateTimeOriginal before the digitized and
// modification stamps, lower directory ordinals first. ErrNoTimestamp is
// returned when no directory holds one; a zero time is never fabricated.
func (f *Fields) CaptureTime() (time.Time, error) {
	for _, base := range timestampFields {
		for n := 0; n <= maxDirOrdinal; n++ {
			v, found := f.Get(DirPrefix(n) + base)
			if !found {
				continue
			}
			s, ok := v.(string)
			if !ok {
				continue
			}
			if t, err := parseTimestamp(s); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, ErrNoTimestamp
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(timestampLayout) {
		// Some cameras append sub-seconds or timezone text.
		s = s[:len(timestampLayout)]
	}
	return time.Parse(timestampLayout, s)
}

// DecodeDate performs a date-only extraction: decode, then resolve the
// capture timestamp. Failures are explicit; callers never see a zero
// date standing in for "unavailable".
func DecodeDate(opts Options) (time.Time, error) {
	fields, err := Decode(opts)
	if err != nil {
		return time.Time{}, err
	}
	return fields.CaptureTime()
}

// DecodeFileDate opens path read-only and resolves its capture date.
func DecodeFileDate(path string, opts Options) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer f.Close()

	opts.R = f
	opts.Format = FormatFromPath(path)
	return DecodeDate(opts)
}
