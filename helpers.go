package snapraw

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

func printableString(s string) string {
	ss := strings.Map(func(r rune) rune {
		if unicode.IsGraphic(r) {
			return r
		}
		return -1
	}, s)

	return strings.TrimSpace(ss)
}

// decodeText turns a raw ASCII tag payload into a clean string.
// The payload ends at the first NUL terminator. Cameras routinely write
// Latin-1 in fields declared as ASCII, so invalid UTF-8 is re-decoded
// as ISO 8859-1 rather than dropped.
func decodeText(b []byte) string {
	if i := indexNull(b); i >= 0 {
		b = b[:i]
	}
	if utf8.Valid(b) {
		return printableString(string(b))
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return printableString(string(b))
	}
	return printableString(string(decoded))
}

func indexNull(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return -1
}

func trimBytesNulls(b []byte) []byte {
	var lo, hi int
	for lo = 0; lo < len(b) && b[lo] == 0; lo++ {
	}
	for hi = len(b); hi > lo && b[hi-1] == 0; hi-- {
	}
	return b[lo:hi]
}
