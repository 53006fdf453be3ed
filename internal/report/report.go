// Package report writes human-readable metadata sidecar files next to
// copied photos.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybodemer/snapraw"
)

// ErrExists is returned by Write when the sidecar is already present.
var ErrExists = fmt.Errorf("report: sidecar already exists")

// SidecarPath returns the sidecar file path for a photo: the photo's
// stem with a _metadata.txt suffix, in the same directory.
func SidecarPath(photo string) string {
	ext := filepath.Ext(photo)
	return strings.TrimSuffix(photo, ext) + "_metadata.txt"
}

type line struct {
	label string
	field string
}

type category struct {
	title string
	lines []line
}

// The sidecar layout. Fields are resolved by base name, so values from
// any directory qualify, preferring deeper directories.
var categories = []category{
	{"Camera and Lens", []line{
		{"Make", "Make"},
		{"Camera", "CameraModel"},
		{"Model", "Model"},
		{"Lens", "LensModel"},
	}},
	{"Exposure", []line{
		{"Exposure time", "ExposureTime"},
		{"Aperture", "FNumber"},
		{"ISO", "ISOSpeedRatings"},
		{"Focal length", "FocalLength"},
		{"Exposure bias", "ExposureBiasValue"},
		{"Program", "ExposureProgram"},
	}},
	{"Date and Time", []line{
		{"Original", "DateTimeOriginal"},
		{"Digitized", "DateTimeDigitized"},
		{"Modified", "DateTime"},
	}},
	{"Image and Creator", []line{
		{"Width", "ImageWidth"},
		{"Height", "ImageLength"},
		{"Orientation", "Orientation"},
		{"Artist", "Artist"},
		{"Copyright", "Copyright"},
		{"Software", "Software"},
	}},
	{"Serials and Firmware", []line{
		{"Body serial", "BodySerialNumber"},
		{"Lens serial", "LensSerialNumber"},
		{"Firmware", "FirmwareVersion"},
		{"Lens code", "LensManufacturingCode"},
	}},
}

// Render formats the sidecar text for a photo's fields. Categories
// with no resolvable field are omitted.
func Render(photo string, fields *snapraw.Fields) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Metadata for %s\n", filepath.Base(photo))
	sb.WriteString(strings.Repeat("=", len("Metadata for ")+len(filepath.Base(photo))))
	sb.WriteString("\n")

	for _, cat := range categories {
		var body strings.Builder
		for _, l := range cat.lines {
			_, v, ok := fields.Lookup(l.field)
			if !ok {
				continue
			}
			fmt.Fprintf(&body, "  %-15s %s\n", l.label+":", formatValue(l.field, v))
		}
		if body.Len() > 0 {
			sb.WriteString("\n")
			sb.WriteString(cat.title)
			sb.WriteString("\n")
			sb.WriteString(body.String())
		}
	}
	return sb.String()
}

// Write renders the sidecar for photo and writes it beside the file.
// An existing sidecar is never overwritten.
func Write(photo string, fields *snapraw.Fields) (string, error) {
	path := SidecarPath(photo)
	if _, err := os.Stat(path); err == nil {
		return path, ErrExists
	}
	if err := os.WriteFile(path, []byte(Render(photo, fields)), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func formatValue(field string, v any) string {
	switch field {
	case "ExposureTime":
		if sec, ok := v.(float64); ok {
			return formatExposure(sec)
		}
	case "FNumber":
		if f, ok := v.(float64); ok {
			return fmt.Sprintf("f/%.1f", f)
		}
	case "FocalLength":
		if f, ok := v.(float64); ok {
			return fmt.Sprintf("%.0f mm", f)
		}
	}
	switch t := v.(type) {
	case float64:
		return fmt.Sprintf("%g", t)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// formatExposure renders shutter speeds under a second as 1/N.
func formatExposure(sec float64) string {
	if sec <= 0 {
		return "0s"
	}
	if sec < 1 {
		return fmt.Sprintf("1/%.0f", 1/sec)
	}
	return fmt.Sprintf("%gs", sec)
}
