package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/andybodemer/snapraw"
)

func TestSidecarPath(t *testing.T) {
	c := qt.New(t)

	c.Assert(SidecarPath("/x/IMG_0001.CR3"), qt.Equals, "/x/IMG_0001_metadata.txt")
	c.Assert(SidecarPath("IMG_0001.cr2"), qt.Equals, "IMG_0001_metadata.txt")
}

func TestRender(t *testing.T) {
	c := qt.New(t)

	var fields snapraw.Fields
	fields.Add("Make", "Canon")
	fields.Add("Model", "Canon EOS R5")
	fields.Add("ExposureTime", 0.004)
	fields.Add("FNumber", 2.8)
	fields.Add("FocalLength", 85.0)
	fields.Add("DateTimeOriginal", "2024:03:15 10:30:00")
	fields.Add("Dir4_FirmwareVersion", "1.8.1")
	fields.Add("BodySerialNumber", "013021000123")

	text := Render("IMG_0001.CR3", &fields)
	c.Assert(text, qt.Contains, "Metadata for IMG_0001.CR3")
	c.Assert(text, qt.Contains, "Exposure time:  1/250")
	c.Assert(text, qt.Contains, "f/2.8")
	c.Assert(text, qt.Contains, "85 mm")
	c.Assert(text, qt.Contains, "Firmware:       1.8.1")
	c.Assert(text, qt.Contains, "Body serial:    013021000123")
	c.Assert(text, qt.Contains, "Serials and Firmware")
	c.Assert(strings.Contains(text, "Image and Creator"), qt.IsFalse)
}

func TestFormatExposure(t *testing.T) {
	c := qt.New(t)

	c.Assert(formatExposure(0.004), qt.Equals, "1/250")
	c.Assert(formatExposure(2.5), qt.Equals, "2.5s")
	c.Assert(formatExposure(1), qt.Equals, "1s")
	c.Assert(formatExposure(0), qt.Equals, "0s")
}

func TestWriteSkipsExisting(t *testing.T) {
	c := qt.New(t)

	dir := t.TempDir()
	photo := filepath.Join(dir, "IMG_0001.CR3")

	var fields snapraw.Fields
	fields.Add("Make", "Canon")

	path, err := Write(photo, &fields)
	c.Assert(err, qt.IsNil)
	c.Assert(path, qt.Equals, filepath.Join(dir, "IMG_0001_metadata.txt"))

	body, err := os.ReadFile(path)
	c.Assert(err, qt.IsNil)
	c.Assert(string(body), qt.Contains, "Make:           Canon")

	_, err = Write(photo, &fields)
	c.Assert(err, qt.Equals, ErrExists)
}
