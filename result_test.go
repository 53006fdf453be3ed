package snapraw

import (
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

func TestFields(t *testing.T) {
	c := qt.New(t)

	f := &Fields{}
	f.Add("Make", "Canon")
	f.Add("Model", "EOS R5")
	f.Add("Model", "EOS R6")

	c.Assert(f.Len(), qt.Equals, 2)
	c.Assert(f.Names(), qt.DeepEquals, []string{"Make", "Model"})

	v, ok := f.Get("Model")
	c.Assert(ok, qt.IsTrue)
	c.Assert(v, qt.Equals, "EOS R6")

	_, ok = f.Get("LensModel")
	c.Assert(ok, qt.IsFalse)
}

func TestFieldsLookup(t *testing.T) {
	c := qt.New(t)

	f := &Fields{}
	f.Add("Dir1_Model", "one")
	f.Add("Dir3_Model", "three")

	// Higher ordinals win among prefixed names.
	name, v, ok := f.Lookup("Model")
	c.Assert(ok, qt.IsTrue)
	c.Assert(name, qt.Equals, "Dir3_Model")
	c.Assert(v, qt.Equals, "three")

	// The unprefixed name always wins.
	f.Add("Model", "plain")
	name, v, ok = f.Lookup("Model")
	c.Assert(ok, qt.IsTrue)
	c.Assert(name, qt.Equals, "Model")
	c.Assert(v, qt.Equals, "plain")

	_, _, ok = f.Lookup("LensModel")
	c.Assert(ok, qt.IsFalse)
}

func TestDirPrefix(t *testing.T) {
	c := qt.New(t)

	c.Assert(DirPrefix(0), qt.Equals, "")
	c.Assert(DirPrefix(1), qt.Equals, "Dir1_")
	c.Assert(DirPrefix(4), qt.Equals, "Dir4_")
}

func TestCaptureTime(t *testing.T) {
	c := qt.New(t)

	f := &Fields{}
	f.Add("DateTime", "2024:01:02 03:04:05")
	f.Add("Dir2_DateTimeOriginal", "2024:03:15 10:30:00")

	// DateTimeOriginal outranks DateTime even behind an ordinal prefix.
	tm, err := f.CaptureTime()
	c.Assert(err, qt.IsNil)
	c.Assert(tm.Format(time.DateOnly), qt.Equals, "2024-03-15")

	// Trailing sub-second text is tolerated.
	f2 := &Fields{}
	f2.Add("DateTimeOriginal", "2024:03:15 10:30:00.123")
	tm, err = f2.CaptureTime()
	c.Assert(err, qt.IsNil)
	c.Assert(tm.Format(time.DateOnly), qt.Equals, "2024-03-15")

	// Non-string and unparseable values are not timestamps.
	f3 := &Fields{}
	f3.Add("DateTimeOriginal", uint32(12345))
	f3.Add("DateTime", "not a date")
	_, err = f3.CaptureTime()
	c.Assert(err, qt.Equals, ErrNoTimestamp)
}

func TestPrintableString(t *testing.T) {
	c := qt.New(t)

	c.Assert(printableString("  Canon EOS  "), qt.Equals, "Canon EOS")
	c.Assert(printableString("a\x00b\x01c"), qt.Equals, "abc")
}

func TestTrimBytesNulls(t *testing.T) {
	c := qt.New(t)

	c.Assert(trimBytesNulls([]byte{0, 0, 'a', 'b', 0}), qt.DeepEquals, []byte("ab"))
	c.Assert(trimBytesNulls([]byte{0, 0}), qt.HasLen, 0)
}
