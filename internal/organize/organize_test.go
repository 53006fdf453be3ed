package organize

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

// tiffWithDate builds a little-endian TIFF holding a single DateTime tag.
func tiffWithDate(stamp string) []byte {
	value := append([]byte(stamp), 0)
	le := binary.LittleEndian

	b := []byte{'I', 'I', 42, 0}
	b = le.AppendUint32(b, 8)
	b = le.AppendUint16(b, 1)
	b = le.AppendUint16(b, 0x0132)
	b = le.AppendUint16(b, 2)
	b = le.AppendUint32(b, uint32(len(value)))
	b = le.AppendUint32(b, uint32(8+2+12+4))
	b = le.AppendUint32(b, 0)
	return append(b, value...)
}

func writeTIFF(t *testing.T, dir, name, stamp string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, tiffWithDate(stamp), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGroupByDate(t *testing.T) {
	c := qt.New(t)

	dir := t.TempDir()
	p1 := writeTIFF(t, dir, "a.tif", "2024:03:15 10:30:00")
	p2 := writeTIFF(t, dir, "b.tif", "2024:03:16 09:00:00")
	p3 := writeTIFF(t, dir, "c.tif", "2024:03:15 18:45:12")

	groups, err := GroupByDate([]string{p1, p2, p3}, Options{})
	c.Assert(err, qt.IsNil)
	c.Assert(groups, qt.HasLen, 2)
	c.Assert(groups[0].Date.Format("2006-01-02"), qt.Equals, "2024-03-15")
	c.Assert(groups[0].Photos, qt.HasLen, 2)
	c.Assert(groups[1].Date.Format("2006-01-02"), qt.Equals, "2024-03-16")
}

func TestGroupByDateMtimeFallback(t *testing.T) {
	c := qt.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "junk.tif")
	c.Assert(os.WriteFile(path, []byte("not a tiff at all"), 0o644), qt.IsNil)
	mtime := time.Date(2023, 7, 4, 12, 0, 0, 0, time.Local)
	c.Assert(os.Chtimes(path, mtime, mtime), qt.IsNil)

	_, err := GroupByDate([]string{path}, Options{})
	c.Assert(err, qt.IsNotNil)

	groups, err := GroupByDate([]string{path}, Options{MtimeFallback: true})
	c.Assert(err, qt.IsNil)
	c.Assert(groups, qt.HasLen, 1)
	c.Assert(groups[0].Photos[0].FromMtime, qt.IsTrue)
	c.Assert(groups[0].Date.Format("2006-01-02"), qt.Equals, "2023-07-04")
}

func TestSanitizeShootName(t *testing.T) {
	c := qt.New(t)

	c.Assert(SanitizeShootName("  Lake  Trip!  "), qt.Equals, "Lake Trip")
	c.Assert(SanitizeShootName("a/b\\c:d"), qt.Equals, "abcd")
	c.Assert(SanitizeShootName("wedding_2024-03"), qt.Equals, "wedding_2024-03")
}

func TestFolderFor(t *testing.T) {
	c := qt.New(t)

	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	c.Assert(FolderFor("/photos", date, ""), qt.Equals,
		filepath.Join("/photos", "2024", "2024-03", "2024-03-15"))
	c.Assert(FolderFor("/photos", date, "Lake Trip"), qt.Equals,
		filepath.Join("/photos", "2024", "2024-03", "2024-03-15 Lake Trip"))
}

func TestBuildPlanAndCopy(t *testing.T) {
	c := qt.New(t)

	src := t.TempDir()
	dst := t.TempDir()
	p1 := writeTIFF(t, src, "IMG_0001.tif", "2024:03:15 10:30:00")
	p2 := writeTIFF(t, src, "IMG_0002.tif", "2024:03:15 11:00:00")

	groups, err := GroupByDate([]string{p1, p2}, Options{})
	c.Assert(err, qt.IsNil)

	plan := BuildPlan(groups, dst, "Lake")
	c.Assert(plan.TotalPhotos, qt.Equals, 2)
	c.Assert(plan.Conflicts, qt.Equals, 0)
	c.Assert(plan.TotalSize > 0, qt.IsTrue)

	res, err := Copy(plan, Options{})
	c.Assert(err, qt.IsNil)
	c.Assert(res.Copied, qt.Equals, 2)

	want := filepath.Join(dst, "2024", "2024-03", "2024-03-15 Lake", "IMG_0001.tif")
	_, err = os.Stat(want)
	c.Assert(err, qt.IsNil)

	// A second pass sees every destination as a conflict.
	plan = BuildPlan(groups, dst, "Lake")
	c.Assert(plan.Conflicts, qt.Equals, 2)

	res, err = Copy(plan, Options{Policy: ConflictSkip})
	c.Assert(err, qt.IsNil)
	c.Assert(res.Skipped, qt.Equals, 2)

	res, err = Copy(plan, Options{Policy: ConflictRename})
	c.Assert(err, qt.IsNil)
	c.Assert(res.Copied, qt.Equals, 2)
	_, err = os.Stat(filepath.Join(dst, "2024", "2024-03", "2024-03-15 Lake", "IMG_0001 (1).tif"))
	c.Assert(err, qt.IsNil)
}

func TestParseConflictPolicy(t *testing.T) {
	c := qt.New(t)

	p, err := ParseConflictPolicy("Rename")
	c.Assert(err, qt.IsNil)
	c.Assert(p, qt.Equals, ConflictRename)

	_, err = ParseConflictPolicy("explode")
	c.Assert(err, qt.ErrorMatches, `organize: unknown conflict policy "explode"`)
}
