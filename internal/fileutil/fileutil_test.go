package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestCopyFileVerified(t *testing.T) {
	c := qt.New(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "src.cr3")
	dst := filepath.Join(dir, "dst.cr3")

	content := []byte("not really a raw file, but bytes are bytes")
	c.Assert(os.WriteFile(src, content, 0o644), qt.IsNil)

	c.Assert(CopyFileVerified(src, dst), qt.IsNil)

	got, err := os.ReadFile(dst)
	c.Assert(err, qt.IsNil)
	c.Assert(got, qt.DeepEquals, content)

	srcInfo, _ := os.Stat(src)
	dstInfo, _ := os.Stat(dst)
	c.Assert(dstInfo.ModTime().Equal(srcInfo.ModTime()), qt.IsTrue)
}

func TestCopyFileVerifiedMissingSource(t *testing.T) {
	c := qt.New(t)

	dir := t.TempDir()
	err := CopyFileVerified(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"))
	c.Assert(err, qt.ErrorMatches, "stat source: .*")
}

func TestUniqueName(t *testing.T) {
	c := qt.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "IMG_0001.CR3")

	c.Assert(UniqueName(path), qt.Equals, path)

	c.Assert(os.WriteFile(path, nil, 0o644), qt.IsNil)
	c.Assert(UniqueName(path), qt.Equals, filepath.Join(dir, "IMG_0001 (2).CR3"))

	c.Assert(os.WriteFile(filepath.Join(dir, "IMG_0001 (2).CR3"), nil, 0o644), qt.IsNil)
	c.Assert(UniqueName(path), qt.Equals, filepath.Join(dir, "IMG_0001 (3).CR3"))
}
