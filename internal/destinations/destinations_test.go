package destinations

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestStoreAddListRemove(t *testing.T) {
	c := qt.New(t)

	tmp := t.TempDir()
	store := NewStore(filepath.Join(tmp, "conf", "destinations.txt"))

	dirs, err := store.List()
	c.Assert(err, qt.IsNil)
	c.Assert(dirs, qt.HasLen, 0)

	dirB := filepath.Join(tmp, "b")
	dirA := filepath.Join(tmp, "a")
	c.Assert(os.Mkdir(dirB, 0o755), qt.IsNil)
	c.Assert(os.Mkdir(dirA, 0o755), qt.IsNil)

	_, err = store.Add(dirB)
	c.Assert(err, qt.IsNil)
	dirs, err = store.Add(dirA)
	c.Assert(err, qt.IsNil)
	c.Assert(dirs, qt.DeepEquals, []string{dirA, dirB})

	// Duplicate add is a no-op.
	dirs, err = store.Add(dirA)
	c.Assert(err, qt.IsNil)
	c.Assert(dirs, qt.HasLen, 2)

	dirs, err = store.Remove(dirB)
	c.Assert(err, qt.IsNil)
	c.Assert(dirs, qt.DeepEquals, []string{dirA})
}

func TestAddRejectsMissingDir(t *testing.T) {
	c := qt.New(t)

	store := NewStore(filepath.Join(t.TempDir(), "destinations.txt"))
	_, err := store.Add(filepath.Join(t.TempDir(), "nope"))
	c.Assert(err, qt.IsNotNil)
}

func TestValidateRejectsFile(t *testing.T) {
	c := qt.New(t)

	file := filepath.Join(t.TempDir(), "plain")
	c.Assert(os.WriteFile(file, nil, 0o644), qt.IsNil)
	_, err := Validate(file)
	c.Assert(err, qt.ErrorMatches, `destinations: .* is not a directory`)
}
