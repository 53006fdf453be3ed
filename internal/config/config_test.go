package config

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestDefault(t *testing.T) {
	c := qt.New(t)

	cfg := Default()
	cfg.normalize()
	c.Assert(cfg.Validate(), qt.IsNil)
	c.Assert(cfg.ScanWindow(), qt.Equals, 200*1024)
	c.Assert(cfg.ExtensionSet()[".cr3"], qt.IsTrue)
	c.Assert(cfg.ExtensionSet()[".mp4"], qt.IsFalse)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c := qt.New(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Decoder.MaxDirEntries, qt.Equals, 200)
	c.Assert(cfg.DestinationsFile, qt.Not(qt.Equals), "")
}

func TestLoadOverrides(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
extensions = ["CR3", ".nef"]

[decoder]
scan_window_kib = 64
max_dir_entries = 128
`), 0o644)
	c.Assert(err, qt.IsNil)

	cfg, err := Load(path)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.ScanWindow(), qt.Equals, 64*1024)
	c.Assert(cfg.Decoder.MaxDirEntries, qt.Equals, 128)
	// Extensions are normalized to lower-case dotted form.
	c.Assert(cfg.ExtensionSet()[".cr3"], qt.IsTrue)
	c.Assert(cfg.ExtensionSet()[".nef"], qt.IsTrue)
}

func TestLoadInvalid(t *testing.T) {
	c := qt.New(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
[log]
format = "xml"
`), 0o644)
	c.Assert(err, qt.IsNil)

	_, err = Load(path)
	c.Assert(err, qt.ErrorMatches, `config: log.format "xml" not supported`)
}
