// Package config loads and validates the snapraw configuration file.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig []byte

// Decoder holds the decode policy knobs. The scan window and entry
// ceiling encode empirically observed vendor limits, not format
// guarantees, so they are configuration rather than constants.
type Decoder struct {
	ScanWindowKiB int `toml:"scan_window_kib"`
	MaxDirEntries int `toml:"max_dir_entries"`
}

// Log holds logger construction options.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config is the application configuration.
type Config struct {
	// VolumeRoots are the mount points scanned for camera cards.
	VolumeRoots []string `toml:"volume_roots"`
	// SkipVolumes are volume names never treated as camera cards.
	SkipVolumes []string `toml:"skip_volumes"`
	// Extensions are the photo file extensions picked up by discovery.
	Extensions []string `toml:"extensions"`
	// DestinationsFile stores the saved import destinations.
	DestinationsFile string `toml:"destinations_file"`
	// MtimeFallback allows file modification time to stand in for the
	// capture date when a file yields no metadata.
	MtimeFallback bool `toml:"mtime_fallback"`

	Decoder Decoder `toml:"decoder"`
	Log     Log     `toml:"log"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		VolumeRoots: []string{"/Volumes", "/media", "/run/media"},
		SkipVolumes: []string{"Macintosh HD", "Macintosh HD - Data"},
		Extensions: []string{
			".jpg", ".jpeg", ".png", ".heic", ".tiff", ".tif",
			".dng",
			".cr2", ".cr3",
			".nef", ".nrw",
			".arw", ".srf", ".sr2",
			".raf",
			".orf",
			".rw2", ".raw",
			".iiq",
			".pef", ".ptx",
			".3fr", ".fff",
		},
		DestinationsFile: "",
		Decoder: Decoder{
			ScanWindowKiB: 200,
			MaxDirEntries: 200,
		},
		Log: Log{Level: "info", Format: "console"},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "snapraw", "config.toml")
}

// Load reads the config file at path, falling back to defaults when the
// file does not exist. An empty path means DefaultPath.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Defaults only.
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := toml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteSample writes the embedded sample configuration to path.
func WriteSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, sampleConfig, 0o644)
}

func (c *Config) normalize() {
	if c.DestinationsFile == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			c.DestinationsFile = filepath.Join(dir, "snapraw", "destinations.txt")
		} else {
			c.DestinationsFile = "destinations.txt"
		}
	}
	for i, ext := range c.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Extensions[i] = ext
	}
}

// Validate reports configuration values the rest of the program cannot
// work with.
func (c *Config) Validate() error {
	if c.Decoder.ScanWindowKiB <= 0 {
		return fmt.Errorf("config: decoder.scan_window_kib must be positive")
	}
	if c.Decoder.MaxDirEntries <= 0 {
		return fmt.Errorf("config: decoder.max_dir_entries must be positive")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: log.format %q not supported", c.Log.Format)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("config: extensions must not be empty")
	}
	return nil
}

// ExtensionSet returns the photo extensions as a lookup set.
func (c *Config) ExtensionSet() map[string]bool {
	set := make(map[string]bool, len(c.Extensions))
	for _, ext := range c.Extensions {
		if ext != "" {
			set[ext] = true
		}
	}
	return set
}

// ScanWindow returns the decoder scan window in bytes.
func (c *Config) ScanWindow() int {
	return c.Decoder.ScanWindowKiB * 1024
}
