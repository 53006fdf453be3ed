// Package discover locates camera cards and the photo files on them.
package discover

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoCard is returned when no mounted volume looks like a camera card.
var ErrNoCard = errors.New("discover: no camera card found")

// FindCard scans the volume roots for a mounted volume with a top-level
// DCIM directory and returns the DCIM path.
func FindCard(roots, skip []string) (string, error) {
	skipSet := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipSet[s] = true
	}

	for _, root := range roots {
		volumes, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, vol := range volumes {
			if !vol.IsDir() || skipSet[vol.Name()] {
				continue
			}
			dcim := filepath.Join(root, vol.Name(), "DCIM")
			if info, err := os.Stat(dcim); err == nil && info.IsDir() {
				return dcim, nil
			}
		}
	}
	return "", ErrNoCard
}

// FindPhotos walks root and returns every file whose extension is in
// exts, sorted by path.
func FindPhotos(root string, exts map[string]bool) ([]string, error) {
	var photos []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if exts[strings.ToLower(filepath.Ext(path))] {
			photos = append(photos, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(photos)
	return photos, nil
}
