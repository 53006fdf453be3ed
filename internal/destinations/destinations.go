// Package destinations manages the saved list of import destinations.
package destinations

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"
)

// Store reads and writes the destinations file, a plain text file with
// one directory path per line. Concurrent invocations are serialized
// with a sibling lock file.
type Store struct {
	path string
	lock *flock.Flock
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// List returns the saved destinations in sorted order. A missing file
// yields an empty list.
func (s *Store) List() ([]string, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	if err := s.lock.Lock(); err != nil {
		return nil, fmt.Errorf("destinations: lock: %w", err)
	}
	defer s.lock.Unlock()
	return s.read()
}

// Add saves dir as a destination after validating it, returning the
// updated list. Adding an already saved destination is a no-op.
func (s *Store) Add(dir string) ([]string, error) {
	dir, err := Validate(dir)
	if err != nil {
		return nil, err
	}

	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	if err := s.lock.Lock(); err != nil {
		return nil, fmt.Errorf("destinations: lock: %w", err)
	}
	defer s.lock.Unlock()

	dirs, err := s.read()
	if err != nil {
		return nil, err
	}
	for _, d := range dirs {
		if d == dir {
			return dirs, nil
		}
	}
	dirs = append(dirs, dir)
	sort.Strings(dirs)
	if err := s.write(dirs); err != nil {
		return nil, err
	}
	return dirs, nil
}

// Remove deletes dir from the saved destinations, returning the
// updated list.
func (s *Store) Remove(dir string) ([]string, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	if err := s.lock.Lock(); err != nil {
		return nil, fmt.Errorf("destinations: lock: %w", err)
	}
	defer s.lock.Unlock()

	dirs, err := s.read()
	if err != nil {
		return nil, err
	}
	kept := dirs[:0]
	for _, d := range dirs {
		if d != dir {
			kept = append(kept, d)
		}
	}
	if err := s.write(kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Validate checks that dir exists, is a directory and is writable, and
// returns its absolute path.
func Validate(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("destinations: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("destinations: %s is not a directory", abs)
	}
	probe, err := os.CreateTemp(abs, ".snapraw-*")
	if err != nil {
		return "", fmt.Errorf("destinations: %s is not writable: %w", abs, err)
	}
	probe.Close()
	os.Remove(probe.Name())
	return abs, nil
}

func (s *Store) ensureDir() error {
	return os.MkdirAll(filepath.Dir(s.path), 0o755)
}

func (s *Store) read() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var dirs []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		dirs = append(dirs, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	sort.Strings(dirs)
	return dirs, nil
}

func (s *Store) write(dirs []string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	var sb strings.Builder
	for _, d := range dirs {
		sb.WriteString(d)
		sb.WriteByte('\n')
	}
	return os.WriteFile(s.path, []byte(sb.String()), 0o644)
}
