// Package fileutil provides copy helpers for the import workflow.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CopyFileVerified streams src to dst with SHA256 + size integrity
// verification, preserving the source modification time.
// Removes dst on mismatch.
func CopyFileVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	n, err := io.Copy(io.MultiWriter(out, srcHasher), in)
	if err != nil {
		os.Remove(dst)
		return fmt.Errorf("copy: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	if n != srcInfo.Size() {
		os.Remove(dst)
		return fmt.Errorf("copy: size mismatch for %s: %d != %d", dst, n, srcInfo.Size())
	}

	back, err := os.Open(dst)
	if err != nil {
		return err
	}
	defer back.Close()

	dstHasher := sha256.New()
	if _, err := io.Copy(dstHasher, back); err != nil {
		os.Remove(dst)
		return fmt.Errorf("verify: %w", err)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		os.Remove(dst)
		return fmt.Errorf("verify: checksum mismatch for %s", dst)
	}

	os.Chtimes(dst, srcInfo.ModTime(), srcInfo.ModTime())
	return nil
}

// UniqueName returns path if nothing exists there, otherwise the first
// "name (N).ext" variant that is free.
func UniqueName(path string) string {
	if _, err := os.Stat(path); err != nil {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%d)%s", stem, n, ext)
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
	}
}
