package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nancruz/blogindex/internal/apperr"
	"github.com/nancruz/blogindex/internal/models"
)

// FS implements Provider backed by a flat directory on the local file system.
type FS struct {
	root string // absolute path to the content directory
}

// NewFS creates a new FS provider rooted at the given directory.
// The directory must already exist.
func NewFS(root string) (*FS, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &apperr.IOError{Op: "stat", Path: abs, Err: err}
	}
	if !info.IsDir() {
		return nil, &apperr.IOError{Op: "stat", Path: abs, Err: fmt.Errorf("not a directory")}
	}
	return &FS{root: abs}, nil
}

// Root returns the absolute content directory path.
func (f *FS) Root() string { return f.root }

// SlugOf returns the slug for a markdown file name ("hello.md" -> "hello").
func SlugOf(name string) string {
	return strings.TrimSuffix(filepath.Base(name), Ext)
}

// IsPostFile reports whether name looks like a post file.
func IsPostFile(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, Ext) && len(base) > len(Ext) && !strings.HasPrefix(base, ".")
}

// safePath resolves a bare file name against the content root. Names with
// directory components are rejected since the content directory is flat.
func (f *FS) safePath(name string) (string, error) {
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("storage: invalid file name %q", name)
	}
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return "", fmt.Errorf("storage: file name must not contain directories: %q", name)
	}
	return filepath.Join(f.root, name), nil
}

// ErrNotPost is wrapped by Read when the named path exists but is not a
// regular file (after following symlinks). It matches fs.ErrNotExist so
// callers treat such names exactly like absent ones.
var ErrNotPost = fmt.Errorf("not a regular file: %w", fs.ErrNotExist)

// isPost is the single rule deciding whether a directory entry is a post:
// a post-looking name that resolves to a regular file.
func isPost(name string, info fs.FileInfo) bool {
	return IsPostFile(name) && info.Mode().IsRegular()
}

// List returns an entry for every .md file directly under the root, in
// file name order. Symlinks are followed; subdirectories and dangling
// links are skipped. Files are not read.
func (f *FS) List() ([]models.Entry, error) {
	dirents, err := os.ReadDir(f.root)
	if err != nil {
		return nil, &apperr.IOError{Op: "read dir", Path: f.root, Err: err}
	}
	out := make([]models.Entry, 0, len(dirents))
	for _, d := range dirents {
		if !IsPostFile(d.Name()) {
			continue
		}
		abs := filepath.Join(f.root, d.Name())
		info, err := os.Stat(abs)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, &apperr.IOError{Op: "stat", Path: abs, Err: err}
		}
		if !isPost(d.Name(), info) {
			continue
		}
		out = append(out, models.Entry{
			Name:      d.Name(),
			Slug:      SlugOf(d.Name()),
			UpdatedAt: info.ModTime(),
		})
	}
	return out, nil
}

// Read returns the raw bytes of a content file. Names that List would not
// report fail with an error matching fs.ErrNotExist.
func (f *FS) Read(name string) ([]byte, error) {
	abs, err := f.safePath(name)
	if err != nil {
		return nil, &apperr.IOError{Op: "read", Path: name, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, &apperr.IOError{Op: "read", Path: abs, Err: err}
	}
	if !isPost(name, info) {
		return nil, &apperr.IOError{Op: "read", Path: abs, Err: ErrNotPost}
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, &apperr.IOError{Op: "read", Path: abs, Err: err}
	}
	return data, nil
}

// Checksum returns the hex-encoded SHA-256 digest of data.
func Checksum(data []byte) string { return checksum(data) }

func checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
