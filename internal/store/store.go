package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// ErrInvalidName is returned when a path segment could escape its parent.
// It matches fs.ErrNotExist so callers treat it like an absent container.
var ErrInvalidName = invalidNameError{}

type invalidNameError struct{}

func (invalidNameError) Error() string        { return "invalid path segment" }
func (invalidNameError) Is(target error) bool { return target == fs.ErrNotExist }

// Store resolves untrusted location/person/file names under a fixed root.
// It never writes.
type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: filepath.Clean(root)}
}

// Root returns the configured data directory.
func (s *Store) Root() string {
	return s.root
}

// ValidName reports whether seg is a single, non-traversing path element.
func ValidName(seg string) bool {
	if seg == "" || seg == "." || seg == ".." {
		return false
	}
	return !strings.ContainsAny(seg, "/\\\x00")
}

// Path joins segments onto the root. Every segment must be a valid name, so
// the result always stays within the root.
func (s *Store) Path(segs ...string) (string, error) {
	parts := make([]string, 0, len(segs)+1)
	parts = append(parts, s.root)
	for _, seg := range segs {
		if !ValidName(seg) {
			return "", fmt.Errorf("%q: %w", seg, ErrInvalidName)
		}
		parts = append(parts, seg)
	}
	return filepath.Join(parts...), nil
}

// ReadDir lists a directory under the root, sorted by name.
func (s *Store) ReadDir(segs ...string) ([]fs.DirEntry, error) {
	p, err := s.Path(segs...)
	if err != nil {
		return nil, err
	}
	return os.ReadDir(p)
}

// IsDir reports whether the path exists and is a directory. Stat errors
// other than absence are returned.
func (s *Store) IsDir(segs ...string) (bool, error) {
	p, err := s.Path(segs...)
	if err != nil {
		return false, nil
	}
	info, err := os.Stat(p)
	if err != nil {
		if IsAbsent(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}

// Open opens a regular file for reading. Directories are reported as
// fs.ErrNotExist.
func (s *Store) Open(segs ...string) (*os.File, fs.FileInfo, error) {
	p, err := s.Path(segs...)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("stat %s: %w", p, err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, nil, fmt.Errorf("%s: not a regular file: %w", p, fs.ErrNotExist)
	}
	return f, info, nil
}

// IsAbsent reports whether err means the container is simply not there, as
// opposed to an unexpected I/O failure. A regular file standing where a
// directory is expected (ENOTDIR) counts as absent.
func IsAbsent(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, ErrInvalidName) || errors.Is(err, syscall.ENOTDIR)
}

// IsHidden reports whether a name starts with the hidden-file marker.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
