// Package file provides a filesystem-rooted implementation of driven.Storage.
//
// Keys are slash-separated paths relative to the root directory. Writes are
// atomic: values are written to a temporary file in the target directory and
// renamed into place.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/graphidx/internal/core/domain"
	"github.com/custodia-labs/graphidx/internal/core/ports/driven"
)

// Ensure Storage implements the interfaces.
var (
	_ driven.Storage       = (*Storage)(nil)
	_ driven.CreationDater = (*Storage)(nil)
)

// tempPattern matches the files Set writes before renaming into place.
var tempPattern = regexp.MustCompile(`^\..+\.tmp-[0-9]+$`)

// Storage keeps each key as a file under a root directory.
type Storage struct {
	root string
	// err is set on a child whose name escapes the parent root.
	err error
}

// NewStorage creates a file storage rooted at root, creating the directory if needed.
func NewStorage(root string) (*Storage, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: file storage requires a base directory", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage root: %w", err)
	}
	return &Storage{root: root}, nil
}

// New builds a file storage from registry options.
// Supported options:
//   - base_dir (string): root directory
func New(opts map[string]any) (driven.Storage, error) {
	root, _ := opts["base_dir"].(string)
	return NewStorage(root)
}

// Root returns the storage root directory.
func (s *Storage) Root() string {
	return s.root
}

// path maps a key to a file path inside the root.
func (s *Storage) path(key string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	clean, err := cleanRelative(key)
	if err != nil {
		return "", fmt.Errorf("%w: key %q escapes storage root", domain.ErrInvalidInput, key)
	}
	return filepath.Join(s.root, clean), nil
}

func cleanRelative(name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if name == "" || clean == "." || filepath.IsAbs(clean) ||
		clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", domain.ErrInvalidInput
	}
	return clean, nil
}

// Has reports whether key exists as a regular file.
func (s *Storage) Has(_ context.Context, key string) (bool, error) {
	p, err := s.path(key)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// Get reads the file for key.
func (s *Storage) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Set atomically writes value to the file for key.
func (s *Storage) Set(_ context.Context, key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(p)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", key, err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming %s: %w", key, err)
	}
	return nil
}

// CreationDate returns the modification time of the file for key.
func (s *Storage) CreationDate(_ context.Context, key string) (time.Time, error) {
	p, err := s.path(key)
	if err != nil {
		return time.Time{}, err
	}
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, fmt.Errorf("%s: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Delete removes the file for key. Missing files are ignored.
func (s *Storage) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Keys walks the root and returns slash-separated keys with the given prefix, sorted.
func (s *Storage) Keys(ctx context.Context, prefix string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	var keys []string
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || tempPattern.MatchString(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// Clear removes everything under the root, keeping the root itself.
func (s *Storage) Clear(_ context.Context) error {
	if s.err != nil {
		return s.err
	}
	entries, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(s.root, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Child returns a storage rooted at root/name.
// The child directory is created lazily on first write. A name that escapes
// the root yields a storage whose operations fail with domain.ErrInvalidInput.
func (s *Storage) Child(name string) driven.Storage {
	if name == "" {
		return s
	}
	if s.err != nil {
		return s
	}
	clean, err := cleanRelative(name)
	if err != nil {
		return &Storage{root: s.root, err: fmt.Errorf("%w: child %q escapes storage root", domain.ErrInvalidInput, name)}
	}
	return &Storage{root: filepath.Join(s.root, clean)}
}
