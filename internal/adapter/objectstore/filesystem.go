package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/resilientme/backend/internal/domain"
)

// Filesystem stores objects as files under a root directory. Object names
// may contain slashes; they map to subdirectories.
type Filesystem struct {
	root string
}

// NewFilesystem creates a store rooted at dir, creating it if needed.
func NewFilesystem(dir string) (*Filesystem, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("objectstore: create root: %w", err)
	}
	return &Filesystem{root: dir}, nil
}

// Put writes the object atomically via a temp file and rename.
func (f *Filesystem) Put(ctx context.Context, name string, data []byte) error {
	path, err := f.resolve(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("objectstore: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".put-*")
	if err != nil {
		return fmt.Errorf("objectstore: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("objectstore: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("objectstore: close: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("objectstore: rename: %w", err)
	}
	return nil
}

// Get returns the object bytes, or ErrNotFound.
func (f *Filesystem) Get(ctx context.Context, name string) ([]byte, error) {
	path, err := f.resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("objectstore: object %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("objectstore: read: %w", err)
	}
	return data, nil
}

// Delete removes the object. Missing objects are reported as ErrNotFound.
func (f *Filesystem) Delete(ctx context.Context, name string) error {
	path, err := f.resolve(name)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("objectstore: object %q: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("objectstore: delete: %w", err)
	}
	return nil
}

// List returns every object name starting with prefix.
func (f *Filesystem) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(f.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(f.root, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("objectstore: list: %w", err)
	}
	return names, nil
}

// resolve maps an object name to a path under root and rejects traversal.
func (f *Filesystem) resolve(name string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(name))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("objectstore: bad object name %q: %w", name, domain.ErrValidation)
	}
	return filepath.Join(f.root, clean), nil
}
