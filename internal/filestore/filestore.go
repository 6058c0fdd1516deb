// Package filestore keeps uploaded receipt files on local disk. The
// database only ever stores the reference string returned by Save.
package filestore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidReference = errors.New("invalid file reference")

type Store struct {
	root string
}

func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	return &Store{root: root}, nil
}

// Save writes the upload under a fresh uuid-based name and returns the
// reference. The original filename is discarded apart from its extension.
func (s *Store) Save(originalName string, r io.Reader) (string, error) {
	name := uuid.NewString() + sanitizeExt(originalName)

	f, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing file: %w", err)
	}

	return name, nil
}

// Open returns the stored file for reading.
func (s *Store) Open(reference string) (io.ReadCloser, error) {
	path, err := s.resolve(reference)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	return f, nil
}

// Remove deletes the stored file. Removing a reference that is already
// gone is not an error.
func (s *Store) Remove(reference string) error {
	path, err := s.resolve(reference)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing file: %w", err)
	}

	return nil
}

// resolve rejects references that could escape the root directory.
func (s *Store) resolve(reference string) (string, error) {
	if reference == "" || reference != filepath.Base(reference) {
		return "", ErrInvalidReference
	}

	return filepath.Join(s.root, reference), nil
}

func sanitizeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	for _, r := range ext {
		if r != '.' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}

	return ext
}
