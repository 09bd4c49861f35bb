package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
)

// Types are the attachment kinds an expense can carry.
var Types = []string{"photo", "invoice", "notice"}

// ValidType reports whether mediaType is one of the known attachment kinds.
func ValidType(mediaType string) bool {
	for _, t := range Types {
		if t == mediaType {
			return true
		}
	}
	return false
}

// Store keeps expense attachments on the filesystem, one directory per
// expense id, one file per attachment type.
type Store struct {
	root string
}

func New(root string) *Store {
	return &Store{root: root}
}

func (s *Store) filePath(id int, mediaType string) (string, error) {
	if !ValidType(mediaType) {
		return "", fmt.Errorf("unknown media type %q", mediaType)
	}
	return filepath.Join(s.root, strconv.Itoa(id), mediaType), nil
}

// Write stores the attachment bytes for (id, mediaType), overwriting any
// previous attachment of that type. Empty content is skipped, leaving an
// existing attachment untouched.
func (s *Store) Write(id int, mediaType string, r io.Reader) error {
	path, err := s.filePath(id, mediaType)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	// Write to a temp file first so a half-written upload never replaces
	// the current attachment.
	tmp := filepath.Join(dir, ".upload-"+uuid.NewString())
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return err
	}
	if n == 0 {
		return os.Remove(tmp)
	}

	return os.Rename(tmp, path)
}

// Path returns the on-disk location of an attachment for serving. The
// error is os.ErrNotExist-compatible when the attachment was never
// uploaded.
func (s *Store) Path(id int, mediaType string) (string, error) {
	path, err := s.filePath(id, mediaType)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

// Exists is the template helper behind the list/edit media links.
func (s *Store) Exists(id int, mediaType string) bool {
	_, err := s.Path(id, mediaType)
	return err == nil
}

// Remove deletes the whole attachment directory of an expense. Removing
// an expense that never had attachments is not an error.
func (s *Store) Remove(id int) error {
	return os.RemoveAll(filepath.Join(s.root, strconv.Itoa(id)))
}
