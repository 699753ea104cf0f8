package imagestore

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const dataURIPrefix = "data:image/"

// Store writes decoded recipe images under a media directory and hands
// back the reference path the rest of the system stores as an opaque
// string.
type Store struct {
	Dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{Dir: dir}, nil
}

// Save accepts a base64 data URI ("data:image/png;base64,...") and
// returns the reference for the stored file. An input that is already a
// reference (e.g. a client echoing the current image on update) passes
// through unchanged.
func (s *Store) Save(data string) (string, error) {
	if !strings.HasPrefix(data, dataURIPrefix) {
		return data, nil
	}

	header, payload, found := strings.Cut(data, ";base64,")

	if !found {
		return "", errors.New("image data URI is not base64 encoded")
	}

	ext := strings.TrimPrefix(header, dataURIPrefix)

	if ext == "" || strings.ContainsAny(ext, "/\\.") {
		return "", fmt.Errorf("unsupported image format %q", ext)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)

	if err != nil {
		return "", fmt.Errorf("decode image payload: %w", err)
	}

	name := uuid.New().String() + "." + ext

	if err := os.WriteFile(filepath.Join(s.Dir, name), raw, 0o644); err != nil {
		return "", err
	}

	return "/media/recipes/" + name, nil
}

// Remove deletes a stored image given the reference Save returned.
// References outside the media prefix are ignored.
func (s *Store) Remove(reference string) error {
	name, found := strings.CutPrefix(reference, "/media/recipes/")

	if !found || name == "" || strings.Contains(name, "/") {
		return nil
	}

	err := os.Remove(filepath.Join(s.Dir, name))

	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}
