// Package filestorage keeps uploaded files on local disk.
package filestorage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrOutsideStorage is returned for URLs that do not name a stored file
var ErrOutsideStorage = errors.New("path does not name a stored file")

// LocalStorage writes uploads under root, one directory per UploadPolicy.
// Files are served from publicURL, e.g. http://host/uploads/cvs/<uuid>.pdf.
type LocalStorage struct {
	root      string
	publicURL string
	logger    zerolog.Logger
}

// NewLocalStorage creates root if needed. publicURL is the prefix under which
// the server exposes root.
func NewLocalStorage(root, publicURL string, logger zerolog.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", root, err)
	}
	return &LocalStorage{
		root:      root,
		publicURL: strings.TrimRight(publicURL, "/"),
		logger:    logger,
	}, nil
}

// Store copies the upload to <root>/<policy.Dir>/<uuid><ext>. The file only
// appears under its final name once fully written.
func (s *LocalStorage) Store(fileHeader *multipart.FileHeader, policy UploadPolicy) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload %q: %w", fileHeader.Filename, err)
	}
	defer src.Close()

	dir := filepath.Join(s.root, policy.Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	// One byte past the limit is enough to know the upload is too big
	written, err := io.Copy(tmp, io.LimitReader(src, policy.MaxBytes+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if written > policy.MaxBytes {
		return "", fmt.Errorf("upload %q exceeds %d bytes", fileHeader.Filename, policy.MaxBytes)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	if err := os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("failed to place upload: %w", err)
	}

	url := s.publicURL + "/" + path.Join(policy.Dir, name)
	s.logger.Info().
		Str("original", fileHeader.Filename).
		Str("url", url).
		Int64("bytes", written).
		Msg("Upload stored")
	return url, nil
}

// Resolve accepts URLs produced by Store and returns the file path. Only the
// "<dir>/<name>" tail is used, so nothing outside root can be addressed.
func (s *LocalStorage) Resolve(fileURL string) (string, error) {
	rel := strings.TrimPrefix(fileURL, s.publicURL)
	rel = strings.Trim(filepath.ToSlash(rel), "/")
	parts := strings.Split(rel, "/")
	if len(parts) < 2 {
		return "", fmt.Errorf("%w: %q", ErrOutsideStorage, fileURL)
	}

	dir, name := parts[len(parts)-2], parts[len(parts)-1]
	for _, p := range []string{dir, name} {
		if p == "" || p == "." || p == ".." {
			return "", fmt.Errorf("%w: %q", ErrOutsideStorage, fileURL)
		}
	}
	return filepath.Join(s.root, dir, name), nil
}

// Delete removes the file behind fileURL
func (s *LocalStorage) Delete(fileURL string) error {
	if fileURL == "" {
		return nil
	}
	full, err := s.Resolve(fileURL)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Debug().Str("path", full).Msg("Stored file already gone")
			return nil
		}
		return fmt.Errorf("failed to delete %s: %w", full, err)
	}
	s.logger.Info().Str("path", full).Msg("Stored file deleted")
	return nil
}
