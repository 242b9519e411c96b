// Package imagestore saves equipment photos on the local filesystem and
// answers whether a stored path still exists. The record store only keeps
// and validates the path strings this package returns.
package imagestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/petar-djukic/equipments/pkg/types"
)

var _ types.ImageChecker = (*Store)(nil)

// Image store errors.
var (
	ErrImageNotFound = errors.New("image not found")
	ErrOutsideBase   = errors.New("path outside image directory")
)

// Store keeps images as files under an absolute base directory.
type Store struct {
	basePath string
}

// New creates the base directory if needed.
func New(basePath string) (*Store, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("resolving image directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("creating image directory: %w", err)
	}
	return &Store{basePath: abs}, nil
}

// Save copies r into a new file named after prefix and returns its absolute
// path. A partially written file is removed.
func (s *Store) Save(ctx context.Context, prefix, mimeType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%s_%d%s", prefix, time.Now().UnixNano(), mimeTypeToExt(mimeType))
	filePath := filepath.Join(s.basePath, filename)

	f, err := os.OpenFile(filePath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating image file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close image after write error", "error", cerr)
		}
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove image after write error", "error", rerr)
		}
		return "", fmt.Errorf("writing image file: %w", err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove image after close error", "error", rerr)
		}
		return "", fmt.Errorf("closing image file: %w", err)
	}
	return filePath, nil
}

// Open returns a reader for a stored image and its MIME type.
func (s *Store) Open(ctx context.Context, path string) (io.ReadCloser, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	abs, err := s.resolve(path)
	if err != nil {
		return nil, "", err
	}
	f, err := os.Open(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", ErrImageNotFound
		}
		return nil, "", fmt.Errorf("opening image: %w", err)
	}
	return f, extToMimeType(abs), nil
}

// Delete removes a stored image.
func (s *Store) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	abs, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrImageNotFound
		}
		return fmt.Errorf("deleting image: %w", err)
	}
	return nil
}

// Exists reports whether path names a regular file. Any path is accepted so
// that equipment may reference images saved elsewhere on the device.
func (s *Store) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// resolve maps path to an absolute path inside the base directory and
// rejects directory traversal. Relative paths are taken relative to the base.
func (s *Store) resolve(path string) (string, error) {
	p := path
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.basePath, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	if !strings.HasPrefix(abs, s.basePath+string(filepath.Separator)) {
		return "", ErrOutsideBase
	}
	return abs, nil
}

// MimeTypeForPath guesses an image MIME type from the file extension.
func MimeTypeForPath(path string) string {
	return extToMimeType(path)
}

func mimeTypeToExt(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/heic":
		return ".heic"
	default:
		return ".jpg"
	}
}

func extToMimeType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".heic":
		return "image/heic"
	default:
		return "image/jpeg"
	}
}
