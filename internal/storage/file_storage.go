// Package storage persists uploaded photo files.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// PublicPrefix is the URL prefix stored photos are served under.
const PublicPrefix = "/uploads"

// sniffLen is how many leading bytes are used to detect the content type.
const sniffLen = 3072

// ErrNotImage is returned when the content is not a recognised image.
var ErrNotImage = errors.New("file is not an image")

// FileStorage writes files below root on an afero filesystem.
type FileStorage struct {
	fs   afero.Fs
	root string
}

func New(fs afero.Fs, root string) *FileStorage {
	return &FileStorage{fs: fs, root: root}
}

// NewOS stores files on the local disk under dir.
func NewOS(dir string) (*FileStorage, error) {
	fs := afero.NewOsFs()
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", dir, err)
	}
	return New(fs, dir), nil
}

// DetectImage sniffs head and returns the image extension (".png", ".jpg", ...).
func DetectImage(head []byte) (string, error) {
	mt := mimetype.Detect(head)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}
	return mt.Extension(), nil
}

// SaveImage validates that r holds an image and stores it under a fresh
// name in folder. It returns the public path of the stored file.
func (s *FileStorage) SaveImage(ctx context.Context, folder string, r io.Reader) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	ext, err := DetectImage(head)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, folder)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %q: %w", dir, err)
	}

	name := uuid.NewString() + ext
	full := filepath.Join(dir, name)
	f, err := s.fs.Create(full)
	if err != nil {
		return "", fmt.Errorf("create file %q: %w", full, err)
	}
	if _, err := io.Copy(f, io.MultiReader(bytes.NewReader(head), r)); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(full)
		return "", fmt.Errorf("write file %q: %w", full, err)
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(full)
		return "", fmt.Errorf("close file %q: %w", full, err)
	}

	return path.Join(PublicPrefix, folder, name), nil
}

// Remove deletes a file previously returned by SaveImage. Missing files are ignored.
func (s *FileStorage) Remove(publicPath string) error {
	rel := strings.TrimPrefix(publicPath, PublicPrefix)
	full := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := s.fs.Remove(full); err != nil && !isNotExist(err) {
		return fmt.Errorf("remove file %q: %w", full, err)
	}
	return nil
}

// Open returns the content of a stored file.
func (s *FileStorage) Open(publicPath string) (afero.File, error) {
	rel := strings.TrimPrefix(publicPath, PublicPrefix)
	return s.fs.Open(filepath.Join(s.root, filepath.FromSlash(rel)))
}

// HTTPFS exposes the storage root for static serving.
func (s *FileStorage) HTTPFS() http.FileSystem {
	return afero.NewHttpFs(s.fs).Dir(s.root)
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
