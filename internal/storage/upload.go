// Package storage keeps uploaded audio on local disk for the length of a request.
package storage

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"legalvoice/internal/apperr"
	"legalvoice/internal/audio"
)

type Upload struct {
	ID           string
	Path         string
	OriginalName string
	Size         int64
	CreatedAt    time.Time
}

// Store writes uploads into a single directory. The directory must not be
// one that is served over HTTP.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Save copies an uploaded audio part to disk under a generated name.
func (s *Store) Save(file *multipart.FileHeader) (*Upload, error) {
	if !audio.AllowedExtension(file.Filename) {
		return nil, fmt.Errorf("%w: unsupported extension %q", apperr.ErrInvalidAudioFormat, filepath.Ext(file.Filename))
	}
	if file.Size > audio.MaxFileSize {
		return nil, fmt.Errorf("%w: upload is %d bytes", apperr.ErrFileTooLarge, file.Size)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads directory: %w", err)
	}

	id := uuid.NewString()
	dst := filepath.Join(s.dir, id+strings.ToLower(filepath.Ext(file.Filename)))

	size, err := saveMultipartFile(file, dst)
	if err != nil {
		_ = os.Remove(dst)
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &Upload{
		ID:           id,
		Path:         dst,
		OriginalName: filepath.Base(file.Filename),
		Size:         size,
		CreatedAt:    time.Now(),
	}, nil
}

// Remove deletes a saved upload. A file that is already gone is not an error.
func (s *Store) Remove(u *Upload) error {
	if u == nil {
		return nil
	}
	if err := os.Remove(u.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove upload %s: %w", u.ID, err)
	}
	return nil
}

/* helper */
func saveMultipartFile(file *multipart.FileHeader, dst string) (int64, error) {
	src, err := file.Open()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	n, err := out.ReadFrom(src)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}
