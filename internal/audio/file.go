// Package audio validates uploaded audio files and opens them for transcription.
package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"legalvoice/internal/apperr"
)

// MaxFileSize matches the upstream transcription provider's upload limit.
const MaxFileSize int64 = 25 * 1024 * 1024

// Info describes a validated audio file on disk.
type Info struct {
	Path        string
	Name        string
	Size        int64
	ContentType string
}

// File is an open, validated audio stream. Close is safe to call more than once.
type File struct {
	Info
	f         *os.File
	closeOnce sync.Once
	closeErr  error
}

// Validate checks that path exists, is a regular file and is under MaxFileSize.
// It never opens the file.
func Validate(path string) (Info, error) {
	st, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Info{}, fmt.Errorf("%w: %s", apperr.ErrFileNotFound, path)
		}
		return Info{}, fmt.Errorf("stat audio file: %w", err)
	}
	if st.IsDir() {
		return Info{}, fmt.Errorf("%w: %s is a directory", apperr.ErrFileNotFound, path)
	}
	if st.Size() > MaxFileSize {
		return Info{}, fmt.Errorf("%w: %s is %d bytes", apperr.ErrFileTooLarge, path, st.Size())
	}

	return Info{
		Path:        path,
		Name:        filepath.Base(path),
		Size:        st.Size(),
		ContentType: ContentType(path),
	}, nil
}

// Open validates path and opens a read stream over it.
func Open(path string) (*File, error) {
	info, err := Validate(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", apperr.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("open audio file: %w", err)
	}

	return &File{Info: info, f: f}, nil
}

func (a *File) Read(p []byte) (int, error) {
	return a.f.Read(p)
}

// Close releases the underlying file handle.
func (a *File) Close() error {
	a.closeOnce.Do(func() {
		a.closeErr = a.f.Close()
	})
	return a.closeErr
}

// ContentType determines the MIME type based on file extension
func ContentType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/m4a"
	case ".mp3", ".mpga", ".mpeg":
		return "audio/mpeg"
	case ".mp4":
		return "audio/mp4"
	case ".ogg":
		return "audio/ogg"
	case ".webm":
		return "audio/webm"
	case ".flac":
		return "audio/flac"
	default:
		return "audio/wav"
	}
}

// AllowedExtension reports whether the provider accepts files with this extension.
func AllowedExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav", ".m4a", ".mp3", ".mpga", ".mpeg", ".mp4", ".ogg", ".webm", ".flac":
		return true
	}
	return false
}
