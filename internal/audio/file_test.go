package audio

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legalvoice/internal/apperr"
)

func writeFile(t *testing.T, name string, size int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(size))
	require.NoError(t, f.Close())
	return path
}

func TestValidate_NotFound(t *testing.T) {
	_, err := Validate(filepath.Join(t.TempDir(), "missing.wav"))
	assert.ErrorIs(t, err, apperr.ErrFileNotFound)
}

func TestValidate_Directory(t *testing.T) {
	_, err := Validate(t.TempDir())
	assert.ErrorIs(t, err, apperr.ErrFileNotFound)
}

func TestValidate_TooLarge(t *testing.T) {
	path := writeFile(t, "big.wav", MaxFileSize+1)

	_, err := Validate(path)
	assert.ErrorIs(t, err, apperr.ErrFileTooLarge)
}

func TestValidate_AtLimit(t *testing.T) {
	path := writeFile(t, "edge.wav", MaxFileSize)

	info, err := Validate(path)
	require.NoError(t, err)
	assert.Equal(t, MaxFileSize, info.Size)
	assert.Equal(t, "edge.wav", info.Name)
	assert.Equal(t, "audio/wav", info.ContentType)
}

func TestOpen_ReadAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp3")
	require.NoError(t, os.WriteFile(path, []byte("ID3 fake audio"), 0o644))

	f, err := Open(path)
	require.NoError(t, err)

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "ID3 fake audio", string(data))
	assert.Equal(t, "audio/mpeg", f.ContentType)

	require.NoError(t, f.Close())
	assert.NoError(t, f.Close(), "second close must be a no-op")
}

func TestOpen_NotFoundReturnsNoFile(t *testing.T) {
	f, err := Open(filepath.Join(t.TempDir(), "nope.wav"))
	assert.ErrorIs(t, err, apperr.ErrFileNotFound)
	assert.Nil(t, f)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "audio/wav", ContentType("a.WAV"))
	assert.Equal(t, "audio/m4a", ContentType("a.m4a"))
	assert.Equal(t, "audio/webm", ContentType("a.webm"))
	assert.Equal(t, "audio/wav", ContentType("a.unknown"))
}

func TestAllowedExtension(t *testing.T) {
	assert.True(t, AllowedExtension("memo.wav"))
	assert.True(t, AllowedExtension("memo.M4A"))
	assert.False(t, AllowedExtension("memo.txt"))
	assert.False(t, AllowedExtension("memo"))
}
