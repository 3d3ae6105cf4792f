package stt

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legalvoice/internal/apperr"
	"legalvoice/internal/audio"
	"legalvoice/internal/config"
)

func openSample(t *testing.T) *audio.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "note.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF....WAVEfmt fake"), 0o644))
	f, err := audio.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func newServer(t *testing.T, calls *int32, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIProvider_Transcribe(t *testing.T) {
	var calls int32
	srv := newServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "en", r.FormValue("language"))
		assert.Equal(t, "json", r.FormValue("response_format"))

		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "note.wav", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"text": "  five hundred dollars \n"})
	})

	p := NewOpenAIProvider(config.Static{Key: "sk-test"}, srv.URL+"/v1", nil)
	res, err := p.Transcribe(context.Background(), openSample(t))
	require.NoError(t, err)
	assert.Equal(t, "five hundred dollars", res.Transcript)
	assert.Equal(t, "openai", res.Provider)
	assert.Equal(t, "note.wav", res.FileName)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestOpenAIProvider_BadRequestIsInvalidFormat(t *testing.T) {
	var calls int32
	srv := newServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid file format.","type":"invalid_request_error"}}`))
	})

	p := NewOpenAIProvider(config.Static{Key: "sk-test"}, srv.URL+"/v1", nil)
	_, err := p.Transcribe(context.Background(), openSample(t))
	require.ErrorIs(t, err, apperr.ErrInvalidAudioFormat)
	assert.Contains(t, err.Error(), "WAV format")
}

func TestOpenAIProvider_ServerErrorIsTranscriptionFailed(t *testing.T) {
	var calls int32
	srv := newServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	})

	p := NewOpenAIProvider(config.Static{Key: "sk-test"}, srv.URL+"/v1", nil)
	_, err := p.Transcribe(context.Background(), openSample(t))
	require.ErrorIs(t, err, apperr.ErrTranscriptionFailed)
	assert.NotErrorIs(t, err, apperr.ErrInvalidAudioFormat)
}

func TestOpenAIProvider_EmptyText(t *testing.T) {
	var calls int32
	srv := newServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":"   "}`))
	})

	p := NewOpenAIProvider(config.Static{Key: "sk-test"}, srv.URL+"/v1", nil)
	_, err := p.Transcribe(context.Background(), openSample(t))
	assert.ErrorIs(t, err, apperr.ErrTranscriptionFailed)
}

func TestOpenAIProvider_Timeout(t *testing.T) {
	var calls int32
	srv := newServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	p := NewOpenAIProvider(config.Static{Key: "sk-test"}, srv.URL+"/v1", nil)
	p.Timeout = 50 * time.Millisecond

	_, err := p.Transcribe(context.Background(), openSample(t))
	assert.ErrorIs(t, err, apperr.ErrTranscriptionFailed)
}

func TestOpenAIProvider_MissingKeyMakesNoRequest(t *testing.T) {
	var calls int32
	srv := newServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {})

	p := NewOpenAIProvider(config.NewFileProvider(filepath.Join(t.TempDir(), "nope.json"), ""), srv.URL+"/v1", nil)
	_, err := p.Transcribe(context.Background(), openSample(t))
	require.ErrorIs(t, err, apperr.ErrConfigurationMissing)
	assert.EqualValues(t, 0, atomic.LoadInt32(&calls))
}
