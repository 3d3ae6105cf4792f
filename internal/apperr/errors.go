// Package apperr holds the error taxonomy shared by the audio-to-template pipeline.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrFileNotFound         = errors.New("file not found")
	ErrFileTooLarge         = errors.New("file size exceeds 25MB limit")
	ErrInvalidAudioFormat   = errors.New("invalid audio file format")
	ErrTranscriptionFailed  = errors.New("transcription failed")
	ErrConfigurationMissing = errors.New("configuration missing")
	ErrEmptyCompletion      = errors.New("empty completion")
	ErrMergeFailed          = errors.New("merge failed")
)

// HTTPStatus maps a pipeline error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidAudioFormat):
		return http.StatusBadRequest
	case errors.Is(err, ErrConfigurationMissing):
		return http.StatusInternalServerError
	case errors.Is(err, ErrTranscriptionFailed),
		errors.Is(err, ErrEmptyCompletion),
		errors.Is(err, ErrMergeFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Retryable reports whether err is a transient provider or transport failure.
func Retryable(err error) bool {
	return errors.Is(err, ErrTranscriptionFailed) || errors.Is(err, ErrMergeFailed)
}
