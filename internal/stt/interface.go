package stt

import (
	"context"

	"legalvoice/internal/audio"
)

// Transcriber defines the interface for speech-to-text providers
type Transcriber interface {
	// Transcribe uploads an open audio stream and returns the recognized text.
	// The caller owns the stream and closes it.
	Transcribe(ctx context.Context, file *audio.File) (*Result, error)

	// Name returns the name of the provider (e.g., "openai")
	Name() string
}
