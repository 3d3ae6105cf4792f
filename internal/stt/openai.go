package stt

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"legalvoice/internal/apperr"
	"legalvoice/internal/audio"
	"legalvoice/internal/config"
	"legalvoice/internal/logger"
	"legalvoice/internal/openaiclient"
)

const (
	TranscriptionModel    = openai.Whisper1
	TranscriptionLanguage = "en"
	TranscriptionTimeout  = 30 * time.Second
)

// OpenAIProvider implements Transcriber against the OpenAI audio API.
type OpenAIProvider struct {
	config  config.Provider
	baseURL string
	Timeout time.Duration
	log     *logrus.Entry
}

// NewOpenAIProvider creates a new OpenAI transcription provider
func NewOpenAIProvider(cfg config.Provider, baseURL string, log *logrus.Entry) *OpenAIProvider {
	return &OpenAIProvider{
		config:  cfg,
		baseURL: baseURL,
		Timeout: TranscriptionTimeout,
		log:     logger.OrDiscard(log),
	}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Transcribe sends file as a multipart upload and returns the recognized text.
func (p *OpenAIProvider) Transcribe(ctx context.Context, file *audio.File) (*Result, error) {
	apiKey, err := p.config.APIKey()
	if err != nil {
		return nil, err
	}

	log := p.log.WithFields(logrus.Fields{
		"file":         file.Name,
		"size":         file.Size,
		"content_type": file.ContentType,
	})
	log.Info("sending audio for transcription")

	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	client := openaiclient.New(apiKey, p.baseURL, p.Timeout)
	resp, err := client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    TranscriptionModel,
		Reader:   file,
		FilePath: file.Name,
		Language: TranscriptionLanguage,
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		err = translateError(err)
		log.WithError(err).Warn("transcription failed")
		return nil, err
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: provider returned empty text", apperr.ErrTranscriptionFailed)
	}

	log.WithField("transcript_len", len(text)).Info("transcription completed")

	return &Result{
		Transcript: text,
		Provider:   p.Name(),
		Language:   TranscriptionLanguage,
		FileName:   file.Name,
	}, nil
}

func translateError(err error) error {
	if status, ok := openaiclient.StatusCode(err); ok && status == http.StatusBadRequest {
		return fmt.Errorf("%w: please ensure the file is WAV format with proper encoding: %v",
			apperr.ErrInvalidAudioFormat, err)
	}
	return fmt.Errorf("%w: %v", apperr.ErrTranscriptionFailed, err)
}
