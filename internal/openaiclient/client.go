// Package openaiclient builds go-openai clients shared by the transcription
// and merge stages.
package openaiclient

import (
	"errors"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
)

// New creates an OpenAI client for a single call. Keys are read per call,
// so clients are never shared between requests.
func New(apiKey, baseURL string, timeout time.Duration) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return openai.NewClientWithConfig(cfg)
}

// StatusCode extracts the provider's HTTP status from a go-openai error.
func StatusCode(err error) (int, bool) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return apiErr.HTTPStatusCode, true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return reqErr.HTTPStatusCode, true
	}
	return 0, false
}
