package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"legalvoice/internal/apperr"
	"legalvoice/internal/config"
	"legalvoice/internal/logger"
	"legalvoice/internal/openaiclient"
)

const (
	MergeModel   = openai.GPT3Dot5Turbo
	MergeTimeout = 30 * time.Second
)

// MergeRequest is the input of one merge call. An empty ExistingTemplate
// selects the transcript-only variant.
type MergeRequest struct {
	SpokenText       string
	ExistingTemplate string
}

// MergeResult is the externally visible outcome of a merge. It is either a
// success carrying MergedText or a failure carrying Error, never both.
type MergeResult struct {
	Success          bool   `json:"success"`
	MergedText       string `json:"mergedText,omitempty"`
	SpokenText       string `json:"spokenText"`
	OriginalTemplate string `json:"originalTemplate,omitempty"`
	Error            string `json:"error,omitempty"`
}

// Merger produces merged template text through the chat-completion API.
type Merger struct {
	config  config.Provider
	baseURL string
	Timeout time.Duration
	log     *logrus.Entry
}

func NewMerger(cfg config.Provider, baseURL string, log *logrus.Entry) *Merger {
	return &Merger{
		config:  cfg,
		baseURL: baseURL,
		Timeout: MergeTimeout,
		log:     logger.OrDiscard(log),
	}
}

// Merge runs one merge call. The returned result is always well-formed; err is
// non-nil exactly when result.Success is false.
func (m *Merger) Merge(ctx context.Context, req MergeRequest) (MergeResult, error) {
	result := MergeResult{
		SpokenText:       req.SpokenText,
		OriginalTemplate: req.ExistingTemplate,
	}

	text, err := m.merge(ctx, req)
	if err != nil {
		m.log.WithError(err).Warn("template merge failed")
		result.Error = err.Error()
		return result, err
	}

	result.Success = true
	result.MergedText = text
	return result, nil
}

func (m *Merger) merge(ctx context.Context, req MergeRequest) (string, error) {
	if strings.TrimSpace(req.SpokenText) == "" {
		return "", fmt.Errorf("%w: missing transcript", apperr.ErrMergeFailed)
	}

	apiKey, err := m.config.APIKey()
	if err != nil {
		return "", err
	}
	promptTemplate, err := m.config.PromptTemplate()
	if err != nil {
		return "", err
	}

	withTemplate := strings.TrimSpace(req.ExistingTemplate) != ""

	var messages []openai.ChatCompletionMessage
	params := formatParams
	if withTemplate {
		messages = BuildTemplateMessages(req.SpokenText, req.ExistingTemplate, promptTemplate)
		params = templateParams
	} else {
		messages = BuildFormatMessages(req.SpokenText, promptTemplate)
	}

	log := m.log.WithFields(logrus.Fields{
		"with_template":  withTemplate,
		"transcript_len": len(req.SpokenText),
		"model":          MergeModel,
	})
	log.Info("calling chat completion")

	ctx, cancel := context.WithTimeout(ctx, m.Timeout)
	defer cancel()

	client := openaiclient.New(apiKey, m.baseURL, m.Timeout)
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:            MergeModel,
		Messages:         messages,
		Temperature:      params.Temperature,
		MaxTokens:        params.MaxTokens,
		TopP:             params.TopP,
		FrequencyPenalty: params.FrequencyPenalty,
		PresencePenalty:  params.PresencePenalty,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrMergeFailed, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: provider returned no choices", apperr.ErrEmptyCompletion)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if withTemplate {
		content = StripQuotes(content)
	}
	if content == "" {
		return "", fmt.Errorf("%w: provider returned blank content", apperr.ErrEmptyCompletion)
	}

	log.WithFields(logrus.Fields{
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
		"merged_len":        len(content),
	}).Info("chat completion received")
	log.WithField("preview", truncateString(content, 80)).Debug("merged text")

	return content, nil
}

// truncateString truncates s to at most maxLen runes
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
