// Package pipeline chains audio validation, transcription and template merging.
package pipeline

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"legalvoice/internal/ai"
	"legalvoice/internal/apperr"
	"legalvoice/internal/audio"
	"legalvoice/internal/logger"
	"legalvoice/internal/retry"
	"legalvoice/internal/stt"
)

// Merger is the template-merge stage.
type Merger interface {
	Merge(ctx context.Context, req ai.MergeRequest) (ai.MergeResult, error)
}

// Pipeline holds no per-request state and is safe for concurrent use.
type Pipeline struct {
	transcriber stt.Transcriber
	merger      Merger
	policy      retry.Policy
	log         *logrus.Entry
}

func New(transcriber stt.Transcriber, merger Merger, policy retry.Policy, log *logrus.Entry) *Pipeline {
	return &Pipeline{
		transcriber: transcriber,
		merger:      merger,
		policy:      policy,
		log:         logger.OrDiscard(log),
	}
}

// Transcribe validates the file at path and returns its transcript. The audio
// stream is opened per attempt and always closed before returning.
func (p *Pipeline) Transcribe(ctx context.Context, path string) (string, error) {
	if _, err := audio.Validate(path); err != nil {
		return "", err
	}

	log := p.log.WithFields(logrus.Fields{
		"path":     path,
		"provider": p.transcriber.Name(),
	})

	var transcript string
	err := p.policy.Do(ctx, apperr.Retryable, func(attempt int) error {
		f, err := audio.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		res, err := p.transcriber.Transcribe(ctx, f)
		if err != nil {
			log.WithField("attempt", attempt).WithError(err).Warn("transcription attempt failed")
			return err
		}
		transcript = res.Transcript
		return nil
	})
	if err != nil {
		return "", err
	}

	return transcript, nil
}

// MergeTemplate merges spokenText into existingTemplate. An empty template
// asks for a cleaned-up transcript instead. The result is always well-formed;
// err is non-nil exactly when the result reports failure.
func (p *Pipeline) MergeTemplate(ctx context.Context, spokenText, existingTemplate string) (ai.MergeResult, error) {
	req := ai.MergeRequest{SpokenText: spokenText, ExistingTemplate: existingTemplate}

	// Nothing to retry without a transcript.
	if strings.TrimSpace(spokenText) == "" {
		return p.merger.Merge(ctx, req)
	}

	var result ai.MergeResult
	err := p.policy.Do(ctx, apperr.Retryable, func(attempt int) error {
		var err error
		result, err = p.merger.Merge(ctx, req)
		if err != nil {
			p.log.WithField("attempt", attempt).WithError(err).Warn("merge attempt failed")
		}
		return err
	})
	if err != nil && result.Error == "" {
		// Keep Error in step with err for mergers that leave it blank.
		result = ai.MergeResult{
			SpokenText:       spokenText,
			OriginalTemplate: existingTemplate,
			Error:            err.Error(),
		}
	}
	return result, err
}

// TranscribeAndMerge runs both stages. A transcription failure is reported in
// the same result shape as a merge failure.
func (p *Pipeline) TranscribeAndMerge(ctx context.Context, path, existingTemplate string) (ai.MergeResult, error) {
	transcript, err := p.Transcribe(ctx, path)
	if err != nil {
		return ai.MergeResult{
			OriginalTemplate: existingTemplate,
			Error:            err.Error(),
		}, err
	}
	return p.MergeTemplate(ctx, transcript, existingTemplate)
}
