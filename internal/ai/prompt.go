package ai

import (
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// callParams are the fixed sampling settings of one merge variant.
type callParams struct {
	Temperature      float32
	MaxTokens        int
	TopP             float32
	FrequencyPenalty float32
	PresencePenalty  float32
}

var (
	// formatParams drive the transcript-only variant.
	formatParams = callParams{Temperature: 0.3, MaxTokens: 500, TopP: 1}
	// templateParams drive the transcript-plus-template variant.
	templateParams = callParams{Temperature: 0.2, MaxTokens: 1000, TopP: 1}
)

// BuildFormatMessages asks the model to clean up a transcript on its own.
func BuildFormatMessages(transcript, promptTemplate string) []openai.ChatCompletionMessage {
	system := `You are a legal document assistant. Your task is to format the following update in a clean, professional manner.
Return ONLY the formatted text without any additional commentary.`
	if strings.TrimSpace(promptTemplate) != "" {
		system += "\nUse this template as context: " + strings.TrimSpace(promptTemplate)
	}

	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
		{Role: openai.ChatMessageRoleUser, Content: strings.TrimSpace(transcript)},
	}
}

// BuildTemplateMessages asks the model for an updated version of an existing
// template, informed by what was spoken.
func BuildTemplateMessages(transcript, existingTemplate, promptTemplate string) []openai.ChatCompletionMessage {
	system := `You are a legal document assistant. You update existing legal document templates using spoken instructions.
Fill in or change only what the spoken text asks for and keep the rest of the template exactly as it is.
Return ONLY the updated value, without quotes, labels or any additional commentary.`
	if strings.TrimSpace(promptTemplate) != "" {
		system += "\nFollow these drafting instructions: " + strings.TrimSpace(promptTemplate)
	}

	user := fmt.Sprintf("Existing template:\n%s\n\nSpoken update:\n%s", existingTemplate, strings.TrimSpace(transcript))

	return []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
		{Role: openai.ChatMessageRoleUser, Content: user},
	}
}

// StripQuotes removes one pair of wrapping double or curly quotes from the
// ends of s. Interior quotes and apostrophes are left alone.
func StripQuotes(s string) string {
	s = strings.TrimSpace(s)
	for _, pair := range [][2]string{{`"`, `"`}, {"“", "”"}} {
		if len(s) >= len(pair[0])+len(pair[1]) && strings.HasPrefix(s, pair[0]) && strings.HasSuffix(s, pair[1]) {
			return strings.TrimSpace(s[len(pair[0]) : len(s)-len(pair[1])])
		}
	}
	return s
}
