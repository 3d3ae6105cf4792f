package stt

// Result represents the result of a speech-to-text transcription
type Result struct {
	Transcript string // The transcribed text, trimmed
	Provider   string // The provider used (e.g., "openai")
	Language   string // Language hint sent to the provider
	FileName   string // Name of the uploaded audio file
}
