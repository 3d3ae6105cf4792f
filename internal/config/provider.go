package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"legalvoice/internal/apperr"
)

// Provider supplies the credentials and prompt template used by the pipeline.
// Implementations must not cache: rotated values take effect on the next call.
type Provider interface {
	APIKey() (string, error)
	PromptTemplate() (string, error)
}

// FileProvider reads the key and prompt documents from disk on every call.
// The decoder is picked from the file extension: .json, .yaml/.yml or .toml.
type FileProvider struct {
	KeyPath    string
	PromptPath string
}

func NewFileProvider(keyPath, promptPath string) *FileProvider {
	return &FileProvider{KeyPath: keyPath, PromptPath: promptPath}
}

// APIKey returns the non-empty "key" field of the key document.
func (p *FileProvider) APIKey() (string, error) {
	key, err := readField(p.KeyPath, "key")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(key) == "" {
		return "", fmt.Errorf("%w: field %q in %s is empty", apperr.ErrConfigurationMissing, "key", p.KeyPath)
	}
	return strings.TrimSpace(key), nil
}

// PromptTemplate returns the "prompt" field of the prompt document. An empty
// prompt is valid and means no extra context.
func (p *FileProvider) PromptTemplate() (string, error) {
	return readField(p.PromptPath, "prompt")
}

func readField(path, field string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: no path configured for %q", apperr.ErrConfigurationMissing, field)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", apperr.ErrConfigurationMissing, path, err)
	}

	doc := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	case ".toml":
		_, err = toml.Decode(string(data), &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return "", fmt.Errorf("%w: parse %s: %v", apperr.ErrConfigurationMissing, path, err)
	}

	raw, ok := doc[field]
	if !ok {
		return "", fmt.Errorf("%w: field %q missing in %s", apperr.ErrConfigurationMissing, field, path)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q in %s is %T, want string", apperr.ErrConfigurationMissing, field, path, raw)
	}
	return value, nil
}

// Static is a fixed in-memory Provider.
type Static struct {
	Key    string
	Prompt string
}

func (s Static) APIKey() (string, error) {
	if s.Key == "" {
		return "", fmt.Errorf("%w: api key not set", apperr.ErrConfigurationMissing)
	}
	return s.Key, nil
}

func (s Static) PromptTemplate() (string, error) {
	return s.Prompt, nil
}
