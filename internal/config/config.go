package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Port          string
	OpenAIBaseURL string
	KeyFile       string
	PromptFile    string
	UploadDir     string // served publicly under /uploads
	TransientDir  string // in-flight audio, never served
	CORSOrigin    string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	RetryMaxAttempts     int
	RetryInitialInterval time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		OpenAIBaseURL:   getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		KeyFile:         getEnv("KEY_FILE", "config/key.json"),
		PromptFile:      getEnv("PROMPT_FILE", "config/prompt.json"),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		TransientDir:    getEnv("TRANSIENT_UPLOAD_DIR", filepath.Join(os.TempDir(), "legalvoice-uploads")),
		CORSOrigin:      getEnv("CORS_ORIGIN", "http://localhost:3000"),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDatabase:   getEnv("MONGO_DATABASE", "legalvoice"),
		MongoCollection: getEnv("MONGO_COLLECTION", "sections"),
	}

	attempts, err := strconv.Atoi(getEnv("RETRY_MAX_ATTEMPTS", "1"))
	if err != nil {
		return nil, fmt.Errorf("RETRY_MAX_ATTEMPTS must be an integer: %w", err)
	}
	if attempts < 1 {
		return nil, fmt.Errorf("RETRY_MAX_ATTEMPTS must be at least 1, got %d", attempts)
	}
	cfg.RetryMaxAttempts = attempts

	interval, err := time.ParseDuration(getEnv("RETRY_INITIAL_INTERVAL", "500ms"))
	if err != nil {
		return nil, fmt.Errorf("RETRY_INITIAL_INTERVAL must be a duration: %w", err)
	}
	cfg.RetryInitialInterval = interval

	if sameDir(cfg.UploadDir, cfg.TransientDir) {
		return nil, fmt.Errorf("TRANSIENT_UPLOAD_DIR must differ from UPLOAD_DIR (%s)", cfg.UploadDir)
	}

	// The OpenAI key and prompt are not validated here: they live in the
	// config store and are read on every pipeline call.

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
