package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string
	DBPath            string
	LogLevel          string
	WordsCSV          string
	AudioDir          string
	StaticDir         string
	SessionTTLMinutes int
	QuizFeedbackMS    int
	DefaultWordCount  int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:              envOr("ADDR", ":8080"),
		DBPath:            envOr("DB_PATH", "file:hskdrill.db"),
		LogLevel:          envOr("LOG_LEVEL", "INFO"),
		WordsCSV:          envOr("WORDS_CSV", ""),
		AudioDir:          envOr("AUDIO_DIR", "web/static/audio"),
		StaticDir:         envOr("STATIC_DIR", "web/static"),
		SessionTTLMinutes: envIntOr("SESSION_TTL_MINUTES", 120),
		QuizFeedbackMS:    envIntOr("QUIZ_FEEDBACK_MS", 1200),
		DefaultWordCount:  envIntOr("DEFAULT_WORD_COUNT", 20),
	}
}

// Validate checks that the loaded configuration is usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.SessionTTLMinutes <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive, got %d", c.SessionTTLMinutes)
	}
	if c.QuizFeedbackMS < 0 {
		return fmt.Errorf("QUIZ_FEEDBACK_MS cannot be negative, got %d", c.QuizFeedbackMS)
	}
	if c.DefaultWordCount <= 0 {
		return fmt.Errorf("DEFAULT_WORD_COUNT must be positive, got %d", c.DefaultWordCount)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
