package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	APIPort            string
	BackendAPIKey      string // API key for authenticating requests (empty = no auth, dev mode)
	CorsAllowedOrigins string // Comma-separated allowed origins (empty = *, dev mode)

	// Database
	DatabaseURL string

	// Redis
	RedisURL string

	// Gemini (speech synthesis + default transcription)
	GeminiKey             string
	GeminiTTSModel        string // Speech model identifier
	GeminiMultimodalModel string // Model used for audio transcription

	// OpenAI (optional Whisper transcription)
	OpenAIKey   string
	Transcriber string // "gemini" (default) or "whisper"
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	cfg := &Config{
		APIPort:               getEnv("API_PORT", "8080"),
		BackendAPIKey:         getEnv("BACKEND_API_KEY", ""),
		CorsAllowedOrigins:    getEnv("CORS_ALLOWED_ORIGINS", ""),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		RedisURL:              getEnv("REDIS_URL", "redis://localhost:6379"),
		GeminiKey:             getEnv("GEMINI_API_KEY", ""),
		GeminiTTSModel:        getEnv("GEMINI_TTS_MODEL", "gemini-2.5-flash-preview-tts"),
		GeminiMultimodalModel: getEnv("GEMINI_MULTIMODAL_MODEL", "gemini-2.5-flash"),
		OpenAIKey:             getEnv("OPENAI_API_KEY", ""),
		Transcriber:           getEnv("TRANSCRIBER", "gemini"),
	}

	// Validate required fields
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.GeminiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}

	if cfg.Transcriber != "gemini" && cfg.Transcriber != "whisper" {
		return nil, fmt.Errorf("TRANSCRIBER must be \"gemini\" or \"whisper\", got %q", cfg.Transcriber)
	}

	if cfg.Transcriber == "whisper" && cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required when TRANSCRIBER=whisper")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}
