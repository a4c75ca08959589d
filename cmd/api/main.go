package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bobarin/vocalforge/internal/api"
	"github.com/bobarin/vocalforge/internal/cache"
	"github.com/bobarin/vocalforge/internal/config"
	"github.com/bobarin/vocalforge/internal/db"
	"github.com/bobarin/vocalforge/internal/services"
)

func main() {
	log.Println("Starting VocalForge API...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	database, err := db.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	log.Println("Connected to database")

	// Connect to Redis generation cache
	history, err := cache.New(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	defer history.Close()
	log.Println("Connected to Redis cache")

	// Initialize the speech backend
	ctx := context.Background()
	gemini, err := services.NewGeminiService(ctx, cfg.GeminiKey, cfg.GeminiTTSModel, cfg.GeminiMultimodalModel)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini service: %v", err)
	}
	log.Printf("Speech backend: Gemini (model: %s)", cfg.GeminiTTSModel)

	// Transcription — Gemini multimodal by default, Whisper when configured
	var transcriber services.Transcriber = gemini
	if cfg.Transcriber == "whisper" {
		transcriber = services.NewWhisperTranscriber(cfg.OpenAIKey)
		log.Println("Transcription provider: OpenAI Whisper")
	} else {
		log.Printf("Transcription provider: Gemini (model: %s)", cfg.GeminiMultimodalModel)
	}

	generator := services.NewGenerator(gemini, transcriber)

	// Create API handler
	handler := api.NewHandler(database, history, generator)
	router := api.NewRouter(handler, api.RouterConfig{
		BackendAPIKey:      cfg.BackendAPIKey,
		CorsAllowedOrigins: cfg.CorsAllowedOrigins,
	})

	if cfg.BackendAPIKey != "" {
		log.Println("API key authentication enabled")
	} else {
		log.Println("WARNING: No BACKEND_API_KEY set — API is unprotected (dev mode)")
	}

	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("API server listening on :%s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
