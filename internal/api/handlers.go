package api

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/bobarin/vocalforge/internal/audio"
	"github.com/bobarin/vocalforge/internal/models"
	"github.com/bobarin/vocalforge/internal/services"
)

// Store is the persistence surface the handlers need. *db.DB satisfies it.
type Store interface {
	CreatePreset(ctx context.Context, preset *models.Preset) error
	ListPresets(ctx context.Context) ([]models.Preset, error)
	DeletePreset(ctx context.Context, id uuid.UUID) error

	CreateModule(ctx context.Context, module *models.VoiceModule) error
	ListModules(ctx context.Context) ([]models.VoiceModule, error)
	DeleteModule(ctx context.Context, id string) error
}

// History is the recent-generation cache surface. *cache.Cache satisfies it.
type History interface {
	Store(ctx context.Context, gen *models.Generation) error
	Get(ctx context.Context, id uuid.UUID) (*models.Generation, error)
	Recent(ctx context.Context) ([]models.Generation, error)
}

// Generator runs one synthesis pipeline. *services.Generator satisfies it.
type Generator interface {
	Generate(ctx context.Context, cfg models.VoiceConfiguration) (*models.Generation, error)
}

type Handler struct {
	store     Store
	history   History
	generator Generator

	// Identical configurations submitted concurrently share one backend
	// call instead of fanning out.
	flight singleflight.Group
}

func NewHandler(store Store, history History, generator Generator) *Handler {
	return &Handler{
		store:     store,
		history:   history,
		generator: generator,
	}
}

// Health check
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Catalog ---

// ListVoices handles GET /v1/catalog/voices
func (h *Handler) ListVoices(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.AvailableVoices)
}

// ListLanguages handles GET /v1/catalog/languages
func (h *Handler) ListLanguages(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.AvailableLanguages)
}

// ListSingingStyles handles GET /v1/catalog/singing-styles
func (h *Handler) ListSingingStyles(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.AvailableSingingStyles)
}

// ListEmotions handles GET /v1/catalog/emotions
func (h *Handler) ListEmotions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.AvailableEmotions)
}

// --- Generation ---

// Generate handles POST /v1/generate. Cheap validation runs locally so the
// obvious mistakes never cost a backend round trip.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var cfg models.VoiceConfiguration
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cfg = cfg.Normalize()

	if _, ok := models.VoiceByID(cfg.Voice); !ok {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Unknown voice %q", cfg.Voice))
		return
	}

	switch cfg.InputMode {
	case models.InputModeText:
		if strings.TrimSpace(cfg.Text) == "" {
			respondError(w, http.StatusBadRequest, "Text is required for text input")
			return
		}
		if len(utf16.Encode([]rune(cfg.Text))) > models.MaxTextLength {
			respondError(w, http.StatusBadRequest,
				fmt.Sprintf("Text exceeds the %d character limit", models.MaxTextLength))
			return
		}
	case models.InputModeAudio:
		if cfg.AudioPayload == "" {
			respondError(w, http.StatusBadRequest, "Audio payload is required for audio input")
			return
		}
		if base64.StdEncoding.DecodedLen(len(cfg.AudioPayload)) > models.MaxAudioPayloadBytes {
			respondError(w, http.StatusBadRequest, "Audio payload exceeds the 10MB limit")
			return
		}
		if cfg.AudioMimeType != "" && !strings.HasPrefix(cfg.AudioMimeType, "audio/") {
			respondError(w, http.StatusBadRequest,
				fmt.Sprintf("Unsupported audio type %q", cfg.AudioMimeType))
			return
		}
	}

	result, err, _ := h.flight.Do(configKey(cfg), func() (interface{}, error) {
		return h.generator.Generate(r.Context(), cfg)
	})
	if err != nil {
		respondError(w, statusForKind(services.KindOf(err)), services.UserMessage(err))
		return
	}
	gen := result.(*models.Generation)

	// History is best effort; a cache outage must not fail the generation.
	if h.history != nil {
		if err := h.history.Store(r.Context(), gen); err != nil {
			log.Printf("[API] Failed to cache generation %s: %v", gen.ID, err)
		}
	}

	respondJSON(w, http.StatusOK, gen)
}

// configKey collapses identical concurrent requests onto one flight.
func configKey(cfg models.VoiceConfiguration) string {
	data, err := json.Marshal(cfg)
	if err != nil {
		return uuid.NewString() // never shared
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindInvalidConfiguration:
		return http.StatusBadRequest
	case services.KindRateLimited:
		return http.StatusTooManyRequests
	case services.KindSafetyBlocked, services.KindModalityUnsupported:
		return http.StatusUnprocessableEntity
	case services.KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// --- Generation history ---

// ListGenerations handles GET /v1/generations. Audio payloads are stripped;
// clients fetch them per generation.
func (h *Handler) ListGenerations(w http.ResponseWriter, r *http.Request) {
	gens, err := h.history.Recent(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list generations")
		return
	}

	summaries := make([]models.GenerationSummary, 0, len(gens))
	for i := range gens {
		summaries = append(summaries, gens[i].Summary())
	}
	respondJSON(w, http.StatusOK, summaries)
}

// GetGeneration handles GET /v1/generations/{id}
func (h *Handler) GetGeneration(w http.ResponseWriter, r *http.Request) {
	gen, ok := h.generationFromPath(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, gen)
}

// GetGenerationWAV handles GET /v1/generations/{id}/wav. The raw PCM gets a
// RIFF header so the response opens in any player.
func (h *Handler) GetGenerationWAV(w http.ResponseWriter, r *http.Request) {
	gen, ok := h.generationFromPath(w, r)
	if !ok {
		return
	}

	wav := audio.EncodeWAV(gen.Audio, gen.SampleRate, gen.Channels)
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "generation-"+gen.ID.String()+".wav"))
	w.Header().Set("Content-Length", strconv.Itoa(len(wav)))
	w.WriteHeader(http.StatusOK)
	w.Write(wav)
}

// GetGenerationWaveform handles GET /v1/generations/{id}/waveform?width=N
func (h *Handler) GetGenerationWaveform(w http.ResponseWriter, r *http.Request) {
	gen, ok := h.generationFromPath(w, r)
	if !ok {
		return
	}

	width := 120
	if q := r.URL.Query().Get("width"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed < 1 || parsed > 4096 {
			respondError(w, http.StatusBadRequest, "width must be between 1 and 4096")
			return
		}
		width = parsed
	}

	samples, err := audio.DecodePCM16(gen.Audio)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Stored audio is corrupt")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"width":   width,
		"columns": audio.Envelope(samples, width),
	})
}

func (h *Handler) generationFromPath(w http.ResponseWriter, r *http.Request) (*models.Generation, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid generation ID")
		return nil, false
	}

	gen, err := h.history.Get(r.Context(), id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get generation")
		return nil, false
	}
	if gen == nil {
		respondError(w, http.StatusNotFound, "Generation not found")
		return nil, false
	}
	return gen, true
}

// --- Presets ---

// ListPresets handles GET /v1/presets
func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := h.store.ListPresets(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list presets")
		return
	}
	if presets == nil {
		presets = []models.Preset{}
	}
	respondJSON(w, http.StatusOK, presets)
}

// CreatePreset handles POST /v1/presets
func (h *Handler) CreatePreset(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(w, http.StatusBadRequest, "Preset name is required")
		return
	}

	preset := &models.Preset{
		ID:       uuid.New(),
		Name:     name,
		Settings: req.Settings,
	}
	if err := h.store.CreatePreset(r.Context(), preset); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create preset")
		return
	}

	respondJSON(w, http.StatusCreated, preset)
}

// DeletePreset handles DELETE /v1/presets/{id}
func (h *Handler) DeletePreset(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid preset ID")
		return
	}

	if err := h.store.DeletePreset(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondError(w, http.StatusNotFound, "Preset not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to delete preset")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// --- Voice modules ---

// ListModules handles GET /v1/modules. Built-in modules come first, then
// imported ones newest first.
func (h *Handler) ListModules(w http.ResponseWriter, r *http.Request) {
	imported, err := h.store.ListModules(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list voice modules")
		return
	}

	modules := make([]models.VoiceModule, 0, len(models.BuiltInModules)+len(imported))
	modules = append(modules, models.BuiltInModules...)
	modules = append(modules, imported...)
	respondJSON(w, http.StatusOK, modules)
}

// CreateModule handles POST /v1/modules
func (h *Handler) CreateModule(w http.ResponseWriter, r *http.Request) {
	var req models.ImportModuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(w, http.StatusBadRequest, "Module name is required")
		return
	}
	if req.Source != nil {
		switch req.Source.Type {
		case models.ModuleSourceURL, models.ModuleSourceFile:
		default:
			respondError(w, http.StatusBadRequest,
				fmt.Sprintf("Unknown module source type %q", req.Source.Type))
			return
		}
	}

	module := &models.VoiceModule{
		ID:          "vm_" + uuid.NewString(),
		Name:        name,
		Description: req.Description,
		ColorTag:    req.ColorTag,
		Settings:    req.Settings,
		Source:      req.Source,
	}
	if err := h.store.CreateModule(r.Context(), module); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to create voice module")
		return
	}

	respondJSON(w, http.StatusCreated, module)
}

// DeleteModule handles DELETE /v1/modules/{id}
func (h *Handler) DeleteModule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, ok := models.BuiltInModuleByID(id); ok {
		respondError(w, http.StatusForbidden, "Built-in modules cannot be deleted")
		return
	}

	if err := h.store.DeleteModule(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			respondError(w, http.StatusNotFound, "Voice module not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "Failed to delete voice module")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
