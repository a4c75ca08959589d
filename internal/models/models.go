package models

import (
	"time"

	"github.com/google/uuid"
)

// Enums

type InputMode string

const (
	InputModeText  InputMode = "text"
	InputModeAudio InputMode = "audio"
)

// Numeric parameter domains. The input widgets clamp to these ranges;
// Normalize repairs anything that arrives outside them.
const (
	PitchMin = -12
	PitchMax = 12

	TimbreMin = -5
	TimbreMax = 5

	SpeakingRateMin = 50
	SpeakingRateMax = 150

	IndexRateMin = 0.0
	IndexRateMax = 1.0

	ProtectVolumeMin = 0.0
	ProtectVolumeMax = 0.5

	// MaxTextLength bounds the text input in UTF-16 code units, matching
	// the browser's textarea limit.
	MaxTextLength = 500

	// MaxAudioPayloadBytes bounds the decoded size of an uploaded clip.
	MaxAudioPayloadBytes = 10 << 20
)

// VoiceConfiguration is the full tuning surface for one generation call.
// It is treated as a value: the With*/Apply* helpers return updated copies
// with dependent fields cascaded in the same step (language change resets
// accent, module selection leaves singing mode).
type VoiceConfiguration struct {
	InputMode InputMode `json:"input_mode"`

	// Text is authoritative when InputMode is "text".
	Text string `json:"text,omitempty"`

	// AudioPayload is the base64-encoded source clip, authoritative when
	// InputMode is "audio". AudioMimeType is the declared upload type.
	AudioPayload  string `json:"audio_payload,omitempty"`
	AudioMimeType string `json:"audio_mime_type,omitempty"`

	Voice    string `json:"voice"`
	Language string `json:"language"`
	Accent   string `json:"accent"`

	Pitch        int    `json:"pitch"`
	Timbre       int    `json:"timbre"`
	SpeakingRate int    `json:"speaking_rate"`
	Emotion      string `json:"emotion"`

	IsSinging    bool   `json:"is_singing"`
	SingingStyle string `json:"singing_style,omitempty"`

	StylePrompt string `json:"style_prompt,omitempty"`

	// RVC tuning — meaningful for audio input or module-driven generation.
	IndexRate     float64 `json:"index_rate"`
	F0Method      string  `json:"f0_method"`
	ProtectVolume float64 `json:"protect_volume"`
}

// DefaultConfiguration returns the state the studio opens with.
func DefaultConfiguration() VoiceConfiguration {
	lang := AvailableLanguages[0]
	return VoiceConfiguration{
		InputMode:     InputModeText,
		Voice:         AvailableVoices[0].ID,
		Language:      lang.ID,
		Accent:        lang.Accents[0].Value,
		SpeakingRate:  100,
		Emotion:       AvailableEmotions[0].Value,
		SingingStyle:  AvailableSingingStyles[0].Value,
		IndexRate:     0.7,
		F0Method:      "rmvpe",
		ProtectVolume: 0.33,
	}
}

// Normalize clamps numeric fields to their domains and repairs the accent
// so it is always a member of the selected language's accent set.
func (c VoiceConfiguration) Normalize() VoiceConfiguration {
	c.Pitch = clampInt(c.Pitch, PitchMin, PitchMax)
	c.Timbre = clampInt(c.Timbre, TimbreMin, TimbreMax)
	c.SpeakingRate = clampInt(c.SpeakingRate, SpeakingRateMin, SpeakingRateMax)
	c.IndexRate = clampFloat(c.IndexRate, IndexRateMin, IndexRateMax)
	c.ProtectVolume = clampFloat(c.ProtectVolume, ProtectVolumeMin, ProtectVolumeMax)

	if c.InputMode != InputModeAudio {
		c.InputMode = InputModeText
	}

	lang, ok := LanguageByID(c.Language)
	if !ok {
		lang = AvailableLanguages[0]
		c.Language = lang.ID
	}
	if !lang.HasAccent(c.Accent) {
		c.Accent = lang.Accents[0].Value
	}
	return c
}

// WithLanguage switches language and always resets the accent to the new
// language's first accent, even when the old accent name also exists there.
func (c VoiceConfiguration) WithLanguage(languageID string) VoiceConfiguration {
	lang, ok := LanguageByID(languageID)
	if !ok {
		return c
	}
	c.Language = lang.ID
	c.Accent = lang.Accents[0].Value
	return c
}

// ApplyPreset restores a saved settings snapshot, then normalizes so the
// accent is valid for the preset's language.
func (c VoiceConfiguration) ApplyPreset(p Preset) VoiceConfiguration {
	s := p.Settings
	c.Voice = s.Voice
	c.Language = s.Language
	c.Accent = s.Accent
	c.Pitch = s.Pitch
	c.IsSinging = s.IsSinging
	c.SingingStyle = s.SingingStyle
	c.Timbre = s.Timbre
	c.SpeakingRate = s.SpeakingRate
	c.Emotion = s.Emotion
	c.StylePrompt = s.StylePrompt
	return c.Normalize()
}

// ApplyModule overwrites the active tuning surface with a voice module's
// settings. Modules are speech-focused, so singing mode is switched off.
func (c VoiceConfiguration) ApplyModule(m VoiceModule) VoiceConfiguration {
	s := m.Settings
	c.Voice = s.Voice
	c.Pitch = s.Pitch
	c.Timbre = s.Timbre
	c.SpeakingRate = s.SpeakingRate
	c.Emotion = s.Emotion
	c.StylePrompt = s.StylePrompt
	if s.IndexRate != nil {
		c.IndexRate = *s.IndexRate
	}
	if s.F0Method != nil {
		c.F0Method = *s.F0Method
	}
	if s.ProtectVolume != nil {
		c.ProtectVolume = *s.ProtectVolume
	}
	c.IsSinging = false
	return c.Normalize()
}

// Snapshot captures the preset-scoped subset of the configuration.
// Input mode, audio payload and RVC tuning are intentionally excluded.
func (c VoiceConfiguration) Snapshot() PresetSettings {
	return PresetSettings{
		Voice:        c.Voice,
		Language:     c.Language,
		Accent:       c.Accent,
		Pitch:        c.Pitch,
		IsSinging:    c.IsSinging,
		SingingStyle: c.SingingStyle,
		Timbre:       c.Timbre,
		SpeakingRate: c.SpeakingRate,
		Emotion:      c.Emotion,
		StylePrompt:  c.StylePrompt,
	}
}

// Preset is a named snapshot of the studio settings.
type Preset struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Settings  PresetSettings `json:"settings"`
	CreatedAt time.Time      `json:"created_at"`
}

type PresetSettings struct {
	Voice        string `json:"voice"`
	Language     string `json:"language"`
	Accent       string `json:"accent"`
	Pitch        int    `json:"pitch"`
	IsSinging    bool   `json:"is_singing"`
	SingingStyle string `json:"singing_style"`
	Timbre       int    `json:"timbre"`
	SpeakingRate int    `json:"speaking_rate"`
	Emotion      string `json:"emotion"`
	StylePrompt  string `json:"style_prompt,omitempty"`
}

// VoiceModule is a reusable bundle of voice-conversion tuning. Built-in
// modules ship with the binary and can never be deleted; user modules are
// persisted and deletable.
type VoiceModule struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ColorTag    string         `json:"color_tag"`
	BuiltIn     bool           `json:"built_in"`
	Settings    ModuleSettings `json:"settings"`
	Source      *ModuleSource  `json:"source,omitempty"`
	CreatedAt   time.Time      `json:"created_at,omitempty"`
}

type ModuleSettings struct {
	Voice        string `json:"voice"`
	Pitch        int    `json:"pitch"`
	Timbre       int    `json:"timbre"`
	SpeakingRate int    `json:"speaking_rate"`
	Emotion      string `json:"emotion"`
	StylePrompt  string `json:"style_prompt"`

	// RVC tuning is optional on modules; nil means "keep current".
	IndexRate     *float64 `json:"index_rate,omitempty"`
	F0Method      *string  `json:"f0_method,omitempty"`
	ProtectVolume *float64 `json:"protect_volume,omitempty"`
}

type ModuleSourceType string

const (
	ModuleSourceURL  ModuleSourceType = "url"
	ModuleSourceFile ModuleSourceType = "file"
)

// ModuleSource records where an imported module claims to come from.
// The import "analysis" is cosmetic — only the metadata is kept.
type ModuleSource struct {
	Type  ModuleSourceType `json:"type"`
	Model string           `json:"model"`
	Index string           `json:"index,omitempty"`
}

// Generation is one completed generation result. Only the most recent
// window of generations is retained (see internal/cache).
type Generation struct {
	ID         uuid.UUID `json:"id"`
	InputMode  InputMode `json:"input_mode"`
	Voice      string    `json:"voice"`
	Language   string    `json:"language"`
	IsSinging  bool      `json:"is_singing"`
	Transcript string    `json:"transcript,omitempty"` // audio pipeline only

	// Audio is the raw PCM16LE payload; JSON encodes it as base64.
	Audio      []byte `json:"audio,omitempty"`
	SampleRate int    `json:"sample_rate"`
	Channels   int    `json:"channels"`

	CreatedAt time.Time `json:"created_at"`
}

// GenerationSummary is the audio-free view used by history listings.
type GenerationSummary struct {
	ID         uuid.UUID `json:"id"`
	InputMode  InputMode `json:"input_mode"`
	Voice      string    `json:"voice"`
	Language   string    `json:"language"`
	IsSinging  bool      `json:"is_singing"`
	AudioBytes int       `json:"audio_bytes"`
	CreatedAt  time.Time `json:"created_at"`
}

// Summary strips the audio payload for listing responses.
func (g *Generation) Summary() GenerationSummary {
	return GenerationSummary{
		ID:         g.ID,
		InputMode:  g.InputMode,
		Voice:      g.Voice,
		Language:   g.Language,
		IsSinging:  g.IsSinging,
		AudioBytes: len(g.Audio),
		CreatedAt:  g.CreatedAt,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
