package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestWithLanguageResetsAccent(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.Accent = "British"

	cfg = cfg.WithLanguage("Spanish")
	if cfg.Language != "Spanish" {
		t.Fatalf("expected language Spanish, got %s", cfg.Language)
	}
	if cfg.Accent != "Castilian" {
		t.Errorf("expected accent reset to Castilian, got %s", cfg.Accent)
	}
}

func TestWithLanguageResetsAccentEvenOnCollision(t *testing.T) {
	// "Standard" exists in both French and German accent sets. Switching
	// must still land on the new language's FIRST accent, not keep the old
	// string just because it happens to be valid.
	cfg := DefaultConfiguration().WithLanguage("German")
	if cfg.Accent != "Standard" {
		t.Fatalf("expected Standard, got %s", cfg.Accent)
	}

	cfg = cfg.WithLanguage("French")
	if cfg.Accent != "Standard" {
		t.Errorf("expected first French accent Standard, got %s", cfg.Accent)
	}

	cfg = cfg.WithLanguage("Portuguese")
	if cfg.Accent != "Brazilian" {
		t.Errorf("expected first Portuguese accent Brazilian, got %s", cfg.Accent)
	}
}

func TestWithLanguageUnknownIsNoop(t *testing.T) {
	cfg := DefaultConfiguration()
	got := cfg.WithLanguage("Klingon")
	if got != cfg {
		t.Errorf("unknown language should leave configuration unchanged")
	}
}

func TestNormalizeClampsDomains(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.Pitch = 99
	cfg.Timbre = -42
	cfg.SpeakingRate = 10
	cfg.IndexRate = 3.5
	cfg.ProtectVolume = -1

	cfg = cfg.Normalize()

	if cfg.Pitch != PitchMax {
		t.Errorf("pitch: got %d, want %d", cfg.Pitch, PitchMax)
	}
	if cfg.Timbre != TimbreMin {
		t.Errorf("timbre: got %d, want %d", cfg.Timbre, TimbreMin)
	}
	if cfg.SpeakingRate != SpeakingRateMin {
		t.Errorf("speaking rate: got %d, want %d", cfg.SpeakingRate, SpeakingRateMin)
	}
	if cfg.IndexRate != IndexRateMax {
		t.Errorf("index rate: got %v, want %v", cfg.IndexRate, IndexRateMax)
	}
	if cfg.ProtectVolume != ProtectVolumeMin {
		t.Errorf("protect volume: got %v, want %v", cfg.ProtectVolume, ProtectVolumeMin)
	}
}

func TestNormalizeRepairsAccentMembership(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.Language = "Spanish"
	cfg.Accent = "Australian" // valid for English, not Spanish

	cfg = cfg.Normalize()
	if cfg.Accent != "Castilian" {
		t.Errorf("expected accent repaired to Castilian, got %s", cfg.Accent)
	}
}

func TestApplyModuleForcesSpeechMode(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.IsSinging = true
	cfg.IndexRate = 0.5

	mod, ok := BuiltInModuleByID("vm_old_storyteller")
	if !ok {
		t.Fatal("built-in module missing")
	}

	cfg = cfg.ApplyModule(mod)
	if cfg.IsSinging {
		t.Error("module selection must disable singing mode")
	}
	if cfg.Voice != "Charon" || cfg.Pitch != -4 || cfg.SpeakingRate != 85 {
		t.Errorf("module settings not applied: %+v", cfg)
	}
	// Module carries no RVC tuning, so the existing value is kept.
	if cfg.IndexRate != 0.5 {
		t.Errorf("index rate should be untouched, got %v", cfg.IndexRate)
	}
}

func TestApplyModuleOverridesRVCTuning(t *testing.T) {
	rate := 0.9
	method := "crepe"
	mod := VoiceModule{
		ID:   "vm_test",
		Name: "Test",
		Settings: ModuleSettings{
			Voice:        "Kore",
			SpeakingRate: 100,
			Emotion:      "neutral",
			IndexRate:    &rate,
			F0Method:     &method,
		},
	}

	cfg := DefaultConfiguration().ApplyModule(mod)
	if cfg.IndexRate != 0.9 || cfg.F0Method != "crepe" {
		t.Errorf("RVC tuning not applied: indexRate=%v f0=%s", cfg.IndexRate, cfg.F0Method)
	}
}

func TestPresetRoundTrip(t *testing.T) {
	cfg := DefaultConfiguration().WithLanguage("Portuguese")
	cfg.Voice = "Puck"
	cfg.Pitch = 7
	cfg.Emotion = "sad"
	cfg.StylePrompt = "like a radio host"

	preset := Preset{ID: uuid.New(), Name: "radio", Settings: cfg.Snapshot()}

	restored := DefaultConfiguration().ApplyPreset(preset)
	if restored.Voice != "Puck" || restored.Pitch != 7 || restored.Emotion != "sad" {
		t.Errorf("preset settings not restored: %+v", restored)
	}
	if restored.Language != "Portuguese" || restored.Accent != "Brazilian" {
		t.Errorf("language/accent not restored: %s/%s", restored.Language, restored.Accent)
	}
	if restored.StylePrompt != "like a radio host" {
		t.Errorf("style prompt not restored: %q", restored.StylePrompt)
	}
}

func TestSnapshotExcludesTransientFields(t *testing.T) {
	cfg := DefaultConfiguration()
	cfg.Text = "hello"
	cfg.AudioPayload = "AAAA"
	cfg.IndexRate = 0.9

	s := cfg.Snapshot()
	// PresetSettings has no input/payload/RVC fields; just sanity-check the
	// snapshot carries the right tuning values.
	if s.Voice != cfg.Voice || s.SpeakingRate != cfg.SpeakingRate {
		t.Errorf("snapshot mismatch: %+v", s)
	}
}

func TestLanguageCatalogShape(t *testing.T) {
	if AvailableLanguages[0].ID != "English" {
		t.Fatalf("English must be the default language, got %s", AvailableLanguages[0].ID)
	}
	for _, l := range AvailableLanguages {
		if len(l.Accents) == 0 {
			t.Errorf("language %s has no accents", l.ID)
		}
	}
	if len(AvailableVoices) != 5 || len(AvailableEmotions) != 6 || len(AvailableSingingStyles) != 5 {
		t.Errorf("catalog sizes changed: voices=%d emotions=%d styles=%d",
			len(AvailableVoices), len(AvailableEmotions), len(AvailableSingingStyles))
	}
}
