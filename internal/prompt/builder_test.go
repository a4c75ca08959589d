package prompt

import (
	"strings"
	"testing"

	"github.com/bobarin/vocalforge/internal/models"
)

func baseConfig() models.VoiceConfiguration {
	cfg := models.DefaultConfiguration()
	cfg.Text = "Hello"
	cfg.Accent = "Standard"
	return cfg
}

func TestSpeechInstructionBaseline(t *testing.T) {
	cfg := baseConfig()
	cfg.Emotion = "happy"

	got := Build(cfg).Instruction
	want := "Speak the following text in English in a happy tone.\n\nText: \"Hello\""
	if got != want {
		t.Errorf("instruction mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	cfg := baseConfig()
	cfg.Emotion = "excited"
	cfg.Pitch = 6
	cfg.Timbre = -2
	cfg.SpeakingRate = 130
	cfg.StylePrompt = "like a pirate"

	first := Build(cfg)
	for i := 0; i < 10; i++ {
		if got := Build(cfg); got != first {
			t.Fatalf("run %d differs from first build", i)
		}
	}
}

func TestAccentClause(t *testing.T) {
	cfg := baseConfig()
	cfg.Accent = "British"

	got := Build(cfg).Instruction
	if !strings.Contains(got, "in English with an British accent") {
		t.Errorf("accent clause missing: %q", got)
	}

	cfg.Accent = "Standard"
	got = Build(cfg).Instruction
	if strings.Contains(got, "with an") {
		t.Errorf("Standard accent must not produce an accent clause: %q", got)
	}

	cfg.Accent = ""
	got = Build(cfg).Instruction
	if strings.Contains(got, "with an") {
		t.Errorf("empty accent must not produce an accent clause: %q", got)
	}
}

func TestPitchBucketBoundaries(t *testing.T) {
	tests := []struct {
		pitch int
		want  string
	}{
		{12, "at a very high pitch"},
		{9, "at a very high pitch"},
		{8, "at a high pitch"},
		{5, "at a high pitch"},
		{4, "at a slightly high pitch"},
		{1, "at a slightly high pitch"},
		{0, ""},
		{-1, "at a slightly low pitch"},
		{-4, "at a slightly low pitch"},
		{-5, "at a low pitch"},
		{-8, "at a low pitch"},
		{-9, "at a very low pitch"},
		{-12, "at a very low pitch"},
	}

	for _, tt := range tests {
		cfg := baseConfig()
		cfg.Pitch = tt.pitch
		got := Build(cfg).Instruction

		if tt.want == "" {
			if strings.Contains(got, "pitch") {
				t.Errorf("pitch=%d: expected no pitch modifier, got %q", tt.pitch, got)
			}
			continue
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("pitch=%d: want %q in %q", tt.pitch, tt.want, got)
		}
	}
}

func TestTimbreBucketBoundaries(t *testing.T) {
	tests := []struct {
		timbre int
		want   string
	}{
		{4, "with a very bright timbre"},
		{3, "with a bright timbre"},
		{1, "with a bright timbre"},
		{0, ""},
		{-1, "with a deep timbre"},
		{-3, "with a deep timbre"},
		{-4, "with a very deep timbre"},
	}

	for _, tt := range tests {
		cfg := baseConfig()
		cfg.Timbre = tt.timbre
		got := Build(cfg).Instruction

		if tt.want == "" {
			if strings.Contains(got, "timbre") {
				t.Errorf("timbre=%d: expected no modifier, got %q", tt.timbre, got)
			}
			continue
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("timbre=%d: want %q in %q", tt.timbre, tt.want, got)
		}
	}
}

func TestRateBucketBoundaries(t *testing.T) {
	tests := []struct {
		rate int
		want string
	}{
		{126, "at a very fast pace"},
		{125, "at a fast pace"},
		{101, "at a fast pace"},
		{100, ""},
		{99, "at a slow pace"},
		{75, "at a slow pace"},
		{74, "at a very slow pace"},
	}

	for _, tt := range tests {
		cfg := baseConfig()
		cfg.SpeakingRate = tt.rate
		got := Build(cfg).Instruction

		if tt.want == "" {
			if strings.Contains(got, "pace") {
				t.Errorf("rate=%d: expected no modifier, got %q", tt.rate, got)
			}
			continue
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("rate=%d: want %q in %q", tt.rate, tt.want, got)
		}
	}
}

func TestModifierOrderAndJoining(t *testing.T) {
	cfg := baseConfig()
	cfg.Emotion = "sad"
	cfg.Pitch = 2
	cfg.Timbre = -1
	cfg.SpeakingRate = 110

	got := Build(cfg).Instruction
	want := "Speak the following text in English in a sad tone, at a slightly high pitch, with a deep timbre, at a fast pace.\n\nText: \"Hello\""
	if got != want {
		t.Errorf("instruction mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestStylePromptClause(t *testing.T) {
	cfg := baseConfig()
	cfg.StylePrompt = "Speak like a movie trailer narrator."

	got := Build(cfg).Instruction
	if !strings.Contains(got, "\n\nImportant Style Direction: Speak like a movie trailer narrator.") {
		t.Errorf("style direction clause missing: %q", got)
	}

	cfg.StylePrompt = ""
	got = Build(cfg).Instruction
	if strings.Contains(got, "Style Direction") {
		t.Errorf("empty style prompt must not emit a clause: %q", got)
	}
}

func TestSingingSuppressesSpeechModifiers(t *testing.T) {
	cfg := baseConfig()
	cfg.IsSinging = true
	cfg.SingingStyle = "cheerful_pop"
	cfg.Emotion = "angry"
	cfg.Pitch = 0
	cfg.Timbre = 5
	cfg.SpeakingRate = 140

	got := Build(cfg).Instruction
	for _, phrase := range []string{"tone", "timbre", "pace", "pitch"} {
		if strings.Contains(got, phrase) {
			t.Errorf("singing instruction leaked speech modifier %q: %q", phrase, got)
		}
	}
	if !strings.HasPrefix(got, "Sing the following lyrics") {
		t.Errorf("unexpected singing prefix: %q", got)
	}
}

func TestSingingLullabyLowRegister(t *testing.T) {
	cfg := baseConfig()
	cfg.IsSinging = true
	cfg.SingingStyle = "gentle_lullaby"
	cfg.Pitch = -5
	cfg.Text = "Sleep now"

	got := Build(cfg).Instruction
	wantPrefix := "Sing the following lyrics as a soft, gentle lullaby with a soothing and calm melody in a low register. Emphasize a clear melodic and rhythmic delivery."
	if !strings.HasPrefix(got, wantPrefix) {
		t.Errorf("instruction prefix mismatch:\n got: %q\nwant: %q", got, wantPrefix)
	}
	if !strings.Contains(got, "Lyrics: \"Sleep now\"") {
		t.Errorf("lyrics clause missing: %q", got)
	}
}

func TestSingingUnknownStyleFallsBack(t *testing.T) {
	cfg := baseConfig()
	cfg.IsSinging = true
	cfg.SingingStyle = "yodeling_metal"

	got := Build(cfg).Instruction
	if !strings.Contains(got, "as a simple, cheerful song") {
		t.Errorf("fallback style missing: %q", got)
	}
}

func TestSingingRegisterBuckets(t *testing.T) {
	tests := []struct {
		pitch int
		want  string
	}{
		{5, " in a high register"},
		{4, " in a slightly high register"},
		{1, " in a slightly high register"},
		{0, ""},
		{-1, " in a slightly low register"},
		{-4, " in a slightly low register"},
		{-5, " in a low register"},
	}

	for _, tt := range tests {
		cfg := baseConfig()
		cfg.IsSinging = true
		cfg.SingingStyle = "folk_ballad"
		cfg.Pitch = tt.pitch

		got := Build(cfg).Instruction
		if tt.want == "" {
			if strings.Contains(got, "register") {
				t.Errorf("pitch=%d: expected no register clause, got %q", tt.pitch, got)
			}
			continue
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("pitch=%d: want %q in %q", tt.pitch, tt.want, got)
		}
	}
}

func TestAudioModeEmitsDirective(t *testing.T) {
	cfg := baseConfig()
	cfg.InputMode = models.InputModeAudio
	cfg.AudioPayload = "AAAA"
	cfg.F0Method = "crepe"
	cfg.IndexRate = 0.7
	cfg.ProtectVolume = 0.33

	p := Build(cfg)
	if p.SystemDirective == "" {
		t.Fatal("audio input must produce a system directive")
	}
	if !strings.Contains(p.SystemDirective, "Ensure smooth and natural pitch transitions (CREPE style).") {
		t.Errorf("f0 phrase missing: %q", p.SystemDirective)
	}
	if !strings.Contains(p.SystemDirective, "70% intensity") {
		t.Errorf("index intensity missing: %q", p.SystemDirective)
	}
	if !strings.Contains(p.SystemDirective, "Protect voiceless consonants") {
		t.Errorf("consonant protection missing: %q", p.SystemDirective)
	}
	if !strings.Contains(p.Instruction, "Speak the following audio content in English") {
		t.Errorf("audio wording missing: %q", p.Instruction)
	}
	if strings.Contains(p.Instruction, "Text:") {
		t.Errorf("audio input must not embed a text clause: %q", p.Instruction)
	}
}

func TestDirectiveF0Phrases(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{"rmvpe", "Ensure high-fidelity pitch tracking (RMVPE style)."},
		{"crepe", "Ensure smooth and natural pitch transitions (CREPE style)."},
		{"harvest", "Ensure robust, thick vocal quality (Harvest style)."},
		{"pm", "Prioritize fast, direct pitch conversion."},
		{"autotune9000", "Maintain accurate pitch."},
	}

	for _, tt := range tests {
		cfg := baseConfig()
		cfg.InputMode = models.InputModeAudio
		cfg.F0Method = tt.method

		got := Build(cfg).SystemDirective
		if !strings.Contains(got, tt.want) {
			t.Errorf("f0=%s: want %q in directive", tt.method, tt.want)
		}
	}
}

func TestDirectiveProtectThreshold(t *testing.T) {
	cfg := baseConfig()
	cfg.InputMode = models.InputModeAudio
	cfg.ProtectVolume = 0.2

	if got := Build(cfg).SystemDirective; strings.Contains(got, "Protect voiceless") {
		t.Errorf("protect=0.2 must not trigger the clause: %q", got)
	}

	cfg.ProtectVolume = 0.21
	if got := Build(cfg).SystemDirective; !strings.Contains(got, "Protect voiceless") {
		t.Errorf("protect=0.21 must trigger the clause: %q", got)
	}
}

func TestAudioOnlyModifiers(t *testing.T) {
	cfg := baseConfig()
	cfg.InputMode = models.InputModeAudio
	cfg.ProtectVolume = 0.4
	cfg.IndexRate = 0.9

	got := Build(cfg).Instruction
	if !strings.Contains(got, "enunciating consonants very clearly") {
		t.Errorf("protect modifier missing: %q", got)
	}
	if !strings.Contains(got, "with strong character") {
		t.Errorf("index modifier missing: %q", got)
	}

	// The same thresholds must not fire in text mode.
	cfg.InputMode = models.InputModeText
	got = Build(cfg).Instruction
	if strings.Contains(got, "enunciating") || strings.Contains(got, "strong character") {
		t.Errorf("audio-only modifiers leaked into text mode: %q", got)
	}
}

func TestBuildWithTranscript(t *testing.T) {
	cfg := baseConfig()
	cfg.InputMode = models.InputModeAudio
	cfg.AudioPayload = "AAAA"
	cfg.IndexRate = 0.9

	p := BuildWithTranscript(cfg, "spoken words")
	if !strings.Contains(p.Instruction, "Speak the following text in English") {
		t.Errorf("transcript rebuild must use text wording: %q", p.Instruction)
	}
	if !strings.Contains(p.Instruction, "Text: \"spoken words\"") {
		t.Errorf("transcript not embedded: %q", p.Instruction)
	}
	if !strings.Contains(p.Instruction, "with strong character") {
		t.Errorf("audio modifiers must survive the transcript rebuild: %q", p.Instruction)
	}
	if p.SystemDirective == "" {
		t.Error("technical directive must survive the transcript rebuild")
	}
}
