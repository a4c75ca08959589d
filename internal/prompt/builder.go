// Package prompt turns a VoiceConfiguration into the natural-language
// instruction and technical system directive consumed by the speech backend.
// Everything here is pure string construction: deterministic, no I/O, total
// over the whole configuration domain.
package prompt

import (
	"fmt"
	"math"
	"strings"

	"github.com/bobarin/vocalforge/internal/models"
)

// Prompt is the model-ready output of the builder. SystemDirective is empty
// for plain text-to-speech and carries the RVC-style technical block for
// audio conversion.
type Prompt struct {
	Instruction     string
	SystemDirective string
}

// Build maps a configuration to its prompt. For audio input the instruction
// refers to the attached clip ("audio content") and the RVC directive is
// emitted; the literal Text/Lyrics clause only appears for text input.
func Build(cfg models.VoiceConfiguration) Prompt {
	audio := cfg.InputMode == models.InputModeAudio

	p := Prompt{}
	if cfg.IsSinging {
		p.Instruction = singingInstruction(cfg, audio, cfg.Text)
	} else {
		p.Instruction = speechInstruction(cfg, audio, cfg.Text)
	}
	if audio {
		p.SystemDirective = conversionDirective(cfg)
	}
	return p
}

// BuildWithTranscript rebuilds the prompt after the audio pipeline has
// produced a transcript: text wording and the literal content clause, but
// with the audio-only modifiers and the technical directive kept.
func BuildWithTranscript(cfg models.VoiceConfiguration, transcript string) Prompt {
	text := cfg
	text.InputMode = models.InputModeText
	text.Text = transcript

	p := Prompt{SystemDirective: conversionDirective(cfg)}
	if cfg.IsSinging {
		p.Instruction = singingInstruction(text, false, transcript)
	} else {
		// Keep the audio-derived modifiers even though the wording is text.
		mods := speechModifiers(text, true)
		p.Instruction = composeSpeech(text, "text", mods, transcript, true)
	}
	return p
}

// speechModifiers evaluates the speech-style modifier phrases in their fixed
// order: emotion, pitch bucket, timbre bucket, rate bucket, then the
// audio-only heuristics. Each rule contributes at most one phrase.
func speechModifiers(cfg models.VoiceConfiguration, audio bool) []string {
	var mods []string

	if cfg.Emotion != "" && cfg.Emotion != "neutral" {
		if cfg.Emotion == "whispering" {
			mods = append(mods, "in a whispering tone")
		} else {
			mods = append(mods, fmt.Sprintf("in a %s tone", cfg.Emotion))
		}
	}

	switch {
	case cfg.Pitch > 8:
		mods = append(mods, "at a very high pitch")
	case cfg.Pitch > 4:
		mods = append(mods, "at a high pitch")
	case cfg.Pitch > 0:
		mods = append(mods, "at a slightly high pitch")
	case cfg.Pitch < -8:
		mods = append(mods, "at a very low pitch")
	case cfg.Pitch < -4:
		mods = append(mods, "at a low pitch")
	case cfg.Pitch < 0:
		mods = append(mods, "at a slightly low pitch")
	}

	switch {
	case cfg.Timbre > 3:
		mods = append(mods, "with a very bright timbre")
	case cfg.Timbre > 0:
		mods = append(mods, "with a bright timbre")
	case cfg.Timbre < -3:
		mods = append(mods, "with a very deep timbre")
	case cfg.Timbre < 0:
		mods = append(mods, "with a deep timbre")
	}

	switch {
	case cfg.SpeakingRate > 125:
		mods = append(mods, "at a very fast pace")
	case cfg.SpeakingRate > 100:
		mods = append(mods, "at a fast pace")
	case cfg.SpeakingRate < 75:
		mods = append(mods, "at a very slow pace")
	case cfg.SpeakingRate < 100:
		mods = append(mods, "at a slow pace")
	}

	// Heuristic stand-ins for the RVC tuning knobs. These are string rules,
	// not signal control.
	if audio {
		if cfg.ProtectVolume > 0.35 {
			mods = append(mods, "enunciating consonants very clearly")
		}
		if cfg.IndexRate > 0.8 {
			mods = append(mods, "with strong character")
		}
	}

	return mods
}

func speechInstruction(cfg models.VoiceConfiguration, audio bool, text string) string {
	noun := "text"
	if audio {
		noun = "audio content"
	}
	mods := speechModifiers(cfg, audio)
	return composeSpeech(cfg, noun, mods, text, !audio)
}

func composeSpeech(cfg models.VoiceConfiguration, noun string, mods []string, text string, includeText bool) string {
	modifierString := ""
	if len(mods) > 0 {
		modifierString = " " + strings.Join(mods, ", ")
	}

	var instruction string
	if cfg.Accent != "" && cfg.Accent != "Standard" {
		instruction = fmt.Sprintf("Speak the following %s in %s with an %s accent%s.",
			noun, cfg.Language, cfg.Accent, modifierString)
	} else {
		instruction = fmt.Sprintf("Speak the following %s in %s%s.", noun, cfg.Language, modifierString)
	}

	if cfg.StylePrompt != "" {
		instruction += fmt.Sprintf("\n\nImportant Style Direction: %s", cfg.StylePrompt)
	}

	if includeText {
		instruction += "\n\nText: \"" + text + "\""
	} else {
		instruction += "\n\n"
	}
	return instruction
}

func singingInstruction(cfg models.VoiceConfiguration, audio bool, text string) string {
	var style string
	switch cfg.SingingStyle {
	case "cheerful_pop":
		style = "as an upbeat, cheerful pop song with a catchy melody"
	case "gentle_lullaby":
		style = "as a soft, gentle lullaby with a soothing and calm melody"
	case "folk_ballad":
		style = "as a heartfelt folk ballad with an acoustic feel and emotional delivery"
	case "dramatic_opera":
		style = "in a dramatic, operatic style with powerful and sustained notes"
	case "simple_rap":
		style = "as a simple rap with a steady rhythm and clear enunciation. Focus on the beat and flow."
	default:
		style = "as a simple, cheerful song"
	}

	// The singing register buckets are coarser than the speech pitch buckets
	// and use different wording on purpose.
	register := ""
	switch {
	case cfg.Pitch > 4:
		register = " in a high register"
	case cfg.Pitch > 0:
		register = " in a slightly high register"
	case cfg.Pitch < -4:
		register = " in a low register"
	case cfg.Pitch < 0:
		register = " in a slightly low register"
	}

	noun := "lyrics"
	if audio {
		noun = "audio content"
	}

	styleDirection := ""
	if cfg.StylePrompt != "" {
		styleDirection = fmt.Sprintf("Style Direction: %s\n\n", cfg.StylePrompt)
	}

	content := ""
	if !audio {
		content = "Lyrics: \"" + text + "\""
	}

	return fmt.Sprintf("Sing the following %s %s%s. Emphasize a clear melodic and rhythmic delivery.\n\n%s%s",
		noun, style, register, styleDirection, content)
}

// conversionDirective renders the technical block that frames audio input as
// a voice-conversion task. The knob names (F0 method, index rate, protect
// volume) are phrasing only; no signal processing happens anywhere.
func conversionDirective(cfg models.VoiceConfiguration) string {
	var f0 string
	switch cfg.F0Method {
	case "rmvpe":
		f0 = "Ensure high-fidelity pitch tracking (RMVPE style)."
	case "crepe":
		f0 = "Ensure smooth and natural pitch transitions (CREPE style)."
	case "harvest":
		f0 = "Ensure robust, thick vocal quality (Harvest style)."
	case "pm":
		f0 = "Prioritize fast, direct pitch conversion."
	default:
		f0 = "Maintain accurate pitch."
	}

	index := fmt.Sprintf("Apply the target voice style with %d%% intensity relative to the input content.",
		int(math.Round(cfg.IndexRate*100)))

	protect := ""
	if cfg.ProtectVolume > 0.2 {
		protect = "Protect voiceless consonants from pitch artifacts."
	}

	return fmt.Sprintf(`You are a professional voice conversion AI (RVC).
Your task is to listen to the input audio and repeat EXACTLY what is said (or sung), but performing it with the specific voice, style, and emotion requested.

Technical directives:
1. %s
2. %s
3. %s

Do not add any conversational filler. Output ONLY the transformed speech/song audio.`, f0, index, protect)
}
