package services

import (
	"context"
	"encoding/base64"
	"log"
	"strings"
	"time"

	"github.com/bobarin/vocalforge/internal/models"
	"github.com/bobarin/vocalforge/internal/prompt"
	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Generator — orchestrates one generation cycle against the speech backend.
// Text input is one synthesis call; audio input is transcribe-then-synthesize
// (transcription strictly precedes synthesis, and a failed transcription
// never reaches the synthesis model). The generator holds no state between
// calls, so concurrent invocations are safe; no retries happen here.
// ---------------------------------------------------------------------------

type Generator struct {
	backend     SpeechBackend
	transcriber Transcriber
}

func NewGenerator(backend SpeechBackend, transcriber Transcriber) *Generator {
	return &Generator{
		backend:     backend,
		transcriber: transcriber,
	}
}

// Generate runs the pipeline selected by the configuration's input mode and
// returns a completed Generation. All failures come back as *Error taxonomy
// values; raw backend errors never escape.
func (g *Generator) Generate(ctx context.Context, cfg models.VoiceConfiguration) (*models.Generation, error) {
	cfg = cfg.Normalize()

	var (
		built      prompt.Prompt
		transcript string
	)

	switch cfg.InputMode {
	case models.InputModeAudio:
		raw, err := base64.StdEncoding.DecodeString(cfg.AudioPayload)
		if err != nil {
			return nil, newError(KindInvalidConfiguration, "The uploaded audio payload is not valid base64 data.", err)
		}

		transcript, err = g.transcriber.Transcribe(ctx, raw, cfg.AudioMimeType)
		if err != nil {
			return nil, newError(KindTranscriptionFailure,
				"Could not extract speech from the uploaded audio. Try a clearer recording.", err)
		}
		if strings.TrimSpace(transcript) == "" {
			return nil, newError(KindTranscriptionFailure,
				"The uploaded audio did not contain recognizable speech.", nil)
		}

		log.Printf("[Generate] Transcribed %d bytes into %d chars", len(raw), len(transcript))
		built = prompt.BuildWithTranscript(cfg, transcript)

	default:
		built = prompt.Build(cfg)
	}

	result, err := g.backend.Synthesize(ctx, SynthesisRequest{
		Instruction:     built.Instruction,
		SystemDirective: built.SystemDirective,
		Voice:           cfg.Voice,
	})
	if err != nil {
		return nil, Classify(err)
	}
	if len(result.Audio) == 0 {
		return nil, newError(KindEmptyResult,
			"Generation succeeded, but no audio was produced. The model may not support the requested input.", nil)
	}

	return &models.Generation{
		ID:         uuid.New(),
		InputMode:  cfg.InputMode,
		Voice:      cfg.Voice,
		Language:   cfg.Language,
		IsSinging:  cfg.IsSinging,
		Transcript: transcript,
		Audio:      result.Audio,
		SampleRate: OutputSampleRate,
		Channels:   OutputChannels,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
