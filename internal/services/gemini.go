package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

// ---------------------------------------------------------------------------
// Gemini speech backend
// Uses the Google Gen AI SDK. Synthesis goes to the dedicated TTS model;
// transcription uses the multimodal flash model with a fixed instruction.
// The TTS response is raw PCM16LE mono at 24 kHz with no container.
// ---------------------------------------------------------------------------

const (
	defaultTTSModel        = "gemini-2.5-flash-preview-tts"
	defaultMultimodalModel = "gemini-2.5-flash"

	// transcribeInstruction is fixed: the transcript is fed straight back
	// into the synthesis prompt, so commentary or timestamps would be sung.
	transcribeInstruction = "Transcribe this audio verbatim. Output only the transcribed text with no timestamps or commentary."
)

type GeminiService struct {
	client   *genai.Client
	ttsModel string
	mmModel  string
}

// NewGeminiService creates the production speech backend. Empty model names
// fall back to the defaults.
func NewGeminiService(ctx context.Context, apiKey, ttsModel, multimodalModel string) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	if ttsModel == "" {
		ttsModel = defaultTTSModel
	}
	if multimodalModel == "" {
		multimodalModel = defaultMultimodalModel
	}

	return &GeminiService{
		client:   client,
		ttsModel: ttsModel,
		mmModel:  multimodalModel,
	}, nil
}

// Synthesize renders the instruction as audio in the requested prebuilt voice.
func (s *GeminiService) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"AUDIO"},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: req.Voice},
			},
		},
	}
	if req.SystemDirective != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemDirective}},
		}
	}

	contents := []*genai.Content{
		{Role: genai.RoleUser, Parts: []*genai.Part{{Text: req.Instruction}}},
	}

	log.Printf("[Gemini] Synthesizing (model=%s, voice=%s, promptLen=%d)", s.ttsModel, req.Voice, len(req.Instruction))

	resp, err := s.client.Models.GenerateContent(ctx, s.ttsModel, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini synthesis failed: %w", err)
	}

	audio := extractInlineAudio(resp)
	if len(audio) == 0 {
		return nil, newError(KindEmptyResult,
			"Generation succeeded, but no audio was produced. The model may not support the requested input.", nil)
	}

	log.Printf("[Gemini] Synthesized %d bytes of audio", len(audio))
	return &SynthesisResult{Audio: audio}, nil
}

// Transcribe sends the clip to the multimodal model and returns the verbatim
// transcript. An empty transcript is reported as an error by the caller.
func (s *GeminiService) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "audio/mp3"
	}

	contents := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: audio}},
				{Text: transcribeInstruction},
			},
		},
	}

	log.Printf("[Gemini] Transcribing (model=%s, audioBytes=%d, mime=%s)", s.mmModel, len(audio), mimeType)

	resp, err := s.client.Models.GenerateContent(ctx, s.mmModel, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini transcription failed: %w", err)
	}

	return strings.TrimSpace(resp.Text()), nil
}

// extractInlineAudio pulls the first inline audio blob from the response.
func extractInlineAudio(resp *genai.GenerateContentResponse) []byte {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data
		}
	}
	return nil
}
