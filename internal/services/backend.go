package services

import "context"

// ---------------------------------------------------------------------------
// SpeechBackend — narrow interface over the hosted generative speech model.
// The Gemini implementation is the production backend; tests inject fakes.
// The generator never talks to a concrete SDK directly.
// ---------------------------------------------------------------------------

// Backend-fixed output format. The PCM payload carries no header metadata,
// so these constants ARE the contract.
const (
	OutputSampleRate = 24000
	OutputChannels   = 1
)

// SynthesisRequest is one text-to-speech call.
type SynthesisRequest struct {
	// Instruction is the full natural-language prompt (content + delivery).
	Instruction string

	// SystemDirective is the optional technical block for voice-conversion
	// style requests. Empty for plain TTS.
	SystemDirective string

	// Voice is the prebuilt voice name the audio is rendered in.
	Voice string
}

// SynthesisResult carries the raw PCM16LE mono audio returned by the model.
type SynthesisResult struct {
	Audio []byte
}

// SpeechBackend generates audio from a prepared prompt.
type SpeechBackend interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error)
}

// Transcriber turns an uploaded clip into plain text. The audio pipeline
// runs this before synthesis (transcribe-then-synthesize).
type Transcriber interface {
	// Transcribe takes the raw (already base64-decoded) audio bytes and the
	// declared MIME type, and returns the verbatim transcript.
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}
