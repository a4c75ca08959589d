package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyKnownPhrases(t *testing.T) {
	tests := []struct {
		raw  string
		want ErrorKind
	}{
		{"API key not valid. Please pass a valid API key.", KindAuthenticationFailure},
		{"rpc error: code = Unauthenticated desc = request not authorized", KindAuthenticationFailure},
		{"400 INVALID_ARGUMENT: unknown voice name", KindInvalidConfiguration},
		{"429 RESOURCE_EXHAUSTED: quota exceeded", KindRateLimited},
		{"Resource_Exhausted", KindRateLimited}, // case-insensitive
		{"candidate was BLOCKED due to safety", KindSafetyBlocked},
		{"response modality not supported in this region", KindModalityUnsupported},
		{"503 Service UNAVAILABLE", KindServiceUnavailable},
		{"500 internal error while generating", KindServiceUnavailable},
		{"context deadline exceeded", KindServiceUnavailable},
	}

	for _, tt := range tests {
		got := Classify(errors.New(tt.raw))
		if got.Kind != tt.want {
			t.Errorf("Classify(%q): got %s, want %s", tt.raw, got.Kind, tt.want)
		}
	}
}

func TestClassifyCatchAllKeepsOriginalMessage(t *testing.T) {
	raw := "something nobody has ever seen before"
	got := Classify(errors.New(raw))

	if got.Kind != KindUnknown {
		t.Fatalf("expected unknown kind, got %s", got.Kind)
	}
	if got.Message != raw {
		t.Errorf("unknown errors must keep the original wording, got %q", got.Message)
	}
}

func TestClassifyPassesThroughClassifiedErrors(t *testing.T) {
	orig := newError(KindEmptyResult, "no audio", nil)
	wrapped := fmt.Errorf("pipeline: %w", orig)

	got := Classify(wrapped)
	if got.Kind != KindEmptyResult {
		t.Errorf("already-classified error was reclassified as %s", got.Kind)
	}
}

func TestKindOfAndUserMessage(t *testing.T) {
	err := fmt.Errorf("outer: %w", newError(KindRateLimited, "Rate limit exceeded. Please wait before trying again.", errors.New("429")))

	if got := KindOf(err); got != KindRateLimited {
		t.Errorf("KindOf: got %s", got)
	}
	if got := UserMessage(err); got != "Rate limit exceeded. Please wait before trying again." {
		t.Errorf("UserMessage: got %q", got)
	}

	if got := KindOf(errors.New("plain")); got != KindUnknown {
		t.Errorf("plain error should be unknown, got %s", got)
	}
}
