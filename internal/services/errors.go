package services

import (
	"errors"
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Error taxonomy
// Raw backend failures never escape this package: every error is wrapped in
// an *Error with a Kind and a short, user-presentable message. Classification
// is best-effort substring matching against known backend wording, so the
// Unknown catch-all must always stay reachable.
// ---------------------------------------------------------------------------

type ErrorKind string

const (
	KindAuthenticationFailure ErrorKind = "authentication_failure"
	KindInvalidConfiguration  ErrorKind = "invalid_configuration"
	KindRateLimited           ErrorKind = "rate_limited"
	KindSafetyBlocked         ErrorKind = "safety_blocked"
	KindServiceUnavailable    ErrorKind = "service_unavailable"
	KindModalityUnsupported   ErrorKind = "modality_unsupported"
	KindEmptyResult           ErrorKind = "empty_result"
	KindTranscriptionFailure  ErrorKind = "transcription_failure"
	KindUnknown               ErrorKind = "unknown"
)

// Error is a classified generation failure.
type Error struct {
	Kind    ErrorKind
	Message string // short, friendly, user-facing
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func newError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// KindOf extracts the taxonomy kind from any error chain. Unclassified
// errors report KindUnknown.
func KindOf(err error) ErrorKind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}

// UserMessage returns the friendly message for an error chain. For unknown
// errors the original wording is the fallback shown to the user.
func UserMessage(err error) string {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Message
	}
	return "An unexpected error occurred while communicating with the API."
}

// classifyRule pairs a lowercase needle with its taxonomy kind. Rules are
// checked in order; the first hit wins.
type classifyRule struct {
	needle  string
	kind    ErrorKind
	message string
}

var classifyRules = []classifyRule{
	{"api key", KindAuthenticationFailure, "Authentication failed. Please check your API key."},
	{"unauthenticated", KindAuthenticationFailure, "Authentication failed. Please check your API key."},
	{"permission_denied", KindAuthenticationFailure, "Authentication failed. Please check your API key."},
	{"invalid_argument", KindInvalidConfiguration, "Invalid request configuration."},
	{"invalid argument", KindInvalidConfiguration, "Invalid request configuration."},
	{"resource_exhausted", KindRateLimited, "Rate limit exceeded. Please wait before trying again."},
	{"resource exhausted", KindRateLimited, "Rate limit exceeded. Please wait before trying again."},
	{"quota", KindRateLimited, "Rate limit exceeded. Please wait before trying again."},
	{"blocked", KindSafetyBlocked, "Request blocked due to safety settings."},
	{"safety", KindSafetyBlocked, "Request blocked due to safety settings."},
	{"not supported", KindModalityUnsupported, "The requested capability is not available in this context."},
	{"unsupported", KindModalityUnsupported, "The requested capability is not available in this context."},
	{"unavailable", KindServiceUnavailable, "Service temporarily unavailable."},
	{"internal", KindServiceUnavailable, "Service temporarily unavailable."},
	{"deadline", KindServiceUnavailable, "Service temporarily unavailable."},
}

// Classify wraps a raw backend error into a taxonomy error. Errors that are
// already classified pass through unchanged.
func Classify(err error) *Error {
	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}

	msg := strings.ToLower(err.Error())
	for _, rule := range classifyRules {
		if strings.Contains(msg, rule.needle) {
			return newError(rule.kind, rule.message, err)
		}
	}

	// Catch-all: keep the original wording so the UI can show it verbatim.
	return newError(KindUnknown, err.Error(), err)
}
