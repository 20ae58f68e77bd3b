package evaluation

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/aperture/internal/llm"
)

// Kind classifies an evaluation failure.
type Kind string

const (
	// KindInvalidInput means the photo was rejected before any network call.
	KindInvalidInput Kind = "invalid_input"
	// KindRateLimited means the service answered 429.
	KindRateLimited Kind = "rate_limited"
	// KindQuotaExhausted means the service answered 402.
	KindQuotaExhausted Kind = "quota_exhausted"
	// KindServiceError covers transport failures and other non-success statuses.
	KindServiceError Kind = "service_error"
	// KindProtocolError means the service answered but not with a
	// well-formed evaluate_photo result.
	KindProtocolError Kind = "protocol_error"
)

const (
	msgRateLimited    = "Rate limit exceeded. Please try again in a moment."
	msgQuotaExhausted = "AI credits exhausted. Please add more credits."
	msgInvalidInput   = "That file doesn't look like a supported image. Please choose a JPEG, PNG, GIF, WebP or HEIC photo."
	msgGeneric        = "Failed to analyze photo. Please try again."
)

// Error is returned by every failing evaluation.
type Error struct {
	Kind Kind
	Err  error

	// Payload is the raw response body for protocol errors, when available.
	Payload json.RawMessage
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("evaluation %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("evaluation %s", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage is the text shown to the learner.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindRateLimited:
		return msgRateLimited
	case KindQuotaExhausted:
		return msgQuotaExhausted
	case KindInvalidInput:
		return msgInvalidInput
	default:
		return msgGeneric
	}
}

// KindOf returns the Kind of err, or "" when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// UserMessage returns the learner-facing text for any error.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.UserMessage()
	}
	return msgGeneric
}

func invalidInput(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Err: fmt.Errorf(format, args...)}
}

// classify maps a provider error onto the evaluation taxonomy.
func classify(err error) *Error {
	var (
		rateLimit *llm.ErrRateLimit
		quota     *llm.ErrQuotaExhausted
		invalid   *llm.ErrInvalidResponse
		truncated *llm.ErrMaxTokensExceeded
	)
	switch {
	case errors.As(err, &rateLimit):
		return &Error{Kind: KindRateLimited, Err: err}
	case errors.As(err, &quota):
		return &Error{Kind: KindQuotaExhausted, Err: err}
	case errors.As(err, &invalid):
		return &Error{Kind: KindProtocolError, Err: err, Payload: invalid.Content}
	case errors.As(err, &truncated):
		return &Error{Kind: KindProtocolError, Err: err, Payload: truncated.Content}
	default:
		return &Error{Kind: KindServiceError, Err: err}
	}
}
