// Package errs provides the kinded error type shared by the gateway core and
// the outer surfaces (CLI, HTTP).
//
// The core returns *errs.Error values; surfaces inspect them with the Is*
// predicates or KindOf and render them into a result envelope.
package errs

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind categorises a gateway failure
type Kind int

const (
	KindUnknown      Kind = iota
	KindConfig            // unsupported provider, missing bucket
	KindTimeout           // per-operation deadline exceeded
	KindProvider          // error text reported by the storage backend
	KindInvalidInput      // malformed request from the caller
	KindCanceled          // caller went away
)

func (k Kind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindTimeout:
		return "timeout"
	case KindProvider:
		return "provider"
	case KindInvalidInput:
		return "invalid_input"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the gateway core
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	// Provider messages built from the raw error text already carry it
	cause := e.Cause.Error()
	if cause != "" && strings.Contains(e.Message, cause) {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// --- Constructors ---

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// UnsupportedProvider is returned by the resolver for providers outside the rule table
func UnsupportedProvider(provider string) *Error {
	return New(KindConfig, fmt.Sprintf("unsupported provider: %s", provider))
}

// MissingBucket is returned for object-level operations without a bucket
func MissingBucket() *Error {
	return New(KindConfig, "missing bucket name")
}

// OperationTimeout is returned when an attempt exceeds its deadline
func OperationTimeout(operation string) *Error {
	return New(KindTimeout, fmt.Sprintf("%s timed out, check the network or the endpoint configuration", operation))
}

// Provider wraps an error reported by the storage backend.
// Text is the full error text (including any captured response body) and is
// what the redirect extractor scans.
func Provider(text string, cause error) *Error {
	return &Error{Kind: KindProvider, Message: text, Cause: cause}
}

// --- Predicates ---

func IsConfig(err error) bool {
	return KindOf(err) == KindConfig
}

func IsTimeout(err error) bool {
	return KindOf(err) == KindTimeout
}

func IsProvider(err error) bool {
	return KindOf(err) == KindProvider
}

func IsInvalidInput(err error) bool {
	return KindOf(err) == KindInvalidInput
}

// KindOf extracts the Kind from any error in the chain.
// Bare context errors are classified so callers get a stable kind even when
// an error did not pass through a constructor.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		return KindCanceled
	}
	return KindUnknown
}
