package clarify

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a provider call failed.
type FailureKind string

const (
	FailureTransport FailureKind = "transport"
	FailureAuth      FailureKind = "auth"
	FailureRateLimit FailureKind = "rate_limit"
	FailureSchema    FailureKind = "schema"
)

var (
	// ErrProvider matches every *ProviderError through errors.Is.
	ErrProvider = errors.New("provider error")
	// ErrInputExhausted reports that the interactive channel ended before every question was answered.
	ErrInputExhausted = errors.New("input exhausted before all questions were answered")
)

// ProviderError collapses transport, auth, rate-limit and schema failures of a
// language-model call into one kind.
type ProviderError struct {
	Kind   FailureKind
	Detail string
	Err    error
}

// NewProviderError builds a ProviderError of the given kind.
func NewProviderError(kind FailureKind, detail string, cause error) *ProviderError {
	return &ProviderError{Kind: kind, Detail: detail, Err: cause}
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("provider %s failure: %s", e.Kind, e.Detail)
	}
	if e.Detail == "" {
		return fmt.Sprintf("provider %s failure: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("provider %s failure: %s: %v", e.Kind, e.Detail, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func (e *ProviderError) Is(target error) bool { return target == ErrProvider }

// Retryable reports whether another attempt could plausibly succeed.
func (e *ProviderError) Retryable() bool {
	return e.Kind == FailureTransport || e.Kind == FailureRateLimit
}

// ConfigurationError reports a malformed clarification setting.
type ConfigurationError struct {
	Field string
	Value int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s: %d", e.Field, e.Value)
}

// AsProviderError wraps err into a *ProviderError unless it already is one.
// Context cancellation is reported as a transport failure that keeps the
// context error in its chain.
func AsProviderError(err error) *ProviderError {
	if err == nil {
		return nil
	}
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr
	}
	return NewProviderError(FailureTransport, "", err)
}
