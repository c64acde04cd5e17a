package models

import (
	"errors"
	"fmt"
)

// ConfigurationError signals a missing credential or endpoint. It is
// returned before any network call is attempted.
type ConfigurationError struct {
	Missing string
}

func (e ConfigurationError) Error() string {
	return fmt.Sprintf("%s not configured", e.Missing)
}

// UpstreamError wraps a non-success response from an external service
// (LLM, email, data store). The upstream status code is preserved.
type UpstreamError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s error %d: %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error %d", e.Service, e.StatusCode)
}

// ValidationError rejects a request before any side effect happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// EmptyGenerationError means the upstream call succeeded but returned no
// usable content.
type EmptyGenerationError struct {
	Action string
}

func (e EmptyGenerationError) Error() string {
	return fmt.Sprintf("no content generated for %s", e.Action)
}

// NotFoundError reports a missing record.
type NotFoundError struct {
	Resource string
	ID       interface{}
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

// Token errors per consumption outcome. An already-used token is reported
// as invalid so the caller cannot distinguish it from a forged one.
var (
	ErrTokenInvalid = errors.New("invalid or already used token")
	ErrTokenExpired = errors.New("token expired")
)

// ErrStatusConflict is returned when a compare-and-swap transition loses a
// race: the article's status was no longer the expected one.
var ErrStatusConflict = errors.New("article status changed concurrently")

// IllegalTransitionError reports a transition the state machine forbids.
type IllegalTransitionError struct {
	From ArticleStatus
	To   ArticleStatus
}

func (e IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition %s -> %s", e.From, e.To)
}
