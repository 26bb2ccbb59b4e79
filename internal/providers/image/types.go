// Package image drives external text-to-image providers. The fallback policy
// is data, not control flow: an orchestrator walks an ordered list of
// adapters sharing one Attempt contract until a provider yields an image URL.
package image

import (
	"context"
	"fmt"
	"strings"

	"scenestudio/internal/params"
)

// Request is the normalized generation request handed to every adapter in
// the chain.
type Request struct {
	Params        params.GenerationParameters
	Count         int
	Seed          int
	GuidanceScale float64
	RequestID     string
	Locale        string
}

// Prompt returns the composed prompt carried by the structured parameters.
func (r Request) Prompt() string {
	return strings.TrimSpace(r.Params.Prompt)
}

// Quantity returns the image count, defaulting to one.
func (r Request) Quantity() int {
	if r.Count <= 0 {
		return 1
	}
	return r.Count
}

// Adapter is one provider in the fallback chain. Attempt returns the URL of
// the first generated image or a typed error describing why this provider
// could not serve the request.
type Adapter interface {
	Name() string
	Attempt(ctx context.Context, req Request) (string, error)
}

// Generator is the caller-facing contract fulfilled by the orchestrator.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// ConfigurationError reports missing credentials. It is fatal for the
// adapter that raised it but the chain still falls through; the hint is
// surfaced verbatim to the user when every adapter is exhausted.
type ConfigurationError struct {
	Provider string
	Hint     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: missing credentials: %s", e.Provider, e.Hint)
}

// ProviderError reports a non-2xx status or a malformed provider response.
// It is recovered locally by falling through the chain.
type ProviderError struct {
	Provider string
	Status   int
	Message  string
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// ServiceUnavailableError is the final failure after every adapter in the
// chain has been attempted. Hints aggregate the remediation instructions of
// adapters that failed on configuration.
type ServiceUnavailableError struct {
	Attempted []string
	Hints     []string
}

func (e *ServiceUnavailableError) Error() string {
	msg := "image generation unavailable: all providers failed"
	if len(e.Attempted) > 0 {
		msg += " (" + strings.Join(e.Attempted, ", ") + ")"
	}
	if len(e.Hints) > 0 {
		msg += "; " + strings.Join(e.Hints, "; ")
	}
	return msg
}
