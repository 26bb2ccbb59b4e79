package image

import (
	"context"
	"errors"

	"scenestudio/internal/infra"
)

// Orchestrator walks an ordered adapter chain until one provider returns an
// image URL. There is no backoff and no retry beyond the chain itself: a
// generation is a single-shot, user-triggered operation.
type Orchestrator struct {
	chain  []Adapter
	logger *infra.Logger
}

// NewOrchestrator builds the orchestrator over the given chain, in order.
func NewOrchestrator(logger *infra.Logger, chain ...Adapter) *Orchestrator {
	return &Orchestrator{chain: chain, logger: infra.LoggerOrDiscard(logger)}
}

// NewDefaultChain assembles the standard fallback order: the queue-based
// primary, the structured secondary, and, when the secondary runs through a
// backend proxy, one final degraded prompt-only retry.
func NewDefaultChain(logger *infra.Logger, primary *QueueAdapter, secondary *StructuredAdapter) *Orchestrator {
	chain := []Adapter{primary, secondary}
	if secondary.ProxyPath() {
		chain = append(chain, secondary.Degraded())
	}
	return NewOrchestrator(logger, chain...)
}

// Generate attempts each adapter in turn and returns the first image URL.
// Configuration failures fall through like provider failures; when the
// chain is exhausted the caller receives a ServiceUnavailableError whose
// hints name the missing credentials.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (string, error) {
	failure := &ServiceUnavailableError{}
	for _, adapter := range o.chain {
		url, err := adapter.Attempt(ctx, req)
		if err == nil {
			o.logger.Info().Str("provider", adapter.Name()).Msg("generation succeeded")
			return url, nil
		}

		failure.Attempted = append(failure.Attempted, adapter.Name())
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			failure.Hints = append(failure.Hints, cfgErr.Hint)
			o.logger.Warn().Str("provider", adapter.Name()).Msg("provider skipped: missing credentials")
			continue
		}
		var provErr *ProviderError
		if errors.As(err, &provErr) {
			o.logger.Warn().
				Str("provider", adapter.Name()).
				Int("status", provErr.Status).
				Str("detail", provErr.Message).
				Msg("provider attempt failed, falling through")
			continue
		}
		o.logger.Warn().Str("provider", adapter.Name()).Err(err).Msg("provider attempt failed, falling through")
	}
	return "", failure
}

var _ Generator = (*Orchestrator)(nil)
