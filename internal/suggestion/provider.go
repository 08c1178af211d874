package suggestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sprintsync/sprintsync-api/internal/config"
	"github.com/sprintsync/sprintsync-api/internal/logger"
)

// SourceMockFallback tags results produced by the offline generator.
const SourceMockFallback = "mock-fallback"

// ErrEmptyResponse is returned when a backend answers with blank text.
// The orchestrator treats it exactly like a transport failure.
var ErrEmptyResponse = errors.New("empty response from provider")

// ProviderError wraps a transport, auth or quota failure of one backend.
type ProviderError struct {
	Provider   string
	StatusCode int // zero when the request never got a response
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s provider error (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s provider error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Provider exposes one external text-generation backend.
//
// Generate performs exactly one backend call and returns trimmed text.
// Available is fixed at construction from credential presence; an
// unavailable provider is never invoked.
type Provider interface {
	Name() string
	Available() bool
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewProviders builds adapters in the priority order of the suggestions config.
// Providers without a credential are still returned, reporting unavailable.
func NewProviders(ctx context.Context, cfg *config.Config, httpClient *http.Client, log *logger.Logger) ([]Provider, error) {
	suggestions := cfg.Suggestions
	if suggestions == nil {
		suggestions = config.DefaultSuggestionsConfig()
	}

	providers := make([]Provider, 0, len(suggestions.Providers))
	for _, providerCfg := range suggestions.Providers {
		apiKey := cfg.APIKeyFor(providerCfg.Name)

		var (
			provider Provider
			err      error
		)

		switch providerCfg.Name {
		case config.ProviderGemini:
			provider, err = NewGeminiProvider(ctx, providerCfg, apiKey, httpClient)
		case config.ProviderOpenAI:
			provider = NewOpenAIProvider(providerCfg, apiKey, httpClient)
		default:
			err = fmt.Errorf("no adapter for suggestion provider %q", providerCfg.Name)
		}
		if err != nil {
			return nil, err
		}

		log.Info("suggestion provider configured",
			slog.String("provider", provider.Name()),
			slog.String("model", providerCfg.Model),
			slog.Bool("available", provider.Available()))

		providers = append(providers, provider)
	}

	return providers, nil
}
