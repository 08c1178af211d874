package suggestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sprintsync/sprintsync-api/internal/logger"
)

const (
	// NoProvidersConfidence is reported when no backend has a credential.
	NoProvidersConfidence = 0.85

	// AllFailedConfidence is reported when every configured backend failed.
	AllFailedConfidence = 0.7
)

// Suggestion is the result of one suggestion request.
type Suggestion struct {
	Description string  `json:"description"`
	Confidence  float64 `json:"confidence"`
	Source      string  `json:"source"`
}

// Service turns a task title into a description suggestion.
//
// Providers are tried one at a time in priority order and the first
// non-empty answer wins. Failures are logged and skipped; when nothing
// works the offline generator answers instead. Suggest never fails.
type Service struct {
	providers []Provider
	logger    *logger.Logger
	metrics   *Metrics
}

// NewService keeps the available providers of the given list, preserving order.
func NewService(providers []Provider, logger *logger.Logger, metrics *Metrics) *Service {
	available := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil && p.Available() {
			available = append(available, p)
		}
	}

	return &Service{
		providers: available,
		logger:    logger.WithComponent("suggestion-service"),
		metrics:   metrics,
	}
}

// Providers returns the names of the available providers in priority order.
func (s *Service) Providers() []string {
	names := make([]string, len(s.providers))
	for i, p := range s.providers {
		names[i] = p.Name()
	}
	return names
}

// Suggest produces exactly one suggestion for title on behalf of userID.
// The caller has already checked that title is not empty.
func (s *Service) Suggest(ctx context.Context, title, userID string) Suggestion {
	log := s.logger.WithContext(ctx).With(
		slog.String("title", title),
		slog.String("user_id", userID),
	)

	if len(s.providers) == 0 {
		log.Warn("no AI providers configured, falling back to mock suggestions")
		return s.mock(title, NoProvidersConfidence)
	}

	prompt := BuildPrompt(title)

	for _, provider := range s.providers {
		log.Info("attempting AI generation", slog.String("provider", provider.Name()))

		start := time.Now()
		text, err := s.generate(ctx, provider, prompt)
		elapsed := time.Since(start)

		if err != nil {
			outcome := outcomeError
			if errors.Is(err, ErrEmptyResponse) {
				outcome = outcomeEmpty
			}
			s.metrics.observeAttempt(provider.Name(), outcome, elapsed)

			log.Warn("AI provider failed, trying next",
				slog.String("provider", provider.Name()),
				slog.Duration("duration", elapsed),
				slog.String("error", err.Error()))
			continue
		}

		s.metrics.observeAttempt(provider.Name(), outcomeSuccess, elapsed)
		s.metrics.observeResult(provider.Name())

		result := Suggestion{
			Description: text,
			Confidence:  Score(text, title),
			Source:      provider.Name(),
		}

		log.Info("AI suggestion generated",
			slog.String("provider", provider.Name()),
			slog.Float64("confidence", result.Confidence),
			slog.Duration("duration", elapsed))

		return result
	}

	log.Error("all AI providers failed, falling back to mock suggestions",
		slog.Int("attempted", len(s.providers)))
	return s.mock(title, AllFailedConfidence)
}

// generate calls one provider and turns a blank answer or a panic into an error.
func (s *Service) generate(ctx context.Context, provider Provider, prompt string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ProviderError{Provider: provider.Name(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	text, err = provider.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyResponse, provider.Name())
	}

	return text, nil
}

func (s *Service) mock(title string, confidence float64) Suggestion {
	s.metrics.observeResult(SourceMockFallback)

	return Suggestion{
		Description: MockSuggestion(title),
		Confidence:  confidence,
		Source:      SourceMockFallback,
	}
}
