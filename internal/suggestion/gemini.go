package suggestion

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sprintsync/sprintsync-api/internal/config"
	"google.golang.org/genai"
)

// GeminiProvider generates text with Google's Gemini API.
type GeminiProvider struct {
	client      *genai.Client
	model       string
	maxTokens   int32
	temperature float32
	timeout     time.Duration
}

// NewGeminiProvider creates the adapter. With an empty apiKey no client is
// created and the provider reports unavailable.
func NewGeminiProvider(ctx context.Context, cfg config.SuggestionProviderConfig, apiKey string, httpClient *http.Client) (*GeminiProvider, error) {
	temperature := config.DefaultSuggestionTemperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}

	p := &GeminiProvider{
		model:       cfg.Model,
		maxTokens:   int32(cfg.MaxTokens),
		temperature: float32(temperature),
		timeout:     cfg.Timeout(),
	}

	if apiKey == "" {
		return p, nil
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	p.client = client
	return p, nil
}

func (p *GeminiProvider) Name() string {
	return config.ProviderGemini
}

func (p *GeminiProvider) Available() bool {
	return p.client != nil
}

// Generate makes a single generateContent call.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.client == nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("no API key configured")}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	result, err := p.client.Models.GenerateContent(ctx,
		p.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(p.temperature),
			MaxOutputTokens: p.maxTokens,
		},
	)
	if err != nil {
		return "", &ProviderError{Provider: p.Name(), Err: fmt.Errorf("generate content with %s: %w", p.model, err)}
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptyResponse, p.Name())
	}

	return text, nil
}
