package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DefaultSuggestionMaxTokens   = 200
	DefaultSuggestionTemperature = 0.7
	DefaultSuggestionTimeout     = 30 * time.Second
)

// knownProviders lists the suggestion backends this build has adapters for.
var knownProviders = map[string]struct{}{
	ProviderGemini: {},
	ProviderOpenAI: {},
}

// SuggestionsConfig configures the AI task-description suggestion chain.
//
// Providers are tried in the order listed. Credentials never live in the file;
// they come from GOOGLE_API_KEY and OPENAI_API_KEY.
type SuggestionsConfig struct {
	Providers []SuggestionProviderConfig `yaml:"providers"`
}

// DefaultSuggestionsConfig returns Gemini first, then OpenAI.
func DefaultSuggestionsConfig() *SuggestionsConfig {
	cfg := &SuggestionsConfig{
		Providers: []SuggestionProviderConfig{
			{Name: ProviderGemini},
			{Name: ProviderOpenAI},
		},
	}
	for i := range cfg.Providers {
		cfg.Providers[i].applyDefaults()
	}
	return cfg
}

// Validate performs validation of a SuggestionsConfig value:
// - Checks that the provider list is not empty
// - Checks for duplicates in the provider list
func (cfg *SuggestionsConfig) Validate() error {
	if len(cfg.Providers) == 0 {
		return errors.New("no providers specified in suggestions configuration")
	}

	seen := make(map[string]struct{}, len(cfg.Providers))
	for _, provider := range cfg.Providers {
		if _, exists := seen[provider.Name]; exists {
			return fmt.Errorf("duplicate configuration entry for provider %v", provider.Name)
		}
		seen[provider.Name] = struct{}{}
	}

	return nil
}

func unmarshalSuggestionsConfig(value *SuggestionsConfig, data []byte) error {
	type Aux SuggestionsConfig
	var aux Aux

	if err := yaml.Unmarshal(data, &aux); err != nil {
		return err
	}

	*value = SuggestionsConfig(aux)

	return value.Validate()
}

// SuggestionProviderConfig holds the fixed generation parameters of one backend.
type SuggestionProviderConfig struct {
	// Name selects the adapter: "gemini" or "openai".
	Name string `yaml:"name"`

	// Model is the backend model identifier.
	Model string `yaml:"model,omitempty"`

	// BaseURL overrides the backend endpoint. Mostly useful for proxies and tests.
	BaseURL string `yaml:"base_url,omitempty"`

	// MaxTokens bounds the generated output.
	MaxTokens int `yaml:"max_tokens,omitempty"`

	// Temperature is a pointer so an explicit 0 survives defaulting.
	Temperature *float64 `yaml:"temperature,omitempty"`

	// TimeoutSeconds is the per-call deadline enforced by the adapter.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// Timeout returns the per-call deadline.
func (p SuggestionProviderConfig) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return DefaultSuggestionTimeout
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}

func (p *SuggestionProviderConfig) applyDefaults() {
	if p.Model == "" {
		switch p.Name {
		case ProviderGemini:
			p.Model = "gemini-1.5-flash"
		case ProviderOpenAI:
			p.Model = "gpt-3.5-turbo"
		}
	}

	if p.BaseURL == "" && p.Name == ProviderOpenAI {
		p.BaseURL = "https://api.openai.com/v1"
	}

	if p.MaxTokens == 0 {
		p.MaxTokens = DefaultSuggestionMaxTokens
	}

	if p.Temperature == nil {
		t := DefaultSuggestionTemperature
		p.Temperature = &t
	}
}

// Validate checks a single provider entry and fills in defaults.
func (p *SuggestionProviderConfig) Validate() error {
	if _, ok := knownProviders[p.Name]; !ok {
		return fmt.Errorf("unknown suggestion provider %q: must be %q or %q", p.Name, ProviderGemini, ProviderOpenAI)
	}

	p.applyDefaults()

	if p.BaseURL != "" {
		if _, err := url.ParseRequestURI(p.BaseURL); err != nil {
			return fmt.Errorf("bad base_url for provider %v: %w", p.Name, err)
		}
	}

	if p.MaxTokens < 0 {
		return fmt.Errorf("max_tokens for provider %v must be positive", p.Name)
	}

	if *p.Temperature < 0 || *p.Temperature > 2 {
		return fmt.Errorf("temperature for provider %v must be within [0, 2]", p.Name)
	}

	return nil
}

func unmarshalSuggestionProviderConfig(value *SuggestionProviderConfig, data []byte) error {
	type Aux SuggestionProviderConfig
	var aux Aux

	if err := yaml.Unmarshal(data, &aux); err != nil {
		return err
	}

	*value = SuggestionProviderConfig(aux)

	return value.Validate()
}

func init() {
	// Register unmarshalers of custom types with the YAML library
	yaml.RegisterCustomUnmarshaler[SuggestionsConfig](unmarshalSuggestionsConfig)
	yaml.RegisterCustomUnmarshaler[SuggestionProviderConfig](unmarshalSuggestionProviderConfig)
}
