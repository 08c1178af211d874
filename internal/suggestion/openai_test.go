package suggestion

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sprintsync/sprintsync-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAIConfig(baseURL string) config.SuggestionProviderConfig {
	temperature := 0.7
	return config.SuggestionProviderConfig{
		Name:           config.ProviderOpenAI,
		Model:          "gpt-3.5-turbo",
		BaseURL:        baseURL,
		MaxTokens:      200,
		Temperature:    &temperature,
		TimeoutSeconds: 5,
	}
}

func TestOpenAIGenerate(t *testing.T) {
	var got chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Break it into steps.  "}}]}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(openAIConfig(server.URL+"/v1/"), "sk-test", server.Client())
	require.True(t, p.Available())

	text, err := p.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Break it into steps.", text)

	assert.Equal(t, "gpt-3.5-turbo", got.Model)
	assert.Equal(t, 200, got.MaxTokens)
	assert.Equal(t, 0.7, got.Temperature)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, systemPrompt, got.Messages[0].Content)
	assert.Equal(t, "prompt", got.Messages[1].Content)
}

func TestOpenAIGenerateHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(strings.Repeat("q", 2000)))
	}))
	defer server.Close()

	p := NewOpenAIProvider(openAIConfig(server.URL), "sk-test", server.Client())

	_, err := p.Generate(context.Background(), "prompt")
	var providerErr *ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, http.StatusTooManyRequests, providerErr.StatusCode)
	assert.Less(t, len(err.Error()), 700)
}

func TestOpenAIGenerateEmpty(t *testing.T) {
	for _, body := range []string{`{"choices":[]}`, `{"choices":[{"message":{"content":"   "}}]}`} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		p := NewOpenAIProvider(openAIConfig(server.URL), "sk-test", server.Client())
		_, err := p.Generate(context.Background(), "prompt")
		assert.ErrorIs(t, err, ErrEmptyResponse)

		server.Close()
	}
}

func TestOpenAIGenerateRequestErrors(t *testing.T) {
	nan := math.NaN()
	badTemperature := openAIConfig("http://127.0.0.1:1")
	badTemperature.Temperature = &nan

	tests := []struct {
		name string
		cfg  config.SuggestionProviderConfig
	}{
		{"unencodable payload", badTemperature},
		{"malformed base url", openAIConfig("http://[::1")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewOpenAIProvider(tt.cfg, "sk-test", nil)

			_, err := p.Generate(context.Background(), "prompt")
			var providerErr *ProviderError
			require.True(t, errors.As(err, &providerErr), "got %v", err)
			assert.Equal(t, config.ProviderOpenAI, providerErr.Provider)
			assert.Zero(t, providerErr.StatusCode)
		})
	}
}

func TestOpenAIUnavailableWithoutKey(t *testing.T) {
	p := NewOpenAIProvider(openAIConfig("http://127.0.0.1:1"), "", nil)
	assert.False(t, p.Available())
	assert.Equal(t, config.ProviderOpenAI, p.Name())
}
