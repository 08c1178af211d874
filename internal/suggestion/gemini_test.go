package suggestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sprintsync/sprintsync-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiConfig(baseURL string) config.SuggestionProviderConfig {
	return config.SuggestionProviderConfig{
		Name:           config.ProviderGemini,
		Model:          "gemini-1.5-flash",
		BaseURL:        baseURL,
		MaxTokens:      200,
		TimeoutSeconds: 5,
	}
}

func TestGeminiUnavailableWithoutKey(t *testing.T) {
	p, err := NewGeminiProvider(context.Background(), geminiConfig(""), "", nil)
	require.NoError(t, err)
	assert.False(t, p.Available())
	assert.Equal(t, config.ProviderGemini, p.Name())

	_, err = p.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestGeminiGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-1.5-flash:generateContent"), r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Outline the scope, then plan each step."}]}}]}`))
	}))
	defer server.Close()

	p, err := NewGeminiProvider(context.Background(), geminiConfig(server.URL), "test-key", server.Client())
	require.NoError(t, err)
	require.True(t, p.Available())

	text, err := p.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Outline the scope, then plan each step.", text)
}

func TestGeminiGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	p, err := NewGeminiProvider(context.Background(), geminiConfig(server.URL), "bad-key", server.Client())
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), "prompt")
	var providerErr *ProviderError
	assert.ErrorAs(t, err, &providerErr)
}
