package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewGeminiModel_RequiresAPIKey(t *testing.T) {
	model, err := NewGeminiModel(context.Background(), "", "", nil)

	assert.Error(t, err)
	assert.Nil(t, model)
}

func TestNewGeminiModel_DefaultModel(t *testing.T) {
	model, err := NewGeminiModel(context.Background(), "test-key", "", nil)

	require.NoError(t, err)
	assert.Equal(t, "genai:gemini-2.0-flash", model.Name())
}

func TestDisabled_Complete(t *testing.T) {
	text, err := Disabled{}.Complete(context.Background(), "prompt")

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, text)
}

// newFakeGemini serves generateContent with the given reply text
func newFakeGemini(t *testing.T, reply string) *GeminiModel {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/test-model:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{{
				"content": map[string]interface{}{
					"role":  "model",
					"parts": []map[string]string{{"text": reply}},
				},
			}},
		})
	}))
	t.Cleanup(server.Close)

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:      "test-key",
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  server.Client(),
		HTTPOptions: genai.HTTPOptions{BaseURL: server.URL + "/"},
	})
	require.NoError(t, err)
	return &GeminiModel{client: client, model: "test-model"}
}

func TestGeminiModel_CompleteIsVerbatim(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{name: "surrounding whitespace", reply: "  Reset it under Settings.\n"},
		{name: "empty", reply: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := newFakeGemini(t, tt.reply)

			text, err := model.Complete(context.Background(), "prompt")

			require.NoError(t, err)
			assert.Equal(t, tt.reply, text)
		})
	}
}
