package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/openai-cake/backend/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		OpenAIAPIKey:  "test-api-key",
		OpenAIAPIURL:  baseURL + "/v1",
		ChatModel:     "gpt-4o-mini",
		ImageModel:    "dall-e-3",
		OpenAITimeout: 5 * time.Second,
	}
}

func TestLLMService_GenerateStructured(t *testing.T) {
	var captured map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"chatcmpl-1","model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":"{\"response\":{}}"},"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":5,"total_tokens":15}}`)
	}))
	defer ts.Close()

	svc := NewLLMService(testConfig(ts.URL), zap.NewNop())
	content, err := svc.GenerateStructured(context.Background(), recipeMessages, recipeResponseFormat)
	require.NoError(t, err)
	assert.Equal(t, `{"response":{}}`, content)

	assert.Equal(t, "gpt-4o-mini", captured["model"])
	messages := captured["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]any)["role"])
	assert.Equal(t, "user", messages[1].(map[string]any)["role"])

	format := captured["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	schema := format["json_schema"].(map[string]any)
	assert.Equal(t, "recipe_response", schema["name"])
	assert.Equal(t, true, schema["strict"])
}

func TestLLMService_Complete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "response_format")

		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Hier ist ein Rezept für Apfelkuchen."}}]}`)
	}))
	defer ts.Close()

	svc := NewLLMService(testConfig(ts.URL), zap.NewNop())
	msg, err := svc.Complete(context.Background(), []Message{{Role: "user", Content: "Apfelkuchen"}})
	require.NoError(t, err)
	assert.Equal(t, "assistant", msg.Role)
	assert.Equal(t, "Hier ist ein Rezept für Apfelkuchen.", msg.Content)
}

func TestLLMService_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		contains string
	}{
		{
			name:     "provider error message",
			status:   http.StatusUnauthorized,
			body:     `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`,
			contains: "API request failed with status 401: Incorrect API key provided",
		},
		{
			name:     "raw error body",
			status:   http.StatusBadGateway,
			body:     "upstream unavailable",
			contains: "API request failed with status 502: upstream unavailable",
		},
		{
			name:     "no choices",
			status:   http.StatusOK,
			body:     `{"choices":[]}`,
			contains: "no response from API",
		},
		{
			name:     "refusal",
			status:   http.StatusOK,
			body:     `{"choices":[{"message":{"role":"assistant","content":"","refusal":"I can't help with that."}}]}`,
			contains: "model refused the request: I can't help with that.",
		},
		{
			name:     "malformed body",
			status:   http.StatusOK,
			body:     `{"choices":`,
			contains: "failed to decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()

			svc := NewLLMService(testConfig(ts.URL), zap.NewNop())
			_, err := svc.GenerateStructured(context.Background(), recipeMessages, recipeResponseFormat)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLLMService_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	svc := NewLLMService(testConfig(url), zap.NewNop())
	_, err := svc.GenerateStructured(context.Background(), recipeMessages, recipeResponseFormat)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send request")
}

func TestLLMService_CallerCancellation(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer ts.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	svc := NewLLMService(testConfig(ts.URL), zap.NewNop())
	_, err := svc.GenerateStructured(ctx, recipeMessages, recipeResponseFormat)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRecipeResponseFormat(t *testing.T) {
	data, err := json.Marshal(recipeResponseFormat)
	require.NoError(t, err)

	var format struct {
		Type       string `json:"type"`
		JSONSchema struct {
			Name   string `json:"name"`
			Strict bool   `json:"strict"`
			Schema struct {
				Type                 string   `json:"type"`
				Required             []string `json:"required"`
				AdditionalProperties *bool    `json:"additionalProperties"`
				Properties           struct {
					Response struct {
						Type                 string                    `json:"type"`
						Required             []string                  `json:"required"`
						AdditionalProperties *bool                     `json:"additionalProperties"`
						Properties           map[string]map[string]any `json:"properties"`
					} `json:"response"`
				} `json:"properties"`
			} `json:"schema"`
		} `json:"json_schema"`
	}
	require.NoError(t, json.Unmarshal(data, &format))

	assert.Equal(t, "json_schema", format.Type)
	assert.Equal(t, "recipe_response", format.JSONSchema.Name)
	assert.True(t, format.JSONSchema.Strict)

	root := format.JSONSchema.Schema
	assert.Equal(t, "object", root.Type)
	assert.Equal(t, []string{"response"}, root.Required)
	require.NotNil(t, root.AdditionalProperties)
	assert.False(t, *root.AdditionalProperties)

	recipe := root.Properties.Response
	assert.Equal(t, "object", recipe.Type)
	require.NotNil(t, recipe.AdditionalProperties)
	assert.False(t, *recipe.AdditionalProperties)
	assert.Len(t, recipe.Required, 11)
	assert.Len(t, recipe.Properties, 11)
	for _, field := range recipe.Required {
		assert.Contains(t, recipe.Properties, field)
	}

	for _, field := range []string{"ingredients", "steps", "tips"} {
		assert.Equal(t, "array", recipe.Properties[field]["type"])
		assert.Equal(t, map[string]any{"type": "string"}, recipe.Properties[field]["items"])
	}
	for _, field := range []string{"title", "description", "difficulty", "prepTime", "servings", "category", "imageUrl", "author"} {
		assert.Equal(t, map[string]any{"type": "string"}, recipe.Properties[field])
	}
}
