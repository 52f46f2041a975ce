package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewLLMService(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "claude-test",
	})
	require.NoError(t, err)
	return svc
}

func TestNewLLMService(t *testing.T) {
	t.Run("requires API key", func(t *testing.T) {
		_, err := NewLLMService(Config{})
		assert.Error(t, err)
	})

	t.Run("applies defaults", func(t *testing.T) {
		svc, err := NewLLMService(Config{APIKey: "k"})
		require.NoError(t, err)
		assert.Equal(t, DefaultModel, svc.ModelName())
	})
}

func TestChat(t *testing.T) {
	t.Run("sends system prompt separately and returns text", func(t *testing.T) {
		var captured messagesRequest
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/messages", r.URL.Path)
			assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
			assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

			resp := map[string]any{
				"content": []map[string]any{
					{"type": "text", "text": "the passport looks "},
					{"type": "text", "text": "complete"},
				},
			}
			json.NewEncoder(w).Encode(resp)
		})

		result, err := svc.Chat(context.Background(), []driven.ChatMessage{
			{Role: "system", Content: "you review dossiers"},
			{Role: "user", Content: "is the passport there?"},
		}, driven.ChatOptions{MaxTokens: 200})

		require.NoError(t, err)
		assert.Equal(t, "the passport looks complete", result)
		assert.Equal(t, "you review dossiers", captured.System)
		require.Len(t, captured.Messages, 1)
		assert.Equal(t, "user", captured.Messages[0].Role)
		assert.Equal(t, 200, captured.MaxTokens)
	})

	t.Run("defaults max_tokens when unset", func(t *testing.T) {
		var captured messagesRequest
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
			json.NewEncoder(w).Encode(map[string]any{
				"content": []map[string]any{{"type": "text", "text": "ok"}},
			})
		})

		_, err := svc.Chat(context.Background(), []driven.ChatMessage{
			{Role: "user", Content: "hi"},
		}, driven.ChatOptions{})
		require.NoError(t, err)
		assert.Equal(t, 1024, captured.MaxTokens)
	})

	t.Run("surfaces API errors", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"type": "invalid_request_error", "message": "bad model"},
			})
		})

		_, err := svc.Chat(context.Background(), []driven.ChatMessage{
			{Role: "user", Content: "hi"},
		}, driven.ChatOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad model")
	})

	t.Run("empty content is an error", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"content": []map[string]any{}})
		})

		_, err := svc.Chat(context.Background(), []driven.ChatMessage{
			{Role: "user", Content: "hi"},
		}, driven.ChatOptions{})
		assert.Error(t, err)
	})
}

func TestGenerate(t *testing.T) {
	var captured messagesRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"type": "text", "text": "summary"}},
		})
	})

	result, err := svc.Generate(context.Background(), "summarise this", driven.GenerateOptions{
		MaxTokens: 50,
		StopWords: []string{"END"},
	})
	require.NoError(t, err)
	assert.Equal(t, "summary", result)
	assert.Equal(t, []string{"END"}, captured.StopSeqs)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "summarise this", captured.Messages[0].Content)
}

func TestSummarise(t *testing.T) {
	var captured messagesRequest
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]any{
			"content": []map[string]any{{"type": "text", "text": " a short summary "}},
		})
	})

	summary, err := svc.Summarise(context.Background(), "electricity bill for J. Smith", 200)

	require.NoError(t, err)
	assert.Equal(t, "a short summary", summary)
	require.Len(t, captured.Messages, 1)
	assert.Contains(t, captured.Messages[0].Content, "electricity bill for J. Smith")
	assert.Contains(t, captured.Messages[0].Content, "200 characters or less")
	assert.Equal(t, 50, captured.MaxTokens)
}

func TestPing(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/models", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		})
		assert.NoError(t, svc.Ping(context.Background()))
	})

	t.Run("bad key", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		assert.Error(t, svc.Ping(context.Background()))
	})
}
