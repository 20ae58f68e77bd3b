package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-key")
	config.BaseURL = server.URL + "/v1"
	client := openai.NewClientWithConfig(config)

	return &OpenAIProvider{
		client: client,
		model:  "gpt-4o-mini",
	}
}

func writeChatCompletion(w http.ResponseWriter, message map[string]any, finish string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1234567890,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{
			{"index": 0, "message": message, "finish_reason": finish},
		},
		"usage": map[string]any{
			"prompt_tokens":     40,
			"completion_tokens": 25,
			"total_tokens":      65,
		},
	})
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"type": "error", "message": message},
	})
}

func photoRequest() Request {
	return Request{
		System: "You are a photography instructor.",
		Messages: []Message{{
			Role:    RoleUser,
			Content: "Grade this photo.",
			Images:  []Image{{MediaType: "image/png", Data: "iVBORw0KGgo="}},
		}},
		Schema:    gradeSchema(),
		MaxTokens: 512,
	}
}

func TestOpenAIProvider_ForcedToolCall(t *testing.T) {
	var captured map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		writeChatCompletion(w, map[string]any{
			"role": "assistant",
			"tool_calls": []map[string]any{{
				"id":   "call_1",
				"type": "function",
				"function": map[string]any{
					"name":      "test_grade",
					"arguments": `{"rating":4,"pass":true,"notes":["sharp","balanced"]}`,
				},
			}},
		}, "tool_calls")
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), photoRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"rating":4,"pass":true,"notes":["sharp","balanced"]}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if resp.Usage.InputTokens != 40 || resp.Usage.OutputTokens != 25 {
		t.Fatalf("unexpected usage: %+v", resp.Usage)
	}
	if resp.StopReason != "tool_use" {
		t.Fatalf("expected stop reason 'tool_use', got %q", resp.StopReason)
	}

	choice, ok := captured["tool_choice"].(map[string]any)
	if !ok {
		t.Fatalf("expected tool_choice object, got %v", captured["tool_choice"])
	}
	fn, _ := choice["function"].(map[string]any)
	if fn["name"] != "test_grade" {
		t.Fatalf("expected forced tool test_grade, got %v", fn["name"])
	}

	msgs, _ := captured["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(msgs))
	}
	user, _ := msgs[1].(map[string]any)
	parts, _ := user["content"].([]any)
	if len(parts) != 2 {
		t.Fatalf("expected text + image parts, got %v", user["content"])
	}
	img, _ := parts[1].(map[string]any)
	url, _ := img["image_url"].(map[string]any)
	if url["url"] != "data:image/png;base64,iVBORw0KGgo=" {
		t.Fatalf("unexpected image url: %v", url["url"])
	}
}

func TestOpenAIProvider_MissingToolCall(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		writeChatCompletion(w, map[string]any{
			"role":    "assistant",
			"content": "Nice photo!",
		}, "stop")
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), photoRequest())
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ToolArgumentsViolateSchema(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		writeChatCompletion(w, map[string]any{
			"role": "assistant",
			"tool_calls": []map[string]any{{
				"id":   "call_1",
				"type": "function",
				"function": map[string]any{
					"name":      "test_grade",
					"arguments": `{"rating":9,"pass":true,"notes":["x","y"]}`,
				},
			}},
		}, "tool_calls")
	}

	p := newTestOpenAIProvider(t, handler)
	_, err := p.Generate(context.Background(), photoRequest())
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T (%v)", err, err)
	}
}

func TestOpenAIProvider_TextWithoutSchema(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		writeChatCompletion(w, map[string]any{
			"role":    "assistant",
			"content": `"hello"`,
		}, "stop")
	}

	p := newTestOpenAIProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "say hello"}},
		MaxTokens: 16,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}
}

func TestOpenAIProvider_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"rate limit", http.StatusTooManyRequests, func(err error) bool {
			var e *ErrRateLimit
			return errors.As(err, &e)
		}},
		{"payment required", http.StatusPaymentRequired, func(err error) bool {
			var e *ErrQuotaExhausted
			return errors.As(err, &e)
		}},
		{"server error", http.StatusInternalServerError, func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e) && e.StatusCode == http.StatusInternalServerError
		}},
		{"bad request", http.StatusBadRequest, func(err error) bool {
			var e *ErrProviderUnavailable
			return errors.As(err, &e)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
				writeAPIError(w, tt.status, "nope")
			})
			_, err := p.Generate(context.Background(), photoRequest())
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Fatalf("unexpected error type %T (%v)", err, err)
			}
		})
	}
}

func TestOpenAIProvider_ModelID(t *testing.T) {
	p := &OpenAIProvider{model: "gpt-4o-mini"}
	if p.ModelID() != "gpt-4o-mini" {
		t.Fatalf("expected 'gpt-4o-mini', got %q", p.ModelID())
	}
}

func TestOpenAIProvider_BaseURLOverride(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o",
		BaseURL: "https://gateway.example/v1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "gpt-4o" {
		t.Fatalf("expected 'gpt-4o', got %q", p.ModelID())
	}
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}
