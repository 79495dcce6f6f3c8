package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected /chat/completions, got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected application/json, got %s", ct)
		}

		var req ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Model != "gpt-4o" {
			t.Errorf("Expected model gpt-4o, got %s", req.Model)
		}
		if len(req.Messages) != 2 {
			t.Fatalf("Expected 2 messages, got %d", len(req.Messages))
		}
		if req.Messages[0].Role != RoleSystem {
			t.Errorf("Expected system role first, got %s", req.Messages[0].Role)
		}

		json.NewEncoder(w).Encode(ChatCompletion{
			ID:      "chatcmpl-123",
			Object:  "chat.completion",
			Created: 1234567890,
			Model:   "gpt-4o",
			Choices: []ChatCompletionChoice{
				{
					Index:        0,
					FinishReason: "stop",
					Message:      ChatMessage{Role: RoleAssistant, Content: "Hello there."},
				},
			},
			Usage: &Usage{PromptTokens: 10, CompletionTokens: 4, TotalTokens: 14},
		})
	}))
	defer server.Close()

	client := NewClient(Credentials{APIKey: "sk-test", BaseURL: server.URL})
	completion, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model: "gpt-4o",
		Messages: []ChatMessage{
			{Role: RoleSystem, Content: "You are concise."},
			{Role: RoleUser, Content: "Hi"},
		},
	})
	if err != nil {
		t.Fatalf("CreateChatCompletion() error = %v", err)
	}
	if completion.ID != "chatcmpl-123" {
		t.Errorf("Expected chatcmpl-123, got %s", completion.ID)
	}
	if completion.Choices[0].Message.Content != "Hello there." {
		t.Errorf("Unexpected content %q", completion.Choices[0].Message.Content)
	}
	if completion.Usage.TotalTokens != 14 {
		t.Errorf("Expected 14 total tokens, got %d", completion.Usage.TotalTokens)
	}
}

func TestCreateChatCompletion_RejectsStream(t *testing.T) {
	client := NewClient(Credentials{BaseURL: "http://127.0.0.1:0"})
	_, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model:  "gpt-4o",
		Stream: true,
	})
	if err != ErrStreamingRequest {
		t.Errorf("Expected ErrStreamingRequest, got %v", err)
	}
}

func TestGetChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions/chatcmpl-abc" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(ChatCompletion{ID: "chatcmpl-abc"})
	}))
	defer server.Close()

	client := NewClient(Credentials{BaseURL: server.URL})
	completion, err := client.GetChatCompletion(context.Background(), "chatcmpl-abc")
	if err != nil {
		t.Fatalf("GetChatCompletion() error = %v", err)
	}
	if completion.ID != "chatcmpl-abc" {
		t.Errorf("Expected chatcmpl-abc, got %s", completion.ID)
	}
}

func TestToolChoice_Marshal(t *testing.T) {
	tests := []struct {
		name   string
		choice *ToolChoice
		want   string
	}{
		{"none", ToolChoiceNone, `"none"`},
		{"auto", ToolChoiceAuto, `"auto"`},
		{"required", ToolChoiceRequired, `"required"`},
		{"function", ToolChoiceFunction("get_weather"), `{"function":{"name":"get_weather"},"type":"function"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.choice)
			if err != nil {
				t.Fatalf("Marshal error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, data)
			}
		})
	}
}

func TestToolChoice_Unmarshal(t *testing.T) {
	var mode ToolChoice
	if err := json.Unmarshal([]byte(`"auto"`), &mode); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if mode.Mode != "auto" {
		t.Errorf("Expected auto, got %s", mode.Mode)
	}

	var fn ToolChoice
	if err := json.Unmarshal([]byte(`{"type":"function","function":{"name":"lookup"}}`), &fn); err != nil {
		t.Fatalf("Unmarshal error = %v", err)
	}
	if fn.Function != "lookup" {
		t.Errorf("Expected lookup, got %s", fn.Function)
	}
}

func TestChatCompletion_ToolCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if len(req.Tools) != 1 || req.Tools[0].Function.Name != "get_weather" {
			t.Errorf("Expected get_weather tool, got %+v", req.Tools)
		}

		json.NewEncoder(w).Encode(ChatCompletion{
			ID: "chatcmpl-tool",
			Choices: []ChatCompletionChoice{{
				FinishReason: "tool_calls",
				Message: ChatMessage{
					Role: RoleAssistant,
					ToolCalls: []ToolCall{{
						ID:       "call_1",
						Type:     "function",
						Function: FunctionCall{Name: "get_weather", Arguments: `{"city":"Oslo"}`},
					}},
				},
			}},
		})
	}))
	defer server.Close()

	client := NewClient(Credentials{BaseURL: server.URL})
	completion, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model:    "gpt-4o",
		Messages: []ChatMessage{{Role: RoleUser, Content: "Weather in Oslo?"}},
		Tools: []Tool{{
			Type:     "function",
			Function: FunctionDefinition{Name: "get_weather", Parameters: json.RawMessage(`{"type":"object"}`)},
		}},
		ToolChoice: ToolChoiceAuto,
	})
	if err != nil {
		t.Fatalf("CreateChatCompletion() error = %v", err)
	}

	calls := completion.Choices[0].Message.ToolCalls
	if len(calls) != 1 {
		t.Fatalf("Expected 1 tool call, got %d", len(calls))
	}
	if calls[0].Function.Arguments != `{"city":"Oslo"}` {
		t.Errorf("Unexpected arguments %s", calls[0].Function.Arguments)
	}
}
