package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/completions" {
			t.Errorf("Expected /completions, got %s", r.URL.Path)
		}

		var req CompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Prompt != "Say this is a test" {
			t.Errorf("Unexpected prompt %q", req.Prompt)
		}

		json.NewEncoder(w).Encode(Completion{
			ID:     "cmpl-1",
			Object: "text_completion",
			Model:  "gpt-3.5-turbo-instruct",
			Choices: []CompletionChoice{
				{Text: "\n\nThis is indeed a test", Index: 0, FinishReason: "length"},
			},
			Usage: &Usage{PromptTokens: 5, CompletionTokens: 7, TotalTokens: 12},
		})
	}))
	defer server.Close()

	client := NewClient(Credentials{BaseURL: server.URL})
	completion, err := client.CreateCompletion(context.Background(), CompletionRequest{
		Model:     "gpt-3.5-turbo-instruct",
		Prompt:    "Say this is a test",
		MaxTokens: 7,
	})
	if err != nil {
		t.Fatalf("CreateCompletion() error = %v", err)
	}
	if len(completion.Choices) != 1 {
		t.Fatalf("Expected 1 choice, got %d", len(completion.Choices))
	}
	if completion.Choices[0].FinishReason != "length" {
		t.Errorf("Expected length, got %s", completion.Choices[0].FinishReason)
	}
}

func TestCreateCompletion_RejectsStream(t *testing.T) {
	client := NewClient(Credentials{BaseURL: "http://127.0.0.1:0"})
	_, err := client.CreateCompletion(context.Background(), CompletionRequest{
		Model:  "gpt-3.5-turbo-instruct",
		Stream: true,
	})
	if err != ErrStreamingRequest {
		t.Errorf("Expected ErrStreamingRequest, got %v", err)
	}
}
