package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateEmbeddings(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("Expected /embeddings, got %s", r.URL.Path)
		}

		var req EmbeddingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if len(req.Input) != 2 {
			t.Fatalf("Expected 2 inputs, got %d", len(req.Input))
		}

		json.NewEncoder(w).Encode(Embeddings{
			Object: "list",
			Model:  req.Model,
			Data: []Embedding{
				{Object: "embedding", Index: 0, Embedding: []float64{0.1, 0.2}},
				{Object: "embedding", Index: 1, Embedding: []float64{0.3, 0.4}},
			},
			Usage: Usage{PromptTokens: 8, TotalTokens: 8},
		})
	}))
	defer server.Close()

	client := NewClient(Credentials{BaseURL: server.URL})
	out, err := client.CreateEmbeddings(context.Background(), EmbeddingsRequest{
		Model: "text-embedding-3-small",
		Input: []string{"first", "second"},
	})
	if err != nil {
		t.Fatalf("CreateEmbeddings() error = %v", err)
	}
	if len(out.Data) != 2 {
		t.Fatalf("Expected 2 embeddings, got %d", len(out.Data))
	}
	if out.Data[1].Index != 1 {
		t.Errorf("Expected index 1, got %d", out.Data[1].Index)
	}
}

func TestCreateEmbedding_Single(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Embeddings{
			Data: []Embedding{{Index: 0, Embedding: []float64{1, 2, 3}}},
		})
	}))
	defer server.Close()

	client := NewClient(Credentials{BaseURL: server.URL})
	emb, err := client.CreateEmbedding(context.Background(), "text-embedding-3-small", "hello")
	if err != nil {
		t.Fatalf("CreateEmbedding() error = %v", err)
	}
	if len(emb.Embedding) != 3 {
		t.Errorf("Expected 3 dimensions, got %d", len(emb.Embedding))
	}
}

func TestEmbedding_DistanceTo(t *testing.T) {
	a := Embedding{Embedding: []float64{0, 0}}
	b := Embedding{Embedding: []float64{3, 4}}
	if d := a.DistanceTo(b); d != 25 {
		t.Errorf("Expected squared distance 25, got %v", d)
	}
	if d := a.DistanceTo(a); d != 0 {
		t.Errorf("Expected zero distance to self, got %v", d)
	}
}
