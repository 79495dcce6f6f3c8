package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateVectorStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vector_stores" {
			t.Errorf("Expected /vector_stores, got %s", r.URL.Path)
		}
		if beta := r.Header.Get("OpenAI-Beta"); beta != "assistants=v2" {
			t.Errorf("Expected beta header, got %q", beta)
		}

		var req VectorStoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.Name != "docs" {
			t.Errorf("Expected docs, got %s", req.Name)
		}

		json.NewEncoder(w).Encode(VectorStore{
			ID:     "vs_1",
			Object: "vector_store",
			Name:   req.Name,
			Status: VectorStoreStatusInProgress,
			FileCounts: FileCounts{
				InProgress: len(req.FileIDs),
				Total:      len(req.FileIDs),
			},
		})
	}))
	defer server.Close()

	client := NewClient(Credentials{BaseURL: server.URL})
	store, err := client.CreateVectorStore(context.Background(), VectorStoreRequest{
		Name:    "docs",
		FileIDs: []string{"file-1", "file-2"},
	})
	if err != nil {
		t.Fatalf("CreateVectorStore() error = %v", err)
	}
	if store.ID != "vs_1" {
		t.Errorf("Expected vs_1, got %s", store.ID)
	}
	if store.FileCounts.Total != 2 {
		t.Errorf("Expected 2 files, got %d", store.FileCounts.Total)
	}
}

func TestAttachVectorStoreFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/vector_stores/vs_1/files" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if body["file_id"] != "file-1" {
			t.Errorf("Expected file_id=file-1, got %v", body)
		}

		json.NewEncoder(w).Encode(VectorStoreFile{
			ID:            "vsf_1",
			FileID:        "file-1",
			VectorStoreID: "vs_1",
			Status:        VectorStoreFileInProgress,
		})
	}))
	defer server.Close()

	client := NewClient(Credentials{BaseURL: server.URL})
	file, err := client.AttachVectorStoreFile(context.Background(), "vs_1", "file-1")
	if err != nil {
		t.Fatalf("AttachVectorStoreFile() error = %v", err)
	}
	if file.VectorStoreID != "vs_1" {
		t.Errorf("Expected vs_1, got %s", file.VectorStoreID)
	}
}
