package openai

import (
	"context"
	"encoding/json"
)

// Vector store statuses.
const (
	VectorStoreStatusExpired    = "expired"
	VectorStoreStatusInProgress = "in_progress"
	VectorStoreStatusCompleted  = "completed"
)

// Vector store file statuses.
const (
	VectorStoreFileInProgress = "in_progress"
	VectorStoreFileCompleted  = "completed"
	VectorStoreFileCancelled  = "cancelled"
	VectorStoreFileFailed     = "failed"
)

// VectorStore holds files indexed for the file_search tool.
type VectorStore struct {
	ID           string            `json:"id"`
	Object       string            `json:"object"`
	Created      int64             `json:"created_at"`
	Name         string            `json:"name"`
	UsageBytes   int64             `json:"usage_bytes"`
	FileCounts   FileCounts        `json:"file_counts"`
	Status       string            `json:"status"`
	ExpiresAfter *ExpiresAfter     `json:"expires_after,omitempty"`
	ExpiresAt    int64             `json:"expires_at,omitempty"`
	LastActiveAt int64             `json:"last_active_at,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// FileCounts breaks down a vector store's files by indexing state.
type FileCounts struct {
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
	Cancelled  int `json:"cancelled"`
	Total      int `json:"total"`
}

// ExpiresAfter schedules a vector store's expiry relative to an anchor
// timestamp, currently only "last_active_at".
type ExpiresAfter struct {
	Anchor string `json:"anchor"`
	Days   int    `json:"days"`
}

// VectorStoreRequest creates a vector store, optionally seeded with
// files.
type VectorStoreRequest struct {
	Name         string            `json:"name"`
	FileIDs      []string          `json:"file_ids,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	ExpiresAfter *ExpiresAfter     `json:"expires_after,omitempty"`
}

// VectorStoreFile is one file's indexing record in a vector store.
type VectorStoreFile struct {
	ID            string          `json:"id"`
	Object        string          `json:"object"`
	Created       int64           `json:"created_at"`
	FileID        string          `json:"file_id"`
	VectorStoreID string          `json:"vector_store_id"`
	UsageBytes    int64           `json:"usage_bytes"`
	Status        string          `json:"status"`
	LastError     json.RawMessage `json:"last_error,omitempty"`
}

// CreateVectorStore creates a vector store.
func (c *Client) CreateVectorStore(ctx context.Context, req VectorStoreRequest) (*VectorStore, error) {
	var out VectorStore
	if err := c.post(ctx, "vector_stores", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetVectorStore fetches a vector store by identifier.
func (c *Client) GetVectorStore(ctx context.Context, id string) (*VectorStore, error) {
	var out VectorStore
	if err := c.get(ctx, "vector_stores/"+id, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// AttachVectorStoreFile adds an uploaded file to a vector store and
// starts indexing it.
func (c *Client) AttachVectorStoreFile(ctx context.Context, vectorStoreID, fileID string) (*VectorStoreFile, error) {
	var out VectorStoreFile
	body := map[string]string{"file_id": fileID}
	if err := c.post(ctx, "vector_stores/"+vectorStoreID+"/files", body, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}
