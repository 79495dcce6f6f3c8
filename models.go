package openai

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Model describes a model available through the API.
type Model struct {
	ID         string            `json:"id"`
	Object     string            `json:"object"`
	Created    int64             `json:"created"`
	OwnedBy    string            `json:"owned_by"`
	Permission []ModelPermission `json:"permission,omitempty"`
	Root       string            `json:"root,omitempty"`
	Parent     string            `json:"parent,omitempty"`
}

// ModelPermission is a permission entry attached to a model.
type ModelPermission struct {
	ID                 string `json:"id"`
	Object             string `json:"object"`
	Created            int64  `json:"created"`
	AllowCreateEngine  bool   `json:"allow_create_engine"`
	AllowSampling      bool   `json:"allow_sampling"`
	AllowLogprobs      bool   `json:"allow_logprobs"`
	AllowSearchIndices bool   `json:"allow_search_indices"`
	AllowView          bool   `json:"allow_view"`
	AllowFineTuning    bool   `json:"allow_fine_tuning"`
	Organization       string `json:"organization"`
	IsBlocking         bool   `json:"is_blocking"`
}

// ModelDeletion is the response to deleting a fine-tuned model.
type ModelDeletion struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// ListModels returns every model the credentials can use.
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	var out List[Model]
	if err := c.get(ctx, "models", &out, false); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetModel fetches one model by identifier.
func (c *Client) GetModel(ctx context.Context, id string) (*Model, error) {
	var out Model
	if err := c.get(ctx, "models/"+id, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteModel deletes a fine-tuned model owned by the organization.
func (c *Client) DeleteModel(ctx context.Context, id string) (*ModelDeletion, error) {
	var out ModelDeletion
	if err := c.del(ctx, "models/"+id, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// ModelRegistry caches the model set served by an endpoint. Providers
// add and retire models without notice, so the set is data fetched at
// runtime rather than a fixed list. The zero value is unusable; call
// NewModelRegistry.
type ModelRegistry struct {
	client *Client

	mu        sync.RWMutex
	models    map[string]Model
	refreshed time.Time
}

// NewModelRegistry returns an empty registry backed by the client.
// Call Refresh before the first lookup.
func NewModelRegistry(client *Client) *ModelRegistry {
	return &ModelRegistry{
		client: client,
		models: make(map[string]Model),
	}
}

// Refresh replaces the cached set with the endpoint's current models.
// On error the previous set is kept.
func (r *ModelRegistry) Refresh(ctx context.Context) error {
	models, err := r.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("refresh models: %w", err)
	}

	next := make(map[string]Model, len(models))
	for _, m := range models {
		next[m.ID] = m
	}

	r.mu.Lock()
	r.models = next
	r.refreshed = time.Now()
	r.mu.Unlock()

	return nil
}

// Has reports whether the identifier was present at the last refresh.
func (r *ModelRegistry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.models[id]
	return ok
}

// Get returns the cached model for the identifier.
func (r *ModelRegistry) Get(id string) (Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[id]
	return m, ok
}

// IDs returns the cached identifiers in sorted order.
func (r *ModelRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.models))
	for id := range r.models {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RefreshedAt returns when the cache was last replaced, or the zero
// time if Refresh has never succeeded.
func (r *ModelRegistry) RefreshedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.refreshed
}
