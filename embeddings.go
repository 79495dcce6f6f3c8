package openai

import "context"

// EmbeddingsRequest is the request body for the embeddings endpoint.
// Input accepts up to 2048 strings; each must stay within the model's
// token limit.
type EmbeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
	// Dimensions reduces the output vector length. Only supported by
	// text-embedding-3 and later models.
	Dimensions     int    `json:"dimensions,omitempty"`
	EncodingFormat string `json:"encoding_format,omitempty"`
	User           string `json:"user,omitempty"`
}

// Embeddings is an embeddings response.
type Embeddings struct {
	Object string      `json:"object"`
	Data   []Embedding `json:"data"`
	Model  string      `json:"model"`
	Usage  Usage       `json:"usage"`
}

// Embedding is one input string's vector. Vectors come back in the same
// order as the request inputs.
type Embedding struct {
	Object    string    `json:"object"`
	Index     int       `json:"index"`
	Embedding []float64 `json:"embedding"`
}

// DistanceTo returns the squared Euclidean distance between two
// vectors. It panics if the lengths differ.
func (e Embedding) DistanceTo(other Embedding) float64 {
	if len(e.Embedding) != len(other.Embedding) {
		panic("openai: embedding length mismatch")
	}
	var sum float64
	for i, v := range e.Embedding {
		d := v - other.Embedding[i]
		sum += d * d
	}
	return sum
}

// CreateEmbeddings computes vectors for the request inputs.
func (c *Client) CreateEmbeddings(ctx context.Context, req EmbeddingsRequest) (*Embeddings, error) {
	var out Embeddings
	if err := c.post(ctx, "embeddings", req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateEmbedding computes a vector for a single input string.
func (c *Client) CreateEmbedding(ctx context.Context, model, input string) (*Embedding, error) {
	out, err := c.CreateEmbeddings(ctx, EmbeddingsRequest{Model: model, Input: []string{input}})
	if err != nil {
		return nil, err
	}
	if len(out.Data) == 0 {
		return nil, &APIError{Type: "unknown", Message: "embeddings response has no data"}
	}
	return &out.Data[0], nil
}
