package openai

import (
	"context"
	"encoding/json"
)

// CompletionRequest is the request body for the legacy text completions
// endpoint.
type CompletionRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt,omitempty"`
	// Suffix comes after a completion of inserted text.
	Suffix      string   `json:"suffix,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
	Temperature *float32 `json:"temperature,omitempty"`
	TopP        *float32 `json:"top_p,omitempty"`
	N           int      `json:"n,omitempty"`
	Stream      bool     `json:"stream,omitempty"`
	// Logprobs asks for log probabilities on the most likely tokens,
	// up to 5.
	Logprobs *int `json:"logprobs,omitempty"`
	// Echo returns the prompt alongside the completion.
	Echo             bool     `json:"echo,omitempty"`
	Stop             string   `json:"stop,omitempty"`
	PresencePenalty  *float32 `json:"presence_penalty,omitempty"`
	FrequencyPenalty *float32 `json:"frequency_penalty,omitempty"`
	// BestOf generates that many completions server-side and returns
	// the highest log probability per token. Must exceed N when both
	// are set.
	BestOf    int            `json:"best_of,omitempty"`
	LogitBias map[string]int `json:"logit_bias,omitempty"`
	User      string         `json:"user,omitempty"`
}

// Completion is a text completion response.
type Completion struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []CompletionChoice `json:"choices"`
	Usage   *Usage             `json:"usage,omitempty"`
}

// CompletionChoice is one generated completion.
type CompletionChoice struct {
	Text         string          `json:"text"`
	Index        int             `json:"index"`
	Logprobs     json.RawMessage `json:"logprobs,omitempty"`
	FinishReason string          `json:"finish_reason"`
}

// CreateCompletion requests a text completion for the given prompt.
func (c *Client) CreateCompletion(ctx context.Context, req CompletionRequest) (*Completion, error) {
	if req.Stream {
		return nil, ErrStreamingRequest
	}
	var completion Completion
	if err := c.post(ctx, "completions", req, &completion, false); err != nil {
		return nil, err
	}
	return &completion, nil
}
