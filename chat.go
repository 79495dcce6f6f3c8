package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Message roles accepted by the chat completions endpoint.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleFunction  = "function"
	RoleTool      = "tool"
	RoleDeveloper = "developer"
)

// Reasoning effort levels for reasoning models.
const (
	ReasoningEffortLow    = "low"
	ReasoningEffortMedium = "medium"
	ReasoningEffortHigh   = "high"
)

// ChatMessage is a single message in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	// Name of the author in a multi-user chat.
	Name string `json:"name,omitempty"`
	// FunctionCall is returned by the model, not set by the caller.
	//
	// Deprecated: the API reports tool invocations in ToolCalls.
	FunctionCall *FunctionCall `json:"function_call,omitempty"`
	// ToolCallID references the tool call this message responds to.
	// Required when Role is "tool".
	ToolCallID string `json:"tool_call_id,omitempty"`
	// ToolCalls the assistant is requesting to invoke. Only populated
	// on assistant messages.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// FunctionCall names a function the model decided to call, with its
// arguments as a JSON-encoded string.
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolCall is a tool invocation requested by the model. The arguments are
// model-generated JSON and are not guaranteed to be valid; validate them
// before dispatching.
type ToolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function FunctionCall `json:"function"`
}

// Tool describes a tool the model may call. Only "function" tools are
// currently supported by the API.
type Tool struct {
	Type     string             `json:"type"`
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes a callable function: its name, what it
// does, and a JSON Schema for its parameters.
type FunctionDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
	// Strict enables strict schema adherence (structured outputs).
	Strict *bool `json:"strict,omitempty"`
}

// ToolChoice controls which tool, if any, the model calls. Either Mode
// ("none", "auto" or "required") or Function (the name of a specific
// function the model must call) is set.
type ToolChoice struct {
	Mode     string
	Function string
}

// ToolChoiceAuto and friends are ready-made mode choices.
var (
	ToolChoiceNone     = &ToolChoice{Mode: "none"}
	ToolChoiceAuto     = &ToolChoice{Mode: "auto"}
	ToolChoiceRequired = &ToolChoice{Mode: "required"}
)

// ToolChoiceFunction forces the model to call the named function.
func ToolChoiceFunction(name string) *ToolChoice {
	return &ToolChoice{Function: name}
}

func (t ToolChoice) MarshalJSON() ([]byte, error) {
	if t.Function != "" {
		return json.Marshal(map[string]any{
			"type":     "function",
			"function": map[string]string{"name": t.Function},
		})
	}
	return json.Marshal(t.Mode)
}

func (t *ToolChoice) UnmarshalJSON(data []byte) error {
	var mode string
	if err := json.Unmarshal(data, &mode); err == nil {
		t.Mode = mode
		t.Function = ""
		return nil
	}
	var obj struct {
		Function struct {
			Name string `json:"name"`
		} `json:"function"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	t.Mode = ""
	t.Function = obj.Function.Name
	return nil
}

// ChatCompletionRequest is the request body for the chat completions
// endpoint. Optional sampling knobs use pointers so the zero value is
// distinguishable from "not set".
type ChatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
	// ReasoningEffort constrains reasoning on reasoning models
	// ("low", "medium" or "high").
	ReasoningEffort string   `json:"reasoning_effort,omitempty"`
	Temperature     *float32 `json:"temperature,omitempty"`
	TopP            *float32 `json:"top_p,omitempty"`
	// N is how many completion choices to generate.
	N      int      `json:"n,omitempty"`
	Stream bool     `json:"stream,omitempty"`
	Stop   []string `json:"stop,omitempty"`
	Seed   *int64   `json:"seed,omitempty"`
	// Deprecated: use MaxCompletionTokens.
	MaxTokens           int                `json:"max_tokens,omitempty"`
	MaxCompletionTokens int                `json:"max_completion_tokens,omitempty"`
	PresencePenalty     *float32           `json:"presence_penalty,omitempty"`
	FrequencyPenalty    *float32           `json:"frequency_penalty,omitempty"`
	LogitBias           map[string]float32 `json:"logit_bias,omitempty"`
	User                string             `json:"user,omitempty"`
	Tools               []Tool             `json:"tools,omitempty"`
	ToolChoice          *ToolChoice        `json:"tool_choice,omitempty"`
	ParallelToolCalls   *bool              `json:"parallel_tool_calls,omitempty"`
	// Deprecated: use Tools.
	Functions []FunctionDefinition `json:"functions,omitempty"`
	// Deprecated: use ToolChoice.
	FunctionCall   json.RawMessage `json:"function_call,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatCompletion is a full (non-streamed) chat completion response.
type ChatCompletion struct {
	ID                string                 `json:"id"`
	Object            string                 `json:"object"`
	Created           int64                  `json:"created"`
	Model             string                 `json:"model"`
	Choices           []ChatCompletionChoice `json:"choices"`
	Usage             *Usage                 `json:"usage,omitempty"`
	SystemFingerprint string                 `json:"system_fingerprint,omitempty"`
}

// ChatCompletionChoice is one generated answer.
type ChatCompletionChoice struct {
	Index        int         `json:"index"`
	FinishReason string      `json:"finish_reason"`
	Message      ChatMessage `json:"message"`
}

// ErrStreamingRequest is returned when a request with the stream flag set
// is passed to a non-streaming call.
var ErrStreamingRequest = errors.New("request has stream set; use a streaming call")

// CreateChatCompletion requests a chat completion and waits for the full
// response.
func (c *Client) CreateChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletion, error) {
	if req.Stream {
		return nil, ErrStreamingRequest
	}
	var completion ChatCompletion
	if err := c.post(ctx, "chat/completions", req, &completion, false); err != nil {
		return nil, err
	}
	return &completion, nil
}

// GetChatCompletion retrieves a stored chat completion by ID.
func (c *Client) GetChatCompletion(ctx context.Context, id string) (*ChatCompletion, error) {
	var completion ChatCompletion
	if err := c.get(ctx, fmt.Sprintf("chat/completions/%s", id), &completion, false); err != nil {
		return nil, err
	}
	return &completion, nil
}
