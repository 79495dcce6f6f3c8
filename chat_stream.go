package openai

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ChatCompletionChunk is one server-sent event of a streamed chat
// completion.
type ChatCompletionChunk struct {
	ID                string        `json:"id"`
	Object            string        `json:"object"`
	Created           int64         `json:"created"`
	Model             string        `json:"model"`
	Choices           []ChunkChoice `json:"choices"`
	Usage             *Usage        `json:"usage,omitempty"`
	SystemFingerprint string        `json:"system_fingerprint,omitempty"`
}

// ChunkChoice is the delta for one choice within a streamed chunk.
type ChunkChoice struct {
	Index        int          `json:"index"`
	FinishReason string       `json:"finish_reason,omitempty"`
	Delta        MessageDelta `json:"delta"`
}

// MessageDelta carries the incremental fields of a streamed message.
type MessageDelta struct {
	Role         string          `json:"role,omitempty"`
	Content      string          `json:"content,omitempty"`
	Name         string          `json:"name,omitempty"`
	FunctionCall *FunctionCall   `json:"function_call,omitempty"`
	ToolCallID   string          `json:"tool_call_id,omitempty"`
	ToolCalls    []ToolCallDelta `json:"tool_calls,omitempty"`
}

// ToolCallDelta is a fragment of a tool call; the arguments string arrives
// spread over multiple chunks and is reassembled by Accumulator.
type ToolCallDelta struct {
	Index    int          `json:"index"`
	ID       string       `json:"id,omitempty"`
	Type     string       `json:"type,omitempty"`
	Function FunctionCall `json:"function"`
}

// ChatCompletionStream reads chat completion chunks from a server-sent
// event stream. Callers must Close the stream when done.
type ChatCompletionStream struct {
	resp    *http.Response
	scanner *bufio.Scanner
}

const ssePrefix = "data:"

// Recv returns the next chunk. It returns io.EOF once the server sends
// the terminating [DONE] event or closes the stream.
func (s *ChatCompletionStream) Recv() (*ChatCompletionChunk, error) {
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if !strings.HasPrefix(line, ssePrefix) {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, ssePrefix))
		if data == "" {
			continue
		}
		if data == "[DONE]" {
			return nil, io.EOF
		}

		var chunk ChatCompletionChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return nil, fmt.Errorf("failed to parse stream event: %w", err)
		}
		return &chunk, nil
	}
	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("stream read failed: %w", err)
	}
	return nil, io.EOF
}

// Close releases the underlying connection.
func (s *ChatCompletionStream) Close() error {
	return s.resp.Body.Close()
}

// CreateChatCompletionStream requests a chat completion as a server-sent
// event stream. The request's Stream flag is forced on.
func (c *Client) CreateChatCompletionStream(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionStream, error) {
	req.Stream = true

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "chat/completions", strings.NewReader(string(data)), "application/json", false)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "text/event-stream")

	c.logger.Debug().
		Str("method", httpReq.Method).
		Str("url", httpReq.URL.String()).
		Msg("api stream request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("failed to read response: %w", readErr)
		}
		return nil, decodeAPIError(resp.StatusCode, body)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	return &ChatCompletionStream{resp: resp, scanner: scanner}, nil
}

// Accumulator merge errors.
var (
	ErrChunkIDMismatch = errors.New("chunk belongs to a different completion")
)

// ChatCompletionAccumulator merges streamed chunks back into a full
// ChatCompletion: content and tool-call argument fragments are
// concatenated, while identity fields keep their first value.
type ChatCompletionAccumulator struct {
	completion *ChatCompletion
}

// Add merges a chunk into the accumulated completion. Chunks from a
// different completion ID are rejected.
func (a *ChatCompletionAccumulator) Add(chunk *ChatCompletionChunk) error {
	if a.completion == nil {
		a.completion = &ChatCompletion{
			ID:                chunk.ID,
			Object:            chunk.Object,
			Created:           chunk.Created,
			Model:             chunk.Model,
			SystemFingerprint: chunk.SystemFingerprint,
		}
	} else if chunk.ID != a.completion.ID {
		return ErrChunkIDMismatch
	}

	if chunk.Usage != nil {
		a.completion.Usage = chunk.Usage
	}

	for i := range chunk.Choices {
		a.mergeChoice(&chunk.Choices[i])
	}
	return nil
}

// Completion returns the completion accumulated so far, or nil if no
// chunk has been added.
func (a *ChatCompletionAccumulator) Completion() *ChatCompletion {
	return a.completion
}

func (a *ChatCompletionAccumulator) mergeChoice(delta *ChunkChoice) {
	choice := a.choiceByIndex(delta.Index)

	if choice.FinishReason == "" {
		choice.FinishReason = delta.FinishReason
	}
	msg := &choice.Message
	if msg.Role == "" {
		msg.Role = delta.Delta.Role
	}
	if msg.Name == "" {
		msg.Name = delta.Delta.Name
	}
	if msg.ToolCallID == "" {
		msg.ToolCallID = delta.Delta.ToolCallID
	}
	msg.Content += delta.Delta.Content

	if fc := delta.Delta.FunctionCall; fc != nil {
		if msg.FunctionCall == nil {
			msg.FunctionCall = &FunctionCall{}
		}
		if msg.FunctionCall.Name == "" {
			msg.FunctionCall.Name = fc.Name
		}
		msg.FunctionCall.Arguments += fc.Arguments
	}

	for _, tc := range delta.Delta.ToolCalls {
		a.mergeToolCall(msg, tc)
	}
}

func (a *ChatCompletionAccumulator) choiceByIndex(index int) *ChatCompletionChoice {
	for i := range a.completion.Choices {
		if a.completion.Choices[i].Index == index {
			return &a.completion.Choices[i]
		}
	}
	a.completion.Choices = append(a.completion.Choices, ChatCompletionChoice{Index: index})
	return &a.completion.Choices[len(a.completion.Choices)-1]
}

// mergeToolCall reassembles tool calls by their stream index. Chunks for
// the same tool call carry the argument string in fragments.
func (a *ChatCompletionAccumulator) mergeToolCall(msg *ChatMessage, delta ToolCallDelta) {
	for delta.Index >= len(msg.ToolCalls) {
		msg.ToolCalls = append(msg.ToolCalls, ToolCall{})
	}
	tc := &msg.ToolCalls[delta.Index]
	if tc.ID == "" {
		tc.ID = delta.ID
	}
	if tc.Type == "" {
		tc.Type = delta.Type
	}
	if tc.Function.Name == "" {
		tc.Function.Name = delta.Function.Name
	}
	tc.Function.Arguments += delta.Function.Arguments
}
