package openai

import (
	"context"
	"time"
)

// Run statuses.
const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusIncomplete     RunStatus = "incomplete"
	RunStatusExpired        RunStatus = "expired"
)

// RunStatus is the lifecycle state of a run.
type RunStatus string

// IsTerminal reports whether the run has stopped moving on its own.
// A run in requires_action is terminal until tool outputs are
// submitted.
func (s RunStatus) IsTerminal() bool {
	return s != RunStatusQueued && s != RunStatusInProgress
}

// Run is one execution of an assistant over a thread.
type Run struct {
	ID          string    `json:"id"`
	Object      string    `json:"object"`
	Created     int64     `json:"created_at"`
	AssistantID string    `json:"assistant_id"`
	ThreadID    string    `json:"thread_id"`
	Status      RunStatus `json:"status"`
	// RequiredAction is set while Status is requires_action.
	RequiredAction *RequiredAction `json:"required_action,omitempty"`
	// LastError is set when Status is failed.
	LastError          *RunError           `json:"last_error,omitempty"`
	ExpiresAt          int64               `json:"expires_at,omitempty"`
	StartedAt          int64               `json:"started_at,omitempty"`
	CompletedAt        int64               `json:"completed_at,omitempty"`
	CancelledAt        int64               `json:"cancelled_at,omitempty"`
	FailedAt           int64               `json:"failed_at,omitempty"`
	IncompleteDetails  *IncompleteDetails  `json:"incomplete_details,omitempty"`
	Model              string              `json:"model"`
	Instructions       string              `json:"instructions"`
	Tools              []AssistantTool     `json:"tools"`
	Usage              *Usage              `json:"usage,omitempty"`
	TruncationStrategy *TruncationStrategy `json:"truncation_strategy,omitempty"`
	ParallelToolCalls  bool                `json:"parallel_tool_calls"`
	Metadata           map[string]string   `json:"metadata,omitempty"`
}

// RequiredAction is the action the caller must take to continue a run.
type RequiredAction struct {
	Type              string                   `json:"type"`
	SubmitToolOutputs *SubmitToolOutputsAction `json:"submit_tool_outputs,omitempty"`
}

// SubmitToolOutputsAction lists the tool calls awaiting outputs.
type SubmitToolOutputsAction struct {
	ToolCalls []ToolCall `json:"tool_calls"`
}

// RunError is the last error of a failed run.
type RunError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TruncationStrategy controls how a thread is trimmed before a run.
type TruncationStrategy struct {
	Type         string `json:"type"`
	LastMessages int    `json:"last_messages,omitempty"`
}

// ThreadRunRequest creates a thread and runs an assistant over it in
// one call.
type ThreadRunRequest struct {
	AssistantID         string            `json:"assistant_id"`
	Model               string            `json:"model,omitempty"`
	Instructions        string            `json:"instructions,omitempty"`
	Tools               []AssistantTool   `json:"tools,omitempty"`
	ToolResources       *ToolResources    `json:"tool_resources,omitempty"`
	Metadata            map[string]string `json:"metadata,omitempty"`
	ParallelToolCalls   *bool             `json:"parallel_tool_calls,omitempty"`
	ToolChoice          *ToolChoice       `json:"tool_choice,omitempty"`
	MaxCompletionTokens int               `json:"max_completion_tokens,omitempty"`
	Thread              ThreadRequest     `json:"thread"`
}

// RunRequest runs an assistant over an existing thread.
type RunRequest struct {
	AssistantID         string                 `json:"assistant_id"`
	AdditionalMessages  []ThreadMessageRequest `json:"additional_messages,omitempty"`
	Tools               []AssistantTool        `json:"tools,omitempty"`
	MaxCompletionTokens int                    `json:"max_completion_tokens,omitempty"`
}

// ToolOutput is the result of one tool call, keyed by the call ID the
// run reported.
type ToolOutput struct {
	ToolCallID string `json:"tool_call_id"`
	Output     string `json:"output"`
}

type submitToolOutputsRequest struct {
	ToolOutputs []ToolOutput `json:"tool_outputs"`
}

// DefaultPollInterval is the wait between run status checks in PollRun.
const DefaultPollInterval = time.Second

// CreateThreadRun creates a thread and starts a run over it.
func (c *Client) CreateThreadRun(ctx context.Context, req ThreadRunRequest) (*Run, error) {
	var out Run
	if err := c.post(ctx, "threads/runs", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateRun starts a run over an existing thread.
func (c *Client) CreateRun(ctx context.Context, threadID string, req RunRequest) (*Run, error) {
	var out Run
	if err := c.post(ctx, "threads/"+threadID+"/runs", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetRun fetches a run by thread and run identifier.
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (*Run, error) {
	var out Run
	if err := c.get(ctx, "threads/"+threadID+"/runs/"+runID, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// PollRun refetches the run until it reaches a terminal status, waiting
// interval between checks. interval of zero uses DefaultPollInterval.
func (c *Client) PollRun(ctx context.Context, run *Run, interval time.Duration) (*Run, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !run.Status.IsTerminal() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
		next, err := c.GetRun(ctx, run.ThreadID, run.ID)
		if err != nil {
			return nil, err
		}
		run = next
	}
	return run, nil
}

// SubmitToolOutputs resumes a run waiting in requires_action.
func (c *Client) SubmitToolOutputs(ctx context.Context, run *Run, outputs []ToolOutput) (*Run, error) {
	var out Run
	route := "threads/" + run.ThreadID + "/runs/" + run.ID + "/submit_tool_outputs"
	if err := c.post(ctx, route, submitToolOutputsRequest{ToolOutputs: outputs}, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitToolOutputsAndPoll submits tool outputs and waits for the run
// to settle again. interval of zero uses DefaultPollInterval.
func (c *Client) SubmitToolOutputsAndPoll(ctx context.Context, run *Run, outputs []ToolOutput, interval time.Duration) (*Run, error) {
	next, err := c.SubmitToolOutputs(ctx, run, outputs)
	if err != nil {
		return nil, err
	}
	return c.PollRun(ctx, next, interval)
}
