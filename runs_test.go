package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRunStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		status RunStatus
		want   bool
	}{
		{RunStatusQueued, false},
		{RunStatusInProgress, false},
		{RunStatusRequiresAction, true},
		{RunStatusCompleted, true},
		{RunStatusFailed, true},
		{RunStatusCancelled, true},
		{RunStatusExpired, true},
	}
	for _, tt := range tests {
		if got := tt.status.IsTerminal(); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.status, tt.want, got)
		}
	}
}

func TestCreateThreadRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/threads/runs" {
			t.Errorf("Expected /threads/runs, got %s", r.URL.Path)
		}
		if beta := r.Header.Get("OpenAI-Beta"); beta != "assistants=v2" {
			t.Errorf("Expected beta header, got %q", beta)
		}

		var req ThreadRunRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if req.AssistantID != "asst_1" {
			t.Errorf("Expected asst_1, got %s", req.AssistantID)
		}
		if len(req.Thread.Messages) != 1 {
			t.Fatalf("Expected 1 thread message, got %d", len(req.Thread.Messages))
		}

		json.NewEncoder(w).Encode(Run{
			ID:          "run_1",
			ThreadID:    "thread_1",
			AssistantID: req.AssistantID,
			Status:      RunStatusQueued,
		})
	}))
	defer server.Close()

	client := NewClient(Credentials{BaseURL: server.URL})
	run, err := client.CreateThreadRun(context.Background(), ThreadRunRequest{
		AssistantID: "asst_1",
		Thread: ThreadRequest{
			Messages: []ThreadMessageRequest{{Role: RoleUser, Content: "Summarize the doc"}},
		},
	})
	if err != nil {
		t.Fatalf("CreateThreadRun() error = %v", err)
	}
	if run.Status != RunStatusQueued {
		t.Errorf("Expected queued, got %s", run.Status)
	}
}

func TestPollRun(t *testing.T) {
	statuses := []RunStatus{RunStatusQueued, RunStatusInProgress, RunStatusCompleted}
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/threads/thread_1/runs/run_1" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		status := statuses[calls]
		calls++
		json.NewEncoder(w).Encode(Run{ID: "run_1", ThreadID: "thread_1", Status: status})
	}))
	defer server.Close()

	client := NewClient(Credentials{BaseURL: server.URL})
	run, err := client.PollRun(context.Background(), &Run{
		ID:       "run_1",
		ThreadID: "thread_1",
		Status:   RunStatusQueued,
	}, time.Millisecond)
	if err != nil {
		t.Fatalf("PollRun() error = %v", err)
	}
	if run.Status != RunStatusCompleted {
		t.Errorf("Expected completed, got %s", run.Status)
	}
	if calls != 3 {
		t.Errorf("Expected 3 status checks, got %d", calls)
	}
}

func TestPollRun_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Run{ID: "run_1", ThreadID: "thread_1", Status: RunStatusInProgress})
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	client := NewClient(Credentials{BaseURL: server.URL})
	_, err := client.PollRun(ctx, &Run{ID: "run_1", ThreadID: "thread_1", Status: RunStatusInProgress}, time.Millisecond)
	if err == nil {
		t.Fatal("Expected context error")
	}
}

func TestSubmitToolOutputsAndPoll(t *testing.T) {
	submitted := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/threads/thread_1/runs/run_1/submit_tool_outputs":
			var req struct {
				ToolOutputs []ToolOutput `json:"tool_outputs"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("Failed to decode request: %v", err)
			}
			if len(req.ToolOutputs) != 1 || req.ToolOutputs[0].ToolCallID != "call_1" {
				t.Errorf("Unexpected outputs %+v", req.ToolOutputs)
			}
			submitted = true
			json.NewEncoder(w).Encode(Run{ID: "run_1", ThreadID: "thread_1", Status: RunStatusInProgress})
		case "/threads/thread_1/runs/run_1":
			json.NewEncoder(w).Encode(Run{ID: "run_1", ThreadID: "thread_1", Status: RunStatusCompleted})
		default:
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewClient(Credentials{BaseURL: server.URL})
	run := &Run{
		ID:       "run_1",
		ThreadID: "thread_1",
		Status:   RunStatusRequiresAction,
		RequiredAction: &RequiredAction{
			Type: "submit_tool_outputs",
			SubmitToolOutputs: &SubmitToolOutputsAction{
				ToolCalls: []ToolCall{{ID: "call_1", Type: "function"}},
			},
		},
	}
	done, err := client.SubmitToolOutputsAndPoll(context.Background(), run, []ToolOutput{
		{ToolCallID: "call_1", Output: `{"temp":12}`},
	}, time.Millisecond)
	if err != nil {
		t.Fatalf("SubmitToolOutputsAndPoll() error = %v", err)
	}
	if !submitted {
		t.Error("Expected tool outputs to be submitted")
	}
	if done.Status != RunStatusCompleted {
		t.Errorf("Expected completed, got %s", done.Status)
	}
}
