package openai

import "context"

// Thread is a conversation a run executes against.
type Thread struct {
	ID            string            `json:"id"`
	Object        string            `json:"object"`
	Created       int64             `json:"created_at"`
	ToolResources *ToolResources    `json:"tool_resources,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// ThreadRequest creates a thread, optionally seeded with messages.
type ThreadRequest struct {
	Messages      []ThreadMessageRequest `json:"messages"`
	ToolResources *ToolResources         `json:"tool_resources,omitempty"`
	Metadata      map[string]string      `json:"metadata,omitempty"`
}

// ThreadMessageRequest adds one message when creating a thread or run.
// Role must be RoleUser or RoleAssistant.
type ThreadMessageRequest struct {
	Role        string            `json:"role"`
	Content     string            `json:"content"`
	Attachments []Attachment      `json:"attachments,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Attachment links a file to a message and the tools that may read it.
type Attachment struct {
	FileID string          `json:"file_id"`
	Tools  []AssistantTool `json:"tools,omitempty"`
}

// ThreadMessage is a message stored in a thread.
type ThreadMessage struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created_at"`
	// ThreadID is the thread the message belongs to.
	ThreadID string `json:"thread_id"`
	// Status is in_progress, incomplete, or completed.
	Status            string             `json:"status,omitempty"`
	IncompleteDetails *IncompleteDetails `json:"incomplete_details,omitempty"`
	CompletedAt       int64              `json:"completed_at,omitempty"`
	IncompleteAt      int64              `json:"incomplete_at,omitempty"`
	Role              string             `json:"role"`
	Content           []MessageContent   `json:"content"`
	// AssistantID is set when an assistant produced the message.
	AssistantID string `json:"assistant_id,omitempty"`
	// RunID is set when a run produced the message, and empty for
	// messages created directly.
	RunID       string            `json:"run_id,omitempty"`
	Attachments []Attachment      `json:"attachments,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// IncompleteDetails says why a message or run stopped early.
type IncompleteDetails struct {
	Reason string `json:"reason"`
}

// Message content types.
const (
	MessageContentText      = "text"
	MessageContentImageFile = "image_file"
	MessageContentImageURL  = "image_url"
	MessageContentRefusal   = "refusal"
)

// MessageContent is one block of a thread message. Type selects which
// of the other fields is set.
type MessageContent struct {
	Type      string       `json:"type"`
	Text      *MessageText `json:"text,omitempty"`
	ImageFile *ImageFile   `json:"image_file,omitempty"`
	ImageURL  *ImageURL    `json:"image_url,omitempty"`
	Refusal   string       `json:"refusal,omitempty"`
}

// MessageText is a text block with its annotations.
type MessageText struct {
	Value       string       `json:"value"`
	Annotations []Annotation `json:"annotations"`
}

// Annotation marks a span of text that cites a file.
type Annotation struct {
	Type         string       `json:"type"`
	Text         string       `json:"text"`
	StartIndex   int          `json:"start_index"`
	EndIndex     int          `json:"end_index"`
	FileCitation FileCitation `json:"file_citation"`
}

// FileCitation names the file an annotation cites.
type FileCitation struct {
	FileID string `json:"file_id"`
}

// ImageFile references an uploaded image by file ID.
type ImageFile struct {
	FileID string `json:"file_id"`
	Detail string `json:"detail,omitempty"`
}

// ImageURL references an external image.
type ImageURL struct {
	ImageURL string `json:"image_url"`
}

// TextValue concatenates the text blocks of the message. Non-text
// blocks are skipped.
func (m *ThreadMessage) TextValue() string {
	var out string
	for _, c := range m.Content {
		if c.Type == MessageContentText && c.Text != nil {
			out += c.Text.Value
		}
	}
	return out
}

// CreateThread creates a thread.
func (c *Client) CreateThread(ctx context.Context, req ThreadRequest) (*Thread, error) {
	var out Thread
	if err := c.post(ctx, "threads", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetThread fetches a thread by identifier.
func (c *Client) GetThread(ctx context.Context, id string) (*Thread, error) {
	var out Thread
	if err := c.get(ctx, "threads/"+id, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateThreadMessage appends a message to a thread.
func (c *Client) CreateThreadMessage(ctx context.Context, threadID string, req ThreadMessageRequest) (*ThreadMessage, error) {
	var out ThreadMessage
	if err := c.post(ctx, "threads/"+threadID+"/messages", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListThreadMessages returns the thread's messages in ascending order,
// paging until the server reports no more. after resumes from a message
// ID; pass "" to start at the beginning.
func (c *Client) ListThreadMessages(ctx context.Context, threadID, after string) ([]ThreadMessage, error) {
	return listAll[ThreadMessage](ctx, c, "threads/"+threadID+"/messages", after, true)
}
