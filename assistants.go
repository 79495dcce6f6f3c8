package openai

import (
	"context"
	"encoding/json"
)

// Assistant tool types.
const (
	AssistantToolCodeInterpreter = "code_interpreter"
	AssistantToolFunction        = "function"
	AssistantToolFileSearch      = "file_search"
)

// AssistantTool is a tool enabled on an assistant. Type selects one of
// the tool constants; Function and FileSearch carry the matching
// options.
type AssistantTool struct {
	Type       string             `json:"type"`
	Function   *AssistantFunction `json:"function,omitempty"`
	FileSearch *FileSearchOptions `json:"file_search,omitempty"`
}

// AssistantFunction describes a function tool.
type AssistantFunction struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// Parameters is a JSON schema for the function arguments.
	Parameters json.RawMessage `json:"parameters,omitempty"`
}

// FileSearchOptions tunes the file_search tool.
type FileSearchOptions struct {
	MaxNumResults int `json:"max_num_results,omitempty"`
}

// CodeInterpreterTool enables the code_interpreter tool.
func CodeInterpreterTool() AssistantTool {
	return AssistantTool{Type: AssistantToolCodeInterpreter}
}

// FunctionTool enables a function tool with the given definition.
func FunctionTool(fn AssistantFunction) AssistantTool {
	return AssistantTool{Type: AssistantToolFunction, Function: &fn}
}

// FileSearchTool enables the file_search tool. maxNumResults of zero
// keeps the server default.
func FileSearchTool(maxNumResults int) AssistantTool {
	return AssistantTool{
		Type:       AssistantToolFileSearch,
		FileSearch: &FileSearchOptions{MaxNumResults: maxNumResults},
	}
}

// ToolResources are the resources each assistant tool draws on. The
// code_interpreter tool takes file IDs, the file_search tool takes
// vector store IDs.
type ToolResources struct {
	CodeInterpreter *CodeInterpreterResources `json:"code_interpreter,omitempty"`
	FileSearch      *FileSearchResources      `json:"file_search,omitempty"`
}

// CodeInterpreterResources lists files available to code_interpreter.
// At most 20 files can be attached.
type CodeInterpreterResources struct {
	FileIDs []string `json:"file_ids"`
}

// FileSearchResources lists vector stores available to file_search. At
// most one vector store can be attached.
type FileSearchResources struct {
	VectorStoreIDs []string `json:"vector_store_ids"`
}

// Assistant is a configured assistant.
type Assistant struct {
	ID             string            `json:"id"`
	Object         string            `json:"object"`
	Created        int64             `json:"created_at"`
	Name           string            `json:"name,omitempty"`
	Description    string            `json:"description,omitempty"`
	Model          string            `json:"model"`
	Instructions   string            `json:"instructions,omitempty"`
	Tools          []AssistantTool   `json:"tools"`
	ToolResources  *ToolResources    `json:"tool_resources,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	ResponseFormat json.RawMessage   `json:"response_format,omitempty"`
}

// AssistantRequest creates or updates an assistant.
type AssistantRequest struct {
	Model string `json:"model"`
	// Name has a maximum length of 256 characters.
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	// Instructions has a maximum length of 256,000 characters.
	Instructions  string            `json:"instructions,omitempty"`
	Tools         []AssistantTool   `json:"tools"`
	ToolResources *ToolResources    `json:"tool_resources,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// AssistantDeletion is the response to deleting an assistant.
type AssistantDeletion struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// CreateAssistant creates an assistant.
func (c *Client) CreateAssistant(ctx context.Context, req AssistantRequest) (*Assistant, error) {
	var out Assistant
	if err := c.post(ctx, "assistants", req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAssistant fetches an assistant by identifier.
func (c *Client) GetAssistant(ctx context.Context, id string) (*Assistant, error) {
	var out Assistant
	if err := c.get(ctx, "assistants/"+id, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAssistant overwrites an assistant's configuration.
func (c *Client) UpdateAssistant(ctx context.Context, id string, req AssistantRequest) (*Assistant, error) {
	var out Assistant
	if err := c.post(ctx, "assistants/"+id, req, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAssistants returns every assistant in the organization, paging
// until the server reports no more.
func (c *Client) ListAssistants(ctx context.Context) ([]Assistant, error) {
	return listAll[Assistant](ctx, c, "assistants", "", true)
}

// DeleteAssistant deletes an assistant.
func (c *Client) DeleteAssistant(ctx context.Context, id string) (*AssistantDeletion, error) {
	var out AssistantDeletion
	if err := c.del(ctx, "assistants/"+id, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}
