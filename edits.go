package openai

import "context"

// EditRequest is the request body for the edits endpoint. Only the
// text-davinci-edit-001 and code-davinci-edit-001 models accept it.
type EditRequest struct {
	Model string `json:"model"`
	// Input is the starting text; Instruction tells the model how to
	// edit it.
	Input       string   `json:"input,omitempty"`
	Instruction string   `json:"instruction"`
	N           int      `json:"n,omitempty"`
	Temperature *float32 `json:"temperature,omitempty"`
	TopP        *float32 `json:"top_p,omitempty"`
}

// Edit is an edits response.
type Edit struct {
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Choices []EditChoice `json:"choices"`
	Usage   Usage        `json:"usage"`
}

// EditChoice is one edited version of the input.
type EditChoice struct {
	Text  string `json:"text"`
	Index int    `json:"index"`
}

// Texts returns the edited texts in choice order.
func (e *Edit) Texts() []string {
	texts := make([]string, len(e.Choices))
	for i, choice := range e.Choices {
		texts[i] = choice.Text
	}
	return texts
}

// CreateEdit asks the model to edit the input according to the
// instruction.
func (c *Client) CreateEdit(ctx context.Context, req EditRequest) (*Edit, error) {
	var edit Edit
	if err := c.post(ctx, "edits", req, &edit, false); err != nil {
		return nil, err
	}
	return &edit, nil
}
