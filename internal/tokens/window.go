package tokens

import "github.com/s33g/openai-client/internal/history"

// Window trims message history to a token budget before a request.
type Window struct {
	counter      *Counter
	maxTokens    int
	replyReserve int // Reserve for the model's reply
}

// NewWindow creates a window with the given context size and reply
// reserve.
func NewWindow(maxTokens, replyReserve int) *Window {
	return &Window{
		counter:      NewCounter(),
		maxTokens:    maxTokens,
		replyReserve: replyReserve,
	}
}

// Build prepends the system prompt and keeps as many of the newest
// messages as fit the budget. It returns the kept messages and their
// total token count.
func (w *Window) Build(messages []history.Message, systemPrompt, model string) ([]history.Message, int) {
	available := w.maxTokens - w.replyReserve

	systemTokens := w.counter.CountMessage(systemPrompt, model)
	result := []history.Message{
		{Role: "system", Content: systemPrompt, Tokens: systemTokens},
	}
	total := systemTokens
	if total >= available {
		// System prompt alone exceeds the budget.
		return result, total
	}

	// Walk newest to oldest, then restore order.
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]

		msgTokens := msg.Tokens
		if msgTokens == 0 {
			msgTokens = w.counter.CountMessage(msg.Content, model)
			msg.Tokens = msgTokens
		}

		if total+msgTokens > available {
			break
		}

		result = append(result, msg)
		total += msgTokens
	}

	// Reverse messages (except system prompt at index 0)
	for i, j := 1, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return result, total
}

// CountMessage counts the token cost of one message
func (w *Window) CountMessage(content, model string) int {
	return w.counter.CountMessage(content, model)
}

// WillFit checks whether a new message fits the remaining budget
func (w *Window) WillFit(currentTokens, newMessageTokens int) bool {
	return currentTokens+newMessageTokens+w.replyReserve <= w.maxTokens
}
