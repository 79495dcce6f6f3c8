package tokens

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// Counter counts tokens for different models. It is safe for concurrent
// use.
type Counter struct {
	mu sync.Mutex
	// Cache encoders for reuse
	encoders map[string]*tiktoken.Tiktoken
}

// NewCounter creates a new token counter
func NewCounter() *Counter {
	return &Counter{
		encoders: make(map[string]*tiktoken.Tiktoken),
	}
}

// Count returns the number of tokens in a text for a given model
func (c *Counter) Count(text, model string) int {
	encoding := encodingFor(model)

	c.mu.Lock()
	encoder, ok := c.encoders[encoding]
	if !ok {
		var err error
		encoder, err = tiktoken.GetEncoding(encoding)
		if err != nil {
			c.mu.Unlock()
			// Fallback to simple estimation if tiktoken fails
			return estimate(text)
		}
		c.encoders[encoding] = encoder
	}
	c.mu.Unlock()

	return len(encoder.Encode(text, nil, nil))
}

// CountMessage returns the token cost of one message, including the
// per-message formatting overhead the chat format adds (~4 tokens).
func (c *Counter) CountMessage(content, model string) int {
	return c.Count(content, model) + 4
}

// encodingFor returns the tiktoken encoding name for a model
func encodingFor(model string) string {
	// o200k_base covers gpt-4o and later
	if strings.Contains(model, "gpt-4o") || strings.Contains(model, "o1") {
		return "o200k_base"
	}
	if strings.Contains(model, "gpt-4") || strings.Contains(model, "gpt-3.5") {
		return "cl100k_base"
	}
	// Default to cl100k_base (used by most modern models)
	return "cl100k_base"
}

// estimate provides a rough token estimate (chars/4)
func estimate(text string) int {
	return (len(text) + 3) / 4
}
