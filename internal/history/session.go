package history

import (
	"encoding/json"
	"fmt"
	"time"
)

// Message is one stored chat message.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
	Tokens  int    `json:"tokens"`
}

// Session is the metadata for one chat session.
type Session struct {
	ID           string
	Model        string
	SystemPrompt string
	Title        string
	TokenCount   int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ToMap converts the session to a map for Redis HSET
func (s *Session) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"model":         s.Model,
		"system_prompt": s.SystemPrompt,
		"title":         s.Title,
		"token_count":   s.TokenCount,
		"created_at":    s.CreatedAt.Unix(),
		"updated_at":    s.UpdatedAt.Unix(),
	}
}

// FromMap populates the session from a Redis HGETALL result
func (s *Session) FromMap(sessionID string, m map[string]string) error {
	s.ID = sessionID
	s.Model = m["model"]
	s.SystemPrompt = m["system_prompt"]
	s.Title = m["title"]

	var tokenCount int64
	if _, err := fmt.Sscanf(m["token_count"], "%d", &tokenCount); err == nil {
		s.TokenCount = int(tokenCount)
	}

	var createdAt, updatedAt int64
	if _, err := fmt.Sscanf(m["created_at"], "%d", &createdAt); err == nil {
		s.CreatedAt = time.Unix(createdAt, 0)
	}
	if _, err := fmt.Sscanf(m["updated_at"], "%d", &updatedAt); err == nil {
		s.UpdatedAt = time.Unix(updatedAt, 0)
	}

	return nil
}

// MarshalMessage converts a Message to JSON for storage
func MarshalMessage(m Message) (string, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// UnmarshalMessage converts JSON to a Message
func UnmarshalMessage(data string) (Message, error) {
	var m Message
	err := json.Unmarshal([]byte(data), &m)
	return m, err
}
