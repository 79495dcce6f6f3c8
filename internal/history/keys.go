package history

import "fmt"

// Keys generates Redis keys with consistent naming
type Keys struct {
	prefix string
}

// NewKeys creates a new Keys generator
func NewKeys(prefix string) *Keys {
	return &Keys{prefix: prefix}
}

// Session returns the key for session metadata
func (k *Keys) Session(sessionID string) string {
	return fmt.Sprintf("%ssession:%s", k.prefix, sessionID)
}

// Messages returns the key for a session's message history
func (k *Keys) Messages(sessionID string) string {
	return fmt.Sprintf("%smessages:%s", k.prefix, sessionID)
}

// Sessions returns the key for the session index
func (k *Keys) Sessions() string {
	return fmt.Sprintf("%ssessions", k.prefix)
}
