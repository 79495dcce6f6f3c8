package history

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/s33g/openai-client/internal/config"
)

// Store persists chat sessions and their messages in Redis.
type Store struct {
	rdb         *redis.Client
	keys        *Keys
	ttl         time.Duration
	maxMessages int
}

// NewStore connects to Redis using the history configuration.
func NewStore(cfg config.HistoryConfig) (*Store, error) {
	password := ""
	if cfg.PasswordEnv != "" {
		password = os.Getenv(cfg.PasswordEnv)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: password,
		DB:       cfg.DB,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Store{
		rdb:         rdb,
		keys:        NewKeys(cfg.KeyPrefix),
		ttl:         cfg.TTL(),
		maxMessages: cfg.MessageLimit,
	}, nil
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.rdb.Close()
}

// Redis returns the underlying Redis client for advanced operations
func (s *Store) Redis() *redis.Client {
	return s.rdb
}

// Create stores a new session and returns it with a generated ID.
func (s *Store) Create(ctx context.Context, session Session) (*Session, error) {
	now := time.Now()
	session.ID = uuid.NewString()
	session.CreatedAt = now
	session.UpdatedAt = now

	key := s.keys.Session(session.ID)

	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, key, session.ToMap())
	pipe.Expire(ctx, key, s.ttl)
	pipe.SAdd(ctx, s.keys.Sessions(), session.ID)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &session, nil
}

// Get retrieves a session by ID
func (s *Store) Get(ctx context.Context, sessionID string) (*Session, error) {
	key := s.keys.Session(sessionID)

	data, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("session not found")
	}

	var session Session
	if err := session.FromMap(sessionID, data); err != nil {
		return nil, err
	}
	return &session, nil
}

// Update updates session metadata
func (s *Store) Update(ctx context.Context, session Session) error {
	session.UpdatedAt = time.Now()

	key := s.keys.Session(session.ID)
	if err := s.rdb.HSet(ctx, key, session.ToMap()).Err(); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

// Delete deletes a session and its messages
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	pipe := s.rdb.Pipeline()
	pipe.Del(ctx, s.keys.Session(sessionID))
	pipe.Del(ctx, s.keys.Messages(sessionID))
	pipe.SRem(ctx, s.keys.Sessions(), sessionID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// List returns the IDs of all stored sessions
func (s *Store) List(ctx context.Context) ([]string, error) {
	ids, err := s.rdb.SMembers(ctx, s.keys.Sessions()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return ids, nil
}

// AppendMessage adds a message to the session history, trimming to the
// configured message limit.
func (s *Store) AppendMessage(ctx context.Context, sessionID string, msg Message) error {
	data, err := MarshalMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	msgKey := s.keys.Messages(sessionID)

	pipe := s.rdb.Pipeline()
	pipe.RPush(ctx, msgKey, data)
	pipe.LTrim(ctx, msgKey, -int64(s.maxMessages), -1)
	pipe.Expire(ctx, msgKey, s.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

// Messages retrieves all messages in a session
func (s *Store) Messages(ctx context.Context, sessionID string) ([]Message, error) {
	data, err := s.rdb.LRange(ctx, s.keys.Messages(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	messages := make([]Message, 0, len(data))
	for _, d := range data {
		msg, err := UnmarshalMessage(d)
		if err != nil {
			// Skip malformed messages
			continue
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// ClearMessages removes all messages from a session (keeps metadata)
func (s *Store) ClearMessages(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, s.keys.Messages(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	return nil
}

// UpdateModel changes the model for a session
func (s *Store) UpdateModel(ctx context.Context, sessionID, model string) error {
	key := s.keys.Session(sessionID)

	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, key, "model", model)
	pipe.HSet(ctx, key, "updated_at", time.Now().Unix())

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update model: %w", err)
	}
	return nil
}

// IncrementTokenCount adds tokens to the session's total
func (s *Store) IncrementTokenCount(ctx context.Context, sessionID string, tokens int) error {
	key := s.keys.Session(sessionID)
	if err := s.rdb.HIncrBy(ctx, key, "token_count", int64(tokens)).Err(); err != nil {
		return fmt.Errorf("failed to increment token count: %w", err)
	}
	return nil
}
