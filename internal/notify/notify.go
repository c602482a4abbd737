// Package notify provides Valkey-backed transient notices. A notice is
// pushed for a user after a workflow event (submission accepted, article
// deleted, upload failed) and expires on its own; readers see whatever
// has not yet expired. Expiry replaces explicit dismissal.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL is how long a notice stays visible before Valkey drops it.
	DefaultTTL = 6 * time.Second

	keyPrefix = "notice:"
)

// Level signals how a notice should be presented.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notice is one transient message for a user.
type Notice struct {
	ID        uuid.UUID `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Service pushes and lists notices per user.
type Service struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a notice service with the default TTL.
func New(client *redis.Client) *Service {
	return &Service{client: client, ttl: DefaultTTL}
}

// Push stores a notice for the user. It expires after the service TTL
// without any further action from anyone.
func (s *Service) Push(ctx context.Context, userID uuid.UUID, level Level, message string) (*Notice, error) {
	n := &Notice{
		ID:        uuid.New(),
		Level:     level,
		Message:   message,
		CreatedAt: time.Now(),
	}

	payload, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("notice marshal: %w", err)
	}

	key := keyPrefix + userID.String() + ":" + n.ID.String()
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("notice store: %w", err)
	}
	return n, nil
}

// List returns the user's notices that have not yet expired, oldest
// first. Keys that vanish between scan and fetch are skipped.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]Notice, error) {
	pattern := keyPrefix + userID.String() + ":*"

	var notices []Notice
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		payload, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("notice get: %w", err)
		}
		var n Notice
		if err := json.Unmarshal(payload, &n); err != nil {
			return nil, fmt.Errorf("notice unmarshal: %w", err)
		}
		notices = append(notices, n)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("notice scan: %w", err)
	}

	sort.Slice(notices, func(i, j int) bool {
		return notices[i].CreatedAt.Before(notices[j].CreatedAt)
	})
	return notices, nil
}
