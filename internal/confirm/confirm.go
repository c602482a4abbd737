// Package confirm implements one-shot confirmation tokens in Valkey.
// Destructive actions are two-step: the first request issues a token,
// the second presents it back. A token works exactly once and expires
// quickly if unused, so an abandoned confirmation cannot fire later.
package confirm

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTTL is how long an unused confirmation stays valid.
	DefaultTTL = 2 * time.Minute

	keyPrefix = "confirm:"

	// tokenLength is the byte length of the random token (16 bytes = 32 hex chars).
	tokenLength = 16
)

// Service issues and redeems confirmation tokens.
type Service struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a confirmation service with the default TTL.
func New(client *redis.Client) *Service {
	return &Service{client: client, ttl: DefaultTTL}
}

// Issue creates a token bound to an action descriptor, e.g.
// "delete-article:<uuid>". Redeeming with a different descriptor fails.
func (s *Service) Issue(ctx context.Context, action string) (string, error) {
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("confirm token: %w", err)
	}
	token := hex.EncodeToString(b)

	if err := s.client.Set(ctx, keyPrefix+token, action, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("confirm store: %w", err)
	}
	return token, nil
}

// Redeem consumes the token if it exists and matches the action.
// Returns true exactly once per issued token; expired, unknown, or
// mismatched tokens return false without error.
func (s *Service) Redeem(ctx context.Context, token, action string) (bool, error) {
	stored, err := s.client.GetDel(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirm redeem: %w", err)
	}
	return stored == action, nil
}
