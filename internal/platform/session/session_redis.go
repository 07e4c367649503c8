// Package session provides a Redis-backed session token store.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"social_backend/internal/feature/auth/usecase"
)

// SessionRedis implements usecase.SessionRepository using Redis.
// Each user holds exactly one active token: a forward mapping
// token -> user id and a reverse mapping user id -> token, so rotation
// can invalidate the previous token in the same call.
type SessionRedis struct {
	client *redis.Client
	prefix string
}

// Compile-time check to ensure SessionRedis implements SessionRepository.
var _ usecase.SessionRepository = (*SessionRedis)(nil)

// NewSessionRedis creates a new SessionRedis instance.
func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	if prefix == "" {
		prefix = "session"
	}
	return &SessionRedis{
		client: client,
		prefix: prefix,
	}
}

// tokenKey returns the Redis key mapping a token to its user id.
func (r *SessionRedis) tokenKey(token string) string {
	return fmt.Sprintf("%s:token:%s", r.prefix, token)
}

// userKey returns the Redis key holding a user's current token.
func (r *SessionRedis) userKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

// Rotate replaces the user's active token with a new one.
// The previous token, if any, stops resolving immediately.
func (r *SessionRedis) Rotate(ctx context.Context, userID uint, token string) error {
	// Look up the token being replaced
	prev, err := r.client.Get(ctx, r.userKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	pipe := r.client.TxPipeline()
	if prev != "" {
		pipe.Del(ctx, r.tokenKey(prev))
	}
	pipe.Set(ctx, r.tokenKey(token), userID, 0)
	pipe.Set(ctx, r.userKey(userID), token, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to rotate session: %w", err)
	}
	return nil
}

// FindUserID resolves a token to the owning user id.
// Unknown tokens yield usecase.ErrSessionNotFound.
func (r *SessionRedis) FindUserID(ctx context.Context, token string) (uint, error) {
	val, err := r.client.Get(ctx, r.tokenKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, usecase.ErrSessionNotFound
		}
		return 0, err
	}

	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		// Corrupted mapping: drop it and treat the token as unknown
		_ = r.client.Del(ctx, r.tokenKey(token)).Err()
		return 0, usecase.ErrSessionNotFound
	}
	return uint(id), nil
}
