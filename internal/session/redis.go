package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/zanta/lfp-client/internal/core/domain"
)

const (
	redisTokenKey = "lfp:token"
	redisUserKey  = "lfp:user"
)

// RedisStore keeps the session in Redis so several terminals on one machine
// share a sign-in. Token and user are written in a single transaction to keep
// the pair atomic for readers.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Token() (string, bool) {
	val, err := s.client.Get(context.Background(), redisTokenKey).Result()
	if err != nil || val == "" {
		return "", false
	}
	return val, true
}

func (s *RedisStore) User() (*domain.User, bool) {
	data, err := s.client.Get(context.Background(), redisUserKey).Bytes()
	if err != nil {
		return nil, false
	}
	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, false
	}
	return &user, true
}

func (s *RedisStore) Set(token string, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	ctx := context.Background()
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisTokenKey, token, 0)
	pipe.Set(ctx, redisUserKey, data, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear() error {
	err := s.client.Del(context.Background(), redisTokenKey, redisUserKey).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *RedisStore) Authenticated() bool {
	_, ok := s.Token()
	return ok
}
