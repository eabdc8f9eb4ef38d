package service

import (
	"context"
	"fmt"
	"time"

	"hospital-management-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const scanBatchSize = 100

// TokenStore is the Redis allow-list of issued token ids. A token is accepted only
// while its key exists.
type TokenStore interface {
	SavePair(ctx context.Context, userID uuid.UUID, accessID, refreshID string, accessTTL, refreshTTL time.Duration) error
	IsValid(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) (bool, error)
	// Revoke deletes one token id and reports whether it was present.
	Revoke(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) (bool, error)
	RevokeAll(ctx context.Context, userID uuid.UUID) error
}

type redisTokenStore struct {
	redis *redis.Client
}

func NewTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{redis: client}
}

func tokenKey(userID uuid.UUID, tokenType jwt.TokenType, tokenID string) string {
	return fmt.Sprintf("%s_token:%s:%s", tokenType, userID.String(), tokenID)
}

func (s *redisTokenStore) SavePair(ctx context.Context, userID uuid.UUID, accessID, refreshID string, accessTTL, refreshTTL time.Duration) error {
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, tokenKey(userID, jwt.AccessToken, accessID), "valid", accessTTL)
		pipe.Set(ctx, tokenKey(userID, jwt.RefreshToken, refreshID), "valid", refreshTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("store tokens: %w", err)
	}
	return nil
}

func (s *redisTokenStore) IsValid(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) (bool, error) {
	n, err := s.redis.Exists(ctx, tokenKey(userID, tokenType, tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("check token: %w", err)
	}
	return n > 0, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) (bool, error) {
	n, err := s.redis.Del(ctx, tokenKey(userID, tokenType, tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revoke token: %w", err)
	}
	return n > 0, nil
}

func (s *redisTokenStore) RevokeAll(ctx context.Context, userID uuid.UUID) error {
	for _, tokenType := range []jwt.TokenType{jwt.AccessToken, jwt.RefreshToken} {
		pattern := tokenKey(userID, tokenType, "*")
		iter := s.redis.Scan(ctx, 0, pattern, scanBatchSize).Iterator()
		var keys []string
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("scan tokens: %w", err)
		}
		if len(keys) == 0 {
			continue
		}
		if err := s.redis.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("revoke tokens: %w", err)
		}
	}
	return nil
}
