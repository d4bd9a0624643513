// Copyright (c) 2026 PetVault. All rights reserved.
// Author: lam.nguyen.vn@gmail.com

package auth

import (
	"errors"
	"fmt"
	"time"

	stdctx "context"

	"github.com/redis/go-redis/v9"

	"github.com/lamnguyen/petvault/internal/platform/apperr"
	"github.com/lamnguyen/petvault/internal/platform/constants"
)

// RedisSessionRepository stores session state in Redis with a native TTL.
//
// # Key Layout
//
//	auth:session:<sha256-hex-of-token>  ->  account UUID
//
// Expiry is delegated entirely to Redis: a key that outlives its TTL simply
// disappears, so there is no sweeper process to run.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewRedisSessionRepository wires a Redis client into a session repository.
func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// Set maps a token hash to an account ID for the given lifetime.
func (repo *RedisSessionRepository) Set(ctx stdctx.Context, tokenHash, userID string, ttl time.Duration) error {
	if err := repo.client.Set(ctx, repo.key(tokenHash), userID, ttl).Err(); err != nil {
		return fmt.Errorf("auth: failed to store session: %w", err)
	}
	return nil
}

// Get returns the account ID a token hash maps to.
//
// An unknown or expired hash surfaces as apperr.Unauthorized so the caller
// can distinguish "not logged in" from infrastructure failures.
func (repo *RedisSessionRepository) Get(ctx stdctx.Context, tokenHash string) (string, error) {
	userID, err := repo.client.Get(ctx, repo.key(tokenHash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.Unauthorized("Session expired or invalid")
		}
		return "", fmt.Errorf("auth: failed to resolve session: %w", err)
	}
	return userID, nil
}

// Delete revokes a session. Unknown hashes are silently ignored.
func (repo *RedisSessionRepository) Delete(ctx stdctx.Context, tokenHash string) error {
	if err := repo.client.Del(ctx, repo.key(tokenHash)).Err(); err != nil {
		return fmt.Errorf("auth: failed to revoke session: %w", err)
	}
	return nil
}

// key namespaces the token hash under the session prefix.
func (repo *RedisSessionRepository) key(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}
