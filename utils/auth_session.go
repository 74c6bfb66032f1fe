// File: turfacademy/utils/auth_session.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const AuthSessionPrefix = "authSession:"

// AuthSession caches the active token of a signed-in user so the auth
// middleware does not hit Mongo on every request.
type AuthSession struct {
	UserID        string    `json:"userId"`
	Mobile        string    `json:"mobile"`
	TokenHash     string    `json:"tokenHash"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// SaveAuthSession saves the authentication session in Redis with a TTL.
func SaveAuthSession(ctx context.Context, client *redis.Client, session AuthSession, ttl time.Duration) error {
	session.LastUpdatedAt = time.Now()
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal auth session: %w", err)
	}
	if err := client.Set(ctx, AuthSessionPrefix+session.UserID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save auth session: %w", err)
	}
	return nil
}

// GetAuthSession retrieves the authentication session from Redis.
func GetAuthSession(ctx context.Context, client *redis.Client, userID string) (*AuthSession, error) {
	data, err := client.Get(ctx, AuthSessionPrefix+userID).Result()
	if err != nil {
		return nil, err
	}
	var session AuthSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal auth session: %w", err)
	}
	return &session, nil
}

// DeleteAuthSession removes an authentication session from Redis.
func DeleteAuthSession(ctx context.Context, client *redis.Client, userID string) error {
	return client.Del(ctx, AuthSessionPrefix+userID).Err()
}

// AuthSessionCache is the token-hash cache used by login and the auth middleware.
type AuthSessionCache interface {
	Save(ctx context.Context, session AuthSession, ttl time.Duration) error
	Get(ctx context.Context, userID string) (*AuthSession, error)
	Delete(ctx context.Context, userID string) error
}

type RedisAuthSessionCache struct {
	Client *redis.Client
}

func (c RedisAuthSessionCache) Save(ctx context.Context, session AuthSession, ttl time.Duration) error {
	return SaveAuthSession(ctx, c.Client, session, ttl)
}

func (c RedisAuthSessionCache) Get(ctx context.Context, userID string) (*AuthSession, error) {
	return GetAuthSession(ctx, c.Client, userID)
}

func (c RedisAuthSessionCache) Delete(ctx context.Context, userID string) error {
	return DeleteAuthSession(ctx, c.Client, userID)
}
