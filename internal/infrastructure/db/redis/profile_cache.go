package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bitforge/playground-api/internal/api/metrics"
	"github.com/bitforge/playground-api/internal/core/domain"
)

const profileTTL = 5 * time.Minute

// ProfileCache is a read cache for user profiles backed by Redis.
// Key format: profile:<user_id>. Entries are the JSON form of domain.User,
// which never includes the password hash.
type ProfileCache struct {
	client *redis.Client
}

// NewProfileCache creates a ProfileCache wrapping the given Redis client.
func NewProfileCache(client *redis.Client) *ProfileCache {
	return &ProfileCache{client: client}
}

// Get returns the cached profile, or (nil, nil) on a miss.
func (p *ProfileCache) Get(ctx context.Context, userID string) (*domain.User, error) {
	raw, err := p.client.Get(ctx, p.key(userID)).Bytes()
	if err == redis.Nil {
		metrics.ProfileCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile cache get: %w", err)
	}
	metrics.ProfileCacheTotal.WithLabelValues("hit").Inc()

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("profile cache decode: %w", err)
	}
	return &user, nil
}

// Set stores the profile (expires after profileTTL).
func (p *ProfileCache) Set(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return p.client.Set(ctx, p.key(user.ID), raw, profileTTL).Err()
}

func (p *ProfileCache) key(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}
