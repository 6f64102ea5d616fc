package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/peopledesk/identity-api/internal/core/domain"
)

const profileTTL = 5 * time.Minute

// ProfileCache provides a TTL-bounded read cache for profile lookups.
// Key format: profile:<username>
type ProfileCache struct {
	client *redis.Client
}

// NewProfileCache creates a ProfileCache wrapping the given Redis client.
func NewProfileCache(client *redis.Client) *ProfileCache {
	return &ProfileCache{client: client}
}

// Get returns the cached profile for username, or (nil, nil) on a miss.
func (p *ProfileCache) Get(ctx context.Context, username string) (*domain.User, error) {
	data, err := p.client.Get(ctx, p.key(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile cache get: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("profile cache decode: %w", err)
	}
	return &user, nil
}

// Set stores the profile under its username (expires after profileTTL).
func (p *ProfileCache) Set(ctx context.Context, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return p.client.Set(ctx, p.key(user.Username), data, profileTTL).Err()
}

func (p *ProfileCache) key(username string) string {
	return "profile:" + username
}
