package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/artem13815/jobsearch/pkg/profile"
)

// ProfileTTL only garbage-collects abandoned entries; freshness is decided
// by profile.FreshFor against LastUpdated.
const ProfileTTL = 48 * time.Hour

// ProfileCache implements profile.Cache on top of Redis. One JSON value per
// user under "profile:{userID}".
type ProfileCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

func NewProfileCache(rdb *goredis.Client) *ProfileCache {
	return &ProfileCache{rdb: rdb, ttl: ProfileTTL}
}

func profileKey(userID uuid.UUID) string {
	return "profile:" + userID.String()
}

func (c *ProfileCache) Get(ctx context.Context, userID uuid.UUID) (profile.Profile, bool, error) {
	raw, err := c.rdb.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("redis get: %w", err)
	}
	var p profile.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		// unreadable entry, treat as a miss
		return profile.Profile{}, false, nil
	}
	return p, true, nil
}

func (c *ProfileCache) Put(ctx context.Context, userID uuid.UUID, p profile.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, profileKey(userID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *ProfileCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.rdb.Del(ctx, profileKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
