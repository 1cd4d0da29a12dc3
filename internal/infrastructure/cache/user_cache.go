package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/users-api/internal/domain/entity"
	"github.com/oksasatya/users-api/pkg/helpers"
)

// UserCache keeps public user views in Redis. Only PublicUser is ever cached,
// so no password hash leaves the primary store.
type UserCache struct {
	RDB *redis.Client
	TTL time.Duration
}

func NewUserCache(rdb *redis.Client, ttl time.Duration) *UserCache {
	return &UserCache{RDB: rdb, TTL: ttl}
}

func userKey(id string) string {
	return "user:public:" + id
}

// Get reports false on a miss.
func (c *UserCache) Get(ctx context.Context, id string) (*entity.PublicUser, bool, error) {
	var u entity.PublicUser
	ok, err := helpers.RedisGetJSON(ctx, c.RDB, userKey(id), &u)
	if err != nil || !ok {
		return nil, false, err
	}
	return &u, true, nil
}

// Add caches u unless a view for the same id is already present, so a read
// that raced an update cannot overwrite the fresher view the update stored.
func (c *UserCache) Add(ctx context.Context, u entity.PublicUser) error {
	_, err := helpers.RedisSetNXJSON(ctx, c.RDB, userKey(u.ID), u, c.TTL)
	return err
}

func (c *UserCache) Set(ctx context.Context, u entity.PublicUser) error {
	return helpers.RedisSetJSON(ctx, c.RDB, userKey(u.ID), u, c.TTL)
}

func (c *UserCache) Invalidate(ctx context.Context, id string) error {
	return helpers.RedisDel(ctx, c.RDB, userKey(id))
}
