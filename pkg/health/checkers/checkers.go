// Package checkers holds the readiness checks of the service's backing stores.
package checkers

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
)

const pingTimeout = time.Second

// Pinger is a named health.Checker around a ping call.
type Pinger struct {
	name string
	ping func(ctx context.Context) error
}

// NewPostgresChecker pings the pool.
func NewPostgresChecker(pool *pgxpool.Pool) *Pinger {
	return &Pinger{name: "postgres", ping: pool.Ping}
}

// NewRedisChecker pings the profile cache.
func NewRedisChecker(rdb *goredis.Client) *Pinger {
	return &Pinger{name: "redis", ping: func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}}
}

func (p *Pinger) Name() string { return p.name }

func (p *Pinger) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return p.ping(ctx)
}
