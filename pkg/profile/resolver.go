package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobsearch/pkg/apperr"
	"github.com/artem13815/jobsearch/pkg/auth"
	"github.com/artem13815/jobsearch/pkg/logging"
)

// FreshFor is how long a cached profile is used without asking the store.
const FreshFor = 24 * time.Hour

// ErrFetchFailed wraps store failures while resolving a profile.
var ErrFetchFailed = errors.New("profile fetch failed")

// Resolver serves profiles from the cache while fresh and refreshes the
// cache from the store otherwise. The cache is last-writer-wins.
type Resolver struct {
	store Store
	cache Cache
	log   *logging.Logger
	now   func() time.Time
}

func NewResolver(store Store, cache Cache, log *logging.Logger) *Resolver {
	return &Resolver{store: store, cache: cache, log: log, now: time.Now}
}

// WithClock replaces the time source; tests use it to age the cache.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve returns the profile of user.
func (r *Resolver) Resolve(ctx context.Context, user auth.User) (Profile, error) {
	now := r.now()
	if cached, ok := r.cached(ctx, user.ID); ok && now.Sub(cached.LastUpdated) < FreshFor {
		return cached, nil
	}

	p, err := r.store.Get(ctx, user.ID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return Profile{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if user.DisplayName != "" {
		p.DisplayName = user.DisplayName
	}
	if user.Email != "" {
		p.Email = user.Email
	}
	p.LastUpdated = now
	r.put(ctx, user.ID, p)
	return p, nil
}

// Update saves the edited profile and refreshes the cache.
func (r *Resolver) Update(ctx context.Context, user auth.User, e Edit) (Profile, error) {
	current, err := r.store.Get(ctx, user.ID)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return Profile{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	p := e.Apply(current)
	return r.save(ctx, user, p)
}

func (r *Resolver) save(ctx context.Context, user auth.User, p Profile) (Profile, error) {
	if user.Email != "" {
		p.Email = user.Email
	}
	p.LastUpdated = r.now()
	if err := r.store.Upsert(ctx, user.ID, p); err != nil {
		return Profile{}, fmt.Errorf("save profile: %w", err)
	}
	r.put(ctx, user.ID, p)
	return p, nil
}

// Invalidate drops the cached copy.
func (r *Resolver) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := r.cache.Invalidate(ctx, userID); err != nil {
		r.log.Warn("profile cache invalidate failed", "user", userID, "err", err)
	}
}

// WatchSessions invalidates a user's cached profile on logout.
func (r *Resolver) WatchSessions(p auth.Provider) (unsubscribe func()) {
	return p.OnChange(func(e auth.Event) {
		if e.Kind == auth.EventLogout {
			r.Invalidate(context.Background(), e.User.ID)
		}
	})
}

// cached treats cache errors as a miss.
func (r *Resolver) cached(ctx context.Context, userID uuid.UUID) (Profile, bool) {
	p, ok, err := r.cache.Get(ctx, userID)
	if err != nil {
		r.log.Warn("profile cache read failed", "user", userID, "err", err)
		return Profile{}, false
	}
	return p, ok
}

func (r *Resolver) put(ctx context.Context, userID uuid.UUID, p Profile) {
	if err := r.cache.Put(ctx, userID, p); err != nil {
		r.log.Warn("profile cache write failed", "user", userID, "err", err)
	}
}
