package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// EventKind tells subscribers what happened to a session.
type EventKind int

const (
	EventLogin EventKind = iota + 1
	EventLogout
)

// Event is published on login and logout.
type Event struct {
	Kind EventKind
	User User
}

// Provider is the "current session" capability handed to components that
// need to know who is acting, instead of a process-wide singleton.
type Provider interface {
	// CurrentUser returns the user bound to ctx by the auth middleware.
	CurrentUser(ctx context.Context) (User, bool)
	// OnChange subscribes fn to session events; the returned func unsubscribes.
	OnChange(fn func(Event)) (unsubscribe func())
}

type ctxKey struct{}

// WithUser binds u to ctx.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// Sessions is the default Provider: users travel in the request context,
// events are fanned out synchronously to subscribers.
type Sessions struct {
	mu        sync.RWMutex
	nextID    int
	listeners map[int]func(Event)
}

func NewSessions() *Sessions {
	return &Sessions{listeners: make(map[int]func(Event))}
}

func (s *Sessions) CurrentUser(ctx context.Context) (User, bool) {
	if ctx == nil {
		return User{}, false
	}
	u, ok := ctx.Value(ctxKey{}).(User)
	if !ok || u.ID == uuid.Nil {
		return User{}, false
	}
	return u, true
}

func (s *Sessions) OnChange(fn func(Event)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Publish delivers e to every subscriber.
func (s *Sessions) Publish(e Event) {
	s.mu.RLock()
	fns := make([]func(Event), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()
	for _, fn := range fns {
		fn(e)
	}
}
