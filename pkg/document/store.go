// Package document keeps generated CV documents in memory until they are
// opened. It backs the deferred "open generated document" link.
//
// A document id is a random uuid and works as a short-lived capability: the
// link opens without a bearer header, so a browser can navigate to it. The
// owner is kept so that logout revokes every link the user was handed.
package document

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobsearch/pkg/apperr"
	"github.com/artem13815/jobsearch/pkg/auth"
)

// DefaultTTL is how long a generated document stays retrievable.
const DefaultTTL = time.Hour

type Document struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	HTML      string
	CreatedAt time.Time
}

type Store struct {
	mu   sync.Mutex
	docs map[uuid.UUID]Document
	ttl  time.Duration
	now  func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{docs: make(map[uuid.UUID]Document), ttl: ttl, now: time.Now}
}

// Put stores html for owner and returns the new document id.
func (s *Store) Put(owner uuid.UUID, html string) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()
	d := Document{ID: uuid.New(), OwnerID: owner, HTML: html, CreatedAt: s.now()}
	s.docs[d.ID] = d
	return d.ID
}

// Get returns the document if it exists and has not expired.
func (s *Store) Get(id uuid.UUID) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[id]
	if !ok {
		return Document{}, apperr.NotFound("document")
	}
	if s.now().Sub(d.CreatedAt) >= s.ttl {
		delete(s.docs, id)
		return Document{}, apperr.NotFound("document")
	}
	return d, nil
}

// DropOwner forgets every document of owner (logout).
func (s *Store) DropOwner(owner uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, d := range s.docs {
		if d.OwnerID == owner {
			delete(s.docs, id)
		}
	}
}

// WatchSessions revokes a user's documents on logout.
func (s *Store) WatchSessions(p auth.Provider) (unsubscribe func()) {
	return p.OnChange(func(e auth.Event) {
		if e.Kind == auth.EventLogout {
			s.DropOwner(e.User.ID)
		}
	})
}

func (s *Store) pruneLocked() {
	now := s.now()
	for id, d := range s.docs {
		if now.Sub(d.CreatedAt) >= s.ttl {
			delete(s.docs, id)
		}
	}
}
