// Package session holds each signed-in user's in-process workspace: the
// current search result with its filters and page, and the open CV dialogs.
//
// Workspaces and dialogs that are not touched for the idle TTL are closed
// and forgotten, so tokens that simply expire do not pin memory.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobsearch/pkg/apperr"
	"github.com/artem13815/jobsearch/pkg/auth"
	"github.com/artem13815/jobsearch/pkg/cv"
	"github.com/artem13815/jobsearch/pkg/listing"
)

const (
	// DefaultIdleTTL is how long an untouched workspace or dialog survives.
	DefaultIdleTTL = 2 * time.Hour
	// MaxDialogs caps the open dialogs of one workspace; opening one more
	// closes the least recently used.
	MaxDialogs = 8

	pruneEvery = time.Minute
)

type dialogEntry struct {
	dialog   *cv.Dialog
	lastUsed time.Time
}

type Workspace struct {
	Browser *listing.Browser

	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	dialogs  map[uuid.UUID]*dialogEntry
	lastSeen time.Time
}

func (w *Workspace) AddDialog(d *cv.Dialog) {
	var evicted []*cv.Dialog
	w.mu.Lock()
	now := w.now()
	w.lastSeen = now
	evicted = w.pruneLocked(now)
	for len(w.dialogs) >= MaxDialogs {
		evicted = append(evicted, w.evictOldestLocked())
	}
	w.dialogs[d.ID()] = &dialogEntry{dialog: d, lastUsed: now}
	w.mu.Unlock()
	closeDialogs(evicted)
}

// Dialog returns an open dialog. Closed and idle dialogs are forgotten on
// lookup.
func (w *Workspace) Dialog(id uuid.UUID) (*cv.Dialog, error) {
	w.mu.Lock()
	now := w.now()
	w.lastSeen = now
	evicted := w.pruneLocked(now)
	e, ok := w.dialogs[id]
	if ok && e.dialog.Closed() {
		delete(w.dialogs, id)
		ok = false
	}
	if ok {
		e.lastUsed = now
	}
	w.mu.Unlock()
	closeDialogs(evicted)

	if !ok {
		return nil, apperr.NotFound("dialog")
	}
	return e.dialog, nil
}

// CloseDialog closes and forgets the dialog; unknown ids are ignored.
func (w *Workspace) CloseDialog(id uuid.UUID) {
	w.mu.Lock()
	e, ok := w.dialogs[id]
	delete(w.dialogs, id)
	w.mu.Unlock()
	if ok {
		e.dialog.Close()
	}
}

// OpenDialogs is the number of dialogs currently registered.
func (w *Workspace) OpenDialogs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.dialogs)
}

func (w *Workspace) closeAll() {
	w.mu.Lock()
	entries := w.dialogs
	w.dialogs = make(map[uuid.UUID]*dialogEntry)
	w.mu.Unlock()
	for _, e := range entries {
		e.dialog.Close()
	}
}

func (w *Workspace) idle(now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return now.Sub(w.lastSeen) >= w.ttl
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

// pruneLocked unregisters closed and idle dialogs and returns the ones the
// caller must close once the lock is released.
func (w *Workspace) pruneLocked(now time.Time) []*cv.Dialog {
	var out []*cv.Dialog
	for id, e := range w.dialogs {
		switch {
		case e.dialog.Closed():
			delete(w.dialogs, id)
		case now.Sub(e.lastUsed) >= w.ttl:
			delete(w.dialogs, id)
			out = append(out, e.dialog)
		}
	}
	return out
}

func (w *Workspace) evictOldestLocked() *cv.Dialog {
	var oldest uuid.UUID
	var at time.Time
	first := true
	for id, e := range w.dialogs {
		if first || e.lastUsed.Before(at) {
			oldest, at, first = id, e.lastUsed, false
		}
	}
	e := w.dialogs[oldest]
	delete(w.dialogs, oldest)
	return e.dialog
}

func closeDialogs(ds []*cv.Dialog) {
	for _, d := range ds {
		d.Close()
	}
}

// Registry maps users to workspaces.
type Registry struct {
	ttl time.Duration
	now func() time.Time

	mu         sync.Mutex
	workspaces map[uuid.UUID]*Workspace
	lastPrune  time.Time
}

// NewRegistry keeps workspaces for idleTTL after their last use; a
// non-positive value means DefaultIdleTTL.
func NewRegistry(idleTTL time.Duration) *Registry {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	return &Registry{ttl: idleTTL, now: time.Now, workspaces: make(map[uuid.UUID]*Workspace)}
}

// WithClock replaces the time source; tests use it to age workspaces.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

// Workspace returns the user's workspace, creating it on first use.
func (r *Registry) Workspace(userID uuid.UUID) *Workspace {
	r.mu.Lock()
	now := r.now()
	idle := r.pruneLocked(now)
	w, ok := r.workspaces[userID]
	if !ok {
		w = &Workspace{
			Browser:  listing.NewBrowser(),
			ttl:      r.ttl,
			now:      r.now,
			dialogs:  make(map[uuid.UUID]*dialogEntry),
			lastSeen: now,
		}
		r.workspaces[userID] = w
	}
	w.touch(now)
	r.mu.Unlock()

	for _, iw := range idle {
		iw.closeAll()
	}
	return w
}

// Len is the number of live workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.workspaces)
}

// Drop closes the user's dialogs and forgets the workspace.
func (r *Registry) Drop(userID uuid.UUID) {
	r.mu.Lock()
	w, ok := r.workspaces[userID]
	delete(r.workspaces, userID)
	r.mu.Unlock()
	if ok {
		w.closeAll()
	}
}

// WatchSessions drops a user's workspace on logout.
func (r *Registry) WatchSessions(p auth.Provider) (unsubscribe func()) {
	return p.OnChange(func(e auth.Event) {
		if e.Kind == auth.EventLogout {
			r.Drop(e.User.ID)
		}
	})
}

// pruneLocked runs at most once per pruneEvery and returns the idle
// workspaces it removed.
func (r *Registry) pruneLocked(now time.Time) []*Workspace {
	if now.Sub(r.lastPrune) < pruneEvery {
		return nil
	}
	r.lastPrune = now
	var out []*Workspace
	for id, w := range r.workspaces {
		if w.idle(now) {
			delete(r.workspaces, id)
			out = append(out, w)
		}
	}
	return out
}
