package profile_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobsearch/pkg/apperr"
	"github.com/artem13815/jobsearch/pkg/auth"
	"github.com/artem13815/jobsearch/pkg/logging"
	"github.com/artem13815/jobsearch/pkg/profile"
)

type fakeStore struct {
	mu      sync.Mutex
	data    map[uuid.UUID]profile.Profile
	gets    int
	failGet error
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[uuid.UUID]profile.Profile{}}
}

func (s *fakeStore) Get(_ context.Context, id uuid.UUID) (profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets++
	if s.failGet != nil {
		return profile.Profile{}, s.failGet
	}
	p, ok := s.data[id]
	if !ok {
		return profile.Profile{}, apperr.NotFound("profile")
	}
	return p, nil
}

func (s *fakeStore) Upsert(_ context.Context, id uuid.UUID, p profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = p
	return nil
}

type fakeCache struct {
	mu   sync.Mutex
	data map[uuid.UUID]profile.Profile
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[uuid.UUID]profile.Profile{}}
}

func (c *fakeCache) Get(_ context.Context, id uuid.UUID) (profile.Profile, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.data[id]
	return p, ok, nil
}

func (c *fakeCache) Put(_ context.Context, id uuid.UUID, p profile.Profile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[id] = p
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, id)
	return nil
}

type fakeLLM struct {
	reply string
	err   error
}

func (f fakeLLM) Ask(context.Context, string, string) (string, error) {
	return f.reply, f.err
}

func testUser() auth.User {
	return auth.User{ID: uuid.New(), Email: "anna@example.se", DisplayName: "Anna"}
}

func TestResolve_CacheFreshness(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		age       time.Duration
		wantFetch bool
	}{
		{"23h old is fresh", 23 * time.Hour, false},
		{"25h old is stale", 25 * time.Hour, true},
		{"exactly 24h is stale", 24 * time.Hour, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store, cache := newFakeStore(), newFakeCache()
			u := testUser()
			store.data[u.ID] = profile.Profile{Skills: "Go"}
			cache.data[u.ID] = profile.Profile{Skills: "cached", LastUpdated: base}

			r := profile.NewResolver(store, cache, logging.NewNop()).
				WithClock(func() time.Time { return base.Add(tt.age) })
			p, err := r.Resolve(context.Background(), u)
			require.NoError(t, err)

			if tt.wantFetch {
				assert.Equal(t, 1, store.gets)
				assert.Equal(t, "Go", p.Skills)
				assert.Equal(t, base.Add(tt.age), cache.data[u.ID].LastUpdated)
			} else {
				assert.Zero(t, store.gets)
				assert.Equal(t, "cached", p.Skills)
			}
		})
	}
}

func TestResolve_MissingProfileUsesSession(t *testing.T) {
	t.Parallel()
	store, cache := newFakeStore(), newFakeCache()
	u := testUser()

	p, err := profile.NewResolver(store, cache, logging.NewNop()).Resolve(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, "Anna", p.DisplayName)
	assert.Equal(t, "anna@example.se", p.Email)
	assert.Empty(t, p.Skills)
}

func TestResolve_StoreFailure(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	store.failGet = errors.New("connection refused")

	_, err := profile.NewResolver(store, newFakeCache(), logging.NewNop()).Resolve(context.Background(), testUser())
	assert.ErrorIs(t, err, profile.ErrFetchFailed)
}

func TestUpdate_KeepsSessionEmail(t *testing.T) {
	t.Parallel()
	store, cache := newFakeStore(), newFakeCache()
	u := testUser()

	p, err := profile.NewResolver(store, cache, logging.NewNop()).Update(context.Background(), u, profile.Edit{
		DisplayName: " Anna A ",
		Skills:      "Go, SQL",
	})
	require.NoError(t, err)
	assert.Equal(t, "Anna A", p.DisplayName)
	assert.Equal(t, u.Email, store.data[u.ID].Email)
	assert.Equal(t, "Go, SQL", cache.data[u.ID].Skills)
}

func TestWatchSessions_LogoutInvalidates(t *testing.T) {
	t.Parallel()
	store, cache := newFakeStore(), newFakeCache()
	u := testUser()
	cache.data[u.ID] = profile.Profile{Skills: "cached", LastUpdated: time.Now()}

	sessions := auth.NewSessions()
	unsubscribe := profile.NewResolver(store, cache, logging.NewNop()).WatchSessions(sessions)
	defer unsubscribe()

	sessions.Publish(auth.Event{Kind: auth.EventLogin, User: u})
	assert.Contains(t, cache.data, u.ID)
	sessions.Publish(auth.Event{Kind: auth.EventLogout, User: u})
	assert.NotContains(t, cache.data, u.ID)
}

func docx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body string
	for _, p := range paragraphs {
		body += "<w:p><w:r><w:t>" + p + "</w:t></w:r></w:p>"
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?><w:document><w:body>` + body + `</w:body></w:document>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText_Docx(t *testing.T) {
	t.Parallel()
	text, err := profile.ExtractText("cv.DOCX", docx(t, "Anna Andersson", "Backendutvecklare"))
	require.NoError(t, err)
	assert.Equal(t, "Anna Andersson\nBackendutvecklare", text)
}

func TestExtractText_Unsupported(t *testing.T) {
	t.Parallel()
	_, err := profile.ExtractText("cv.txt", []byte("hello"))
	assert.ErrorIs(t, err, profile.ErrUnsupportedFormat)
}

func TestImport_MergesNonEmptyFields(t *testing.T) {
	t.Parallel()
	store, cache := newFakeStore(), newFakeCache()
	u := testUser()
	store.data[u.ID] = profile.Profile{DisplayName: "Anna", Phone: "070-1", Bio: "old bio"}

	model := fakeLLM{reply: "```json\n{\"phone\":\"\",\"bio\":\"new bio\",\"skills\":\"Go, Kafka\"}\n```"}
	resolver := profile.NewResolver(store, cache, logging.NewNop())
	p, err := profile.NewImporter(resolver, store, model).Import(context.Background(), u, "cv.docx", docx(t, "Anna", "Go"))
	require.NoError(t, err)

	assert.Equal(t, "070-1", p.Phone)
	assert.Equal(t, "new bio", p.Bio)
	assert.Equal(t, "Go, Kafka", p.Skills)
	assert.Equal(t, u.Email, p.Email)
	assert.Equal(t, p, store.data[u.ID])
}

func TestImport_Errors(t *testing.T) {
	t.Parallel()
	u := testUser()
	tests := []struct {
		name    string
		model   fakeLLM
		file    string
		wantErr error
	}{
		{"unsupported file", fakeLLM{reply: "{}"}, "cv.odt", apperr.ErrValidation},
		{"llm down", fakeLLM{err: errors.New("503")}, "cv.docx", apperr.ErrUpstream},
		{"not json", fakeLLM{reply: "sorry"}, "cv.docx", apperr.ErrMalformedResponse},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := newFakeStore()
			resolver := profile.NewResolver(store, newFakeCache(), logging.NewNop())
			_, err := profile.NewImporter(resolver, store, tt.model).Import(context.Background(), u, tt.file, docx(t, "Anna"))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
