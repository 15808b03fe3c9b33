package cv_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobsearch/pkg/apperr"
	"github.com/artem13815/jobsearch/pkg/auth"
	"github.com/artem13815/jobsearch/pkg/cv"
	"github.com/artem13815/jobsearch/pkg/document"
	"github.com/artem13815/jobsearch/pkg/job"
	"github.com/artem13815/jobsearch/pkg/logging"
	"github.com/artem13815/jobsearch/pkg/profile"
)

type stubResolver struct {
	p   profile.Profile
	err error
}

func (s stubResolver) Resolve(context.Context, auth.User) (profile.Profile, error) {
	return s.p, s.err
}

type stubGenerator struct {
	mu      sync.Mutex
	calls   atomic.Int32
	last    cv.Request
	res     cv.Result
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (g *stubGenerator) Generate(ctx context.Context, r cv.Request) (cv.Result, error) {
	g.calls.Add(1)
	g.mu.Lock()
	g.last = r
	g.mu.Unlock()
	if g.entered != nil {
		g.entered <- struct{}{}
	}
	if g.block != nil {
		select {
		case <-g.block:
		case <-ctx.Done():
			return cv.Result{}, ctx.Err()
		}
	}
	return g.res, g.err
}

func (g *stubGenerator) lastRequest() cv.Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

var anna = auth.User{ID: uuid.New(), Email: "anna@example.se", DisplayName: "Anna"}

func userCtx() context.Context {
	return auth.WithUser(context.Background(), anna)
}

func newDialog(gen cv.Generator, res cv.ProfileResolver, width int) (*cv.Dialog, *document.Store) {
	docs := document.NewStore(time.Hour)
	deps := cv.Deps{
		Auth:      auth.NewSessions(),
		Profiles:  res,
		Generator: gen,
		Documents: docs,
		Catalog:   cv.DefaultCatalog(),
		Log:       logging.NewNop(),
	}
	return cv.NewDialog(deps, job.Job{ID: "42", Title: "Utvecklare", Description: "..."}, width), docs
}

func TestOpen_NoSessionIsAuthRequired(t *testing.T) {
	d, _ := newDialog(&stubGenerator{}, stubResolver{}, 1280)

	err := d.Open(context.Background())
	assert.ErrorIs(t, err, cv.ErrAuthRequired)
	assert.Equal(t, cv.StateAuthRequired, d.Snapshot().State)

	// terminal
	assert.ErrorIs(t, d.Open(userCtx()), cv.ErrInvalidTransition)
}

func TestOpen_ProfileFailureThenRetry(t *testing.T) {
	res := &stubResolver{err: errors.New("db down")}
	docs := document.NewStore(time.Hour)
	d := cv.NewDialog(cv.Deps{
		Auth: auth.NewSessions(), Profiles: res, Generator: &stubGenerator{},
		Documents: docs, Catalog: cv.DefaultCatalog(),
	}, job.Job{ID: "1"}, 0)

	err := d.Open(userCtx())
	assert.ErrorIs(t, err, cv.ErrProfileFetchFailed)
	assert.Equal(t, cv.StateFailed, d.Snapshot().State)

	res.err = nil
	res.p = profile.Profile{DisplayName: "Anna"}
	require.NoError(t, d.Open(userCtx()))
	assert.Equal(t, cv.StateReady, d.Snapshot().State)
	assert.Empty(t, d.Snapshot().LastError)
}

func TestSubmit_DesktopOpensNewTabAndCloses(t *testing.T) {
	gen := &stubGenerator{res: cv.Result{HTML: "<p>ok</p>"}}
	d, _ := newDialog(gen, stubResolver{p: profile.Profile{DisplayName: "Anna"}}, 1280)
	require.NoError(t, d.Open(userCtx()))

	p, err := d.Submit(userCtx(), cv.SubmitForm{Template: "template1"})
	require.NoError(t, err)

	assert.Equal(t, cv.Presentation{Mode: cv.ModeNewTab, HTML: "<p>ok</p>"}, p)
	assert.True(t, d.Closed())
	assert.Equal(t, cv.NewRequest(profile.Profile{DisplayName: "Anna"}, job.Job{Title: "Utvecklare", Description: "..."}, "template1"), gen.lastRequest())
}

func TestSubmit_MobileDefersAndStaysOpen(t *testing.T) {
	gen := &stubGenerator{res: cv.Result{HTML: "<p>ok</p>"}}
	d, docs := newDialog(gen, stubResolver{p: profile.Profile{DisplayName: "Anna"}}, 390)
	require.NoError(t, d.Open(userCtx()))

	p, err := d.Submit(userCtx(), cv.SubmitForm{Template: "template1"})
	require.NoError(t, err)

	assert.Equal(t, cv.ModeDeferred, p.Mode)
	assert.Empty(t, p.HTML)
	require.True(t, strings.HasPrefix(p.URL, "/api/v1/documents/"))
	assert.False(t, d.Closed())

	snap := d.Snapshot()
	assert.Equal(t, cv.StateCompleted, snap.State)
	require.NotNil(t, snap.Presentation)
	assert.Equal(t, p, *snap.Presentation)

	id, err := uuid.Parse(strings.TrimPrefix(p.URL, "/api/v1/documents/"))
	require.NoError(t, err)
	doc, err := docs.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "<p>ok</p>", doc.HTML)

	// completed dialogs may regenerate
	_, err = d.Submit(userCtx(), cv.SubmitForm{Template: "template1"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, gen.calls.Load())
}

func TestSubmit_MobileURLResultExposedAsIs(t *testing.T) {
	gen := &stubGenerator{res: cv.Result{URL: "https://cdn.example/cv.pdf"}}
	d, _ := newDialog(gen, stubResolver{}, 600)
	require.NoError(t, d.Open(userCtx()))

	p, err := d.Submit(userCtx(), cv.SubmitForm{Template: "template1"})
	require.NoError(t, err)
	assert.Equal(t, cv.Presentation{Mode: cv.ModeDeferred, URL: "https://cdn.example/cv.pdf"}, p)
}

func TestSubmit_ViewportChangeIsHonoured(t *testing.T) {
	gen := &stubGenerator{res: cv.Result{HTML: "<p>ok</p>"}}
	d, _ := newDialog(gen, stubResolver{}, 1280)
	require.NoError(t, d.Open(userCtx()))
	require.NoError(t, d.SetViewport(500))
	assert.True(t, d.Snapshot().Mobile)

	p, err := d.Submit(userCtx(), cv.SubmitForm{Template: "template1"})
	require.NoError(t, err)
	assert.Equal(t, cv.ModeDeferred, p.Mode)
}

func TestSubmit_TemplateGateMakesNoRequest(t *testing.T) {
	gen := &stubGenerator{res: cv.Result{HTML: "x"}}
	d, _ := newDialog(gen, stubResolver{}, 1280)
	require.NoError(t, d.Open(userCtx()))

	_, err := d.Submit(userCtx(), cv.SubmitForm{Template: "template3"})
	assert.ErrorIs(t, err, cv.ErrTemplateNotFree)
	_, err = d.Submit(userCtx(), cv.SubmitForm{Template: "nope"})
	assert.ErrorIs(t, err, cv.ErrUnknownTemplate)

	assert.Zero(t, gen.calls.Load())
	assert.Equal(t, cv.StateReady, d.Snapshot().State)
}

func TestSubmit_FailureRestoresFormForRetry(t *testing.T) {
	gen := &stubGenerator{err: cv.ErrGenerationRequestFailed}
	d, _ := newDialog(gen, stubResolver{p: profile.Profile{DisplayName: "Anna", Email: "anna@example.se"}}, 1280)
	require.NoError(t, d.Open(userCtx()))

	form := cv.SubmitForm{Template: "template1", Profile: &profile.Edit{DisplayName: "Anna A", Skills: "Go"}}
	_, err := d.Submit(userCtx(), form)
	assert.ErrorIs(t, err, cv.ErrGenerationRequestFailed)
	assert.ErrorIs(t, err, apperr.ErrUpstream)

	snap := d.Snapshot()
	assert.Equal(t, cv.StateReady, snap.State)
	assert.NotEmpty(t, snap.LastError)
	assert.Equal(t, "Anna A", snap.Profile.DisplayName)
	assert.Equal(t, "Go", snap.Profile.Skills)
	assert.Equal(t, "anna@example.se", snap.Profile.Email)

	gen.err = nil
	gen.res = cv.Result{HTML: "<p>ok</p>"}
	_, err = d.Submit(userCtx(), cv.SubmitForm{Template: "template1"})
	require.NoError(t, err)
	assert.Equal(t, "Anna A", gen.lastRequest().DisplayName)
}

func TestSubmit_NoContentAndUnknownErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"no content", cv.ErrNoContentReturned, apperr.ErrMalformedResponse},
		{"plain transport error", errors.New("dial tcp: refused"), cv.ErrGenerationRequestFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newDialog(&stubGenerator{err: tt.err}, stubResolver{}, 1280)
			require.NoError(t, d.Open(userCtx()))
			_, err := d.Submit(userCtx(), cv.SubmitForm{Template: "template1"})
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, cv.StateReady, d.Snapshot().State)
		})
	}
}

func TestSubmit_SecondSubmitWhileInFlight(t *testing.T) {
	gen := &stubGenerator{
		res:     cv.Result{HTML: "<p>ok</p>"},
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	d, _ := newDialog(gen, stubResolver{}, 1280)
	require.NoError(t, d.Open(userCtx()))

	done := make(chan error, 1)
	go func() {
		_, err := d.Submit(userCtx(), cv.SubmitForm{Template: "template1"})
		done <- err
	}()
	<-gen.entered

	assert.Equal(t, cv.StateSubmitting, d.Snapshot().State)
	_, err := d.Submit(userCtx(), cv.SubmitForm{Template: "template1"})
	assert.ErrorIs(t, err, cv.ErrSubmitInFlight)

	close(gen.block)
	require.NoError(t, <-done)
	assert.EqualValues(t, 1, gen.calls.Load())
}

func TestSubmit_LateResponseAfterCloseIsDiscarded(t *testing.T) {
	gen := &stubGenerator{
		res:     cv.Result{HTML: "<p>ok</p>"},
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	d, _ := newDialog(gen, stubResolver{}, 390)
	require.NoError(t, d.Open(userCtx()))

	done := make(chan error, 1)
	go func() {
		_, err := d.Submit(userCtx(), cv.SubmitForm{Template: "template1"})
		done <- err
	}()
	<-gen.entered
	d.Close()
	close(gen.block)

	assert.ErrorIs(t, <-done, cv.ErrDialogClosed)
	snap := d.Snapshot()
	assert.Equal(t, cv.StateSubmitting, snap.State)
	assert.Nil(t, snap.Presentation)
}

func TestSubmit_Timeout(t *testing.T) {
	gen := &stubGenerator{block: make(chan struct{})}
	defer close(gen.block)
	deps := cv.Deps{
		Auth: auth.NewSessions(), Profiles: stubResolver{}, Generator: gen,
		Documents: document.NewStore(time.Hour), Catalog: cv.DefaultCatalog(),
		Timeout: 20 * time.Millisecond,
	}
	d := cv.NewDialog(deps, job.Job{ID: "1"}, 0)
	require.NoError(t, d.Open(userCtx()))

	_, err := d.Submit(userCtx(), cv.SubmitForm{Template: "template1"})
	assert.ErrorIs(t, err, cv.ErrGenerationRequestFailed)
	assert.Equal(t, cv.StateReady, d.Snapshot().State)
}

func TestSubmit_BeforeOpenIsInvalid(t *testing.T) {
	d, _ := newDialog(&stubGenerator{}, stubResolver{}, 0)
	_, err := d.Submit(userCtx(), cv.SubmitForm{Template: "template1"})
	assert.ErrorIs(t, err, cv.ErrInvalidTransition)
}
