package cv

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobsearch/pkg/auth"
	"github.com/artem13815/jobsearch/pkg/job"
	"github.com/artem13815/jobsearch/pkg/logging"
	"github.com/artem13815/jobsearch/pkg/profile"
)

// DefaultTimeout bounds one generation POST.
const DefaultTimeout = 30 * time.Second

const (
	ModeNewTab   = "new_tab"
	ModeDeferred = "deferred"
)

// ProfileResolver returns the profile a CV is built from.
type ProfileResolver interface {
	Resolve(ctx context.Context, user auth.User) (profile.Profile, error)
}

// DocumentStore keeps generated HTML for the mobile "open document" link.
type DocumentStore interface {
	Put(owner uuid.UUID, html string) uuid.UUID
}

type Deps struct {
	Auth      auth.Provider
	Profiles  ProfileResolver
	Generator Generator
	Documents DocumentStore
	Catalog   *Catalog
	Log       *logging.Logger
	// Timeout defaults to DefaultTimeout.
	Timeout time.Duration
	// DocumentPath builds the link served for a stored document.
	DocumentPath func(id uuid.UUID) string
}

// Presentation tells the client what to do with a generated CV.
type Presentation struct {
	Mode string `json:"mode"`
	HTML string `json:"html,omitempty"`
	URL  string `json:"url,omitempty"`
}

// SubmitForm carries the template choice and the profile form as edited in
// the dialog. A nil Profile keeps the resolved one.
type SubmitForm struct {
	Template string        `json:"template"`
	Profile  *profile.Edit `json:"profile,omitempty"`
}

// Snapshot is a read-only copy of the dialog for rendering.
type Snapshot struct {
	ID           uuid.UUID       `json:"id"`
	JobID        string          `json:"jobId"`
	JobTitle     string          `json:"jobTitle"`
	State        State           `json:"state"`
	Mobile       bool            `json:"mobile"`
	Closed       bool            `json:"closed"`
	Profile      profile.Profile `json:"profile"`
	Presentation *Presentation   `json:"presentation,omitempty"`
	LastError    string          `json:"lastError,omitempty"`
}

// Dialog is one "create CV" dialog for one job. Methods are safe for
// concurrent use; the lock is never held across I/O.
type Dialog struct {
	deps Deps
	id   uuid.UUID
	job  job.Job

	mu           sync.Mutex
	state        State
	user         auth.User
	profile      profile.Profile
	width        int
	closed       bool
	presentation *Presentation
	lastError    string
}

func NewDialog(deps Deps, j job.Job, viewportWidth int) *Dialog {
	if deps.Timeout <= 0 {
		deps.Timeout = DefaultTimeout
	}
	if deps.Log == nil {
		deps.Log = logging.NewNop()
	}
	if deps.DocumentPath == nil {
		deps.DocumentPath = func(id uuid.UUID) string { return "/api/v1/documents/" + id.String() }
	}
	return &Dialog{
		deps:  deps,
		id:    uuid.New(),
		job:   j,
		state: StateIdle,
		width: viewportWidth,
	}
}

func (d *Dialog) ID() uuid.UUID { return d.id }

// Open checks the session and loads the profile. It may be retried after a
// failed profile fetch.
func (d *Dialog) Open(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDialogClosed
	}
	user, ok := d.deps.Auth.CurrentUser(ctx)
	if !ok {
		if err := d.moveLocked(StateAuthRequired); err != nil {
			d.mu.Unlock()
			return err
		}
		d.mu.Unlock()
		return ErrAuthRequired
	}
	if err := d.moveLocked(StateLoading); err != nil {
		d.mu.Unlock()
		return err
	}
	d.user = user
	d.mu.Unlock()

	p, err := d.deps.Profiles.Resolve(ctx, user)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDialogClosed
	}
	if err != nil {
		d.state = StateFailed
		d.lastError = ErrProfileFetchFailed.Error()
		d.deps.Log.Warn("cv dialog profile fetch failed", "dialog", d.id, "user", user.ID, "err", err)
		return fmt.Errorf("%w: %v", ErrProfileFetchFailed, err)
	}
	d.profile = p
	d.lastError = ""
	d.state = StateReady
	return nil
}

// Submit gates the template, posts the assembled request and decides how
// the result is presented. Only one submission runs at a time.
func (d *Dialog) Submit(ctx context.Context, form SubmitForm) (Presentation, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return Presentation{}, ErrDialogClosed
	}
	if d.state == StateSubmitting {
		d.mu.Unlock()
		return Presentation{}, ErrSubmitInFlight
	}
	if !CanTransition(d.state, StateSubmitting) {
		err := transitionError(d.state, StateSubmitting)
		d.mu.Unlock()
		return Presentation{}, err
	}
	if _, err := d.deps.Catalog.Check(form.Template); err != nil {
		d.mu.Unlock()
		return Presentation{}, err
	}
	if form.Profile != nil {
		d.profile = form.Profile.Apply(d.profile)
	}
	req := NewRequest(d.profile, d.job, form.Template)
	owner := d.user.ID
	d.state = StateSubmitting
	d.presentation = nil
	d.mu.Unlock()

	// closing the dialog does not cancel the request, neither does the caller going away
	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.deps.Timeout)
	res, err := d.deps.Generator.Generate(callCtx, req)
	cancel()

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.deps.Log.Debug("cv result discarded, dialog closed", "dialog", d.id)
		return Presentation{}, ErrDialogClosed
	}
	if err != nil {
		if !errors.Is(err, ErrGenerationRequestFailed) && !errors.Is(err, ErrNoContentReturned) {
			err = fmt.Errorf("%w: %v", ErrGenerationRequestFailed, err)
		}
		d.state = StateFailed
		d.lastError = err.Error()
		d.deps.Log.Warn("cv generation failed", "dialog", d.id, "template", req.Template, "err", err)
		// the form stays as entered so the user can retry
		d.state = StateReady
		return Presentation{}, err
	}

	d.state = StateCompleted
	d.lastError = ""
	p := d.presentLocked(owner, res)
	d.presentation = &p
	return p, nil
}

func (d *Dialog) presentLocked(owner uuid.UUID, res Result) Presentation {
	if !IsMobile(d.width) {
		d.closed = true
		return Presentation{Mode: ModeNewTab, HTML: res.HTML, URL: res.URL}
	}
	if res.HTML != "" {
		id := d.deps.Documents.Put(owner, res.HTML)
		return Presentation{Mode: ModeDeferred, URL: d.deps.DocumentPath(id)}
	}
	return Presentation{Mode: ModeDeferred, URL: res.URL}
}

// SetViewport records a resize report from the client.
func (d *Dialog) SetViewport(width int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDialogClosed
	}
	if width < 0 {
		width = 0
	}
	d.width = width
	return nil
}

// Close discards the dialog; an in-flight result is dropped when it arrives.
func (d *Dialog) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
}

func (d *Dialog) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func (d *Dialog) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := Snapshot{
		ID:        d.id,
		JobID:     d.job.ID,
		JobTitle:  d.job.Title,
		State:     d.state,
		Mobile:    IsMobile(d.width),
		Closed:    d.closed,
		Profile:   d.profile,
		LastError: d.lastError,
	}
	if d.presentation != nil {
		p := *d.presentation
		s.Presentation = &p
	}
	return s
}

func (d *Dialog) moveLocked(to State) error {
	if !CanTransition(d.state, to) {
		return transitionError(d.state, to)
	}
	d.state = to
	return nil
}
