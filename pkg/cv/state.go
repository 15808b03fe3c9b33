// Package cv assembles CV generation requests and drives the per-job
// "create CV" dialog.
//
// Dialog state graph:
//
//	idle        ──► loading | auth_required
//	loading     ──► ready | failed
//	ready       ──► submitting
//	submitting  ──► completed | failed
//	completed   ──► submitting
//	failed      ──► ready | loading
//
// auth_required is terminal.
package cv

import "fmt"

type State string

const (
	StateIdle         State = "idle"
	StateLoading      State = "loading"
	StateReady        State = "ready"
	StateSubmitting   State = "submitting"
	StateCompleted    State = "completed"
	StateFailed       State = "failed"
	StateAuthRequired State = "auth_required"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[State][]State{
	StateIdle:       {StateLoading, StateAuthRequired},
	StateLoading:    {StateReady, StateFailed},
	StateReady:      {StateSubmitting},
	StateSubmitting: {StateCompleted, StateFailed},
	StateCompleted:  {StateSubmitting},
	// failed → loading retries a profile fetch, failed → ready restores the form
	StateFailed: {StateReady, StateLoading},
	// auth_required is terminal
}

// CanTransition reports whether the dialog may move from → to.
func CanTransition(from, to State) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func transitionError(from, to State) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
