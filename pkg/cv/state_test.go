package cv_test

import (
	"testing"

	"github.com/artem13815/jobsearch/pkg/cv"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to cv.State
		want     bool
	}{
		{cv.StateIdle, cv.StateLoading, true},
		{cv.StateIdle, cv.StateAuthRequired, true},
		{cv.StateIdle, cv.StateSubmitting, false},
		{cv.StateLoading, cv.StateReady, true},
		{cv.StateLoading, cv.StateFailed, true},
		{cv.StateReady, cv.StateSubmitting, true},
		{cv.StateReady, cv.StateCompleted, false},
		{cv.StateSubmitting, cv.StateCompleted, true},
		{cv.StateSubmitting, cv.StateFailed, true},
		{cv.StateSubmitting, cv.StateSubmitting, false},
		{cv.StateCompleted, cv.StateSubmitting, true},
		{cv.StateFailed, cv.StateReady, true},
		{cv.StateFailed, cv.StateLoading, true},
		{cv.StateFailed, cv.StateCompleted, false},
	}
	for _, c := range cases {
		if got := cv.CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestAuthRequiredIsTerminal(t *testing.T) {
	all := []cv.State{
		cv.StateIdle, cv.StateLoading, cv.StateReady, cv.StateSubmitting,
		cv.StateCompleted, cv.StateFailed, cv.StateAuthRequired,
	}
	for _, to := range all {
		if cv.CanTransition(cv.StateAuthRequired, to) {
			t.Errorf("auth_required -> %s should not be allowed", to)
		}
	}
}

func TestIsMobile(t *testing.T) {
	cases := map[int]bool{0: false, 320: true, 768: true, 769: false, 1440: false}
	for width, want := range cases {
		if got := cv.IsMobile(width); got != want {
			t.Errorf("IsMobile(%d) = %v, want %v", width, got, want)
		}
	}
}
