package profile

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile is the user data a CV is built from.
type Profile struct {
	DisplayName    string    `json:"displayName"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Location       string    `json:"location"`
	Bio            string    `json:"bio"`
	Skills         string    `json:"skills"`
	Experience     string    `json:"experience"`
	Education      string    `json:"education"`
	Certifications string    `json:"certifications"`
	LastUpdated    time.Time `json:"lastUpdated"`
}

// Edit is a user-supplied change set from the profile form. Email is not
// editable: it always comes from the session.
type Edit struct {
	DisplayName    string `json:"displayName"`
	Phone          string `json:"phone"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Skills         string `json:"skills"`
	Experience     string `json:"experience"`
	Education      string `json:"education"`
	Certifications string `json:"certifications"`
}

// Apply replaces every editable field of p with the form's value.
func (e Edit) Apply(p Profile) Profile {
	p.DisplayName = strings.TrimSpace(e.DisplayName)
	p.Phone = strings.TrimSpace(e.Phone)
	p.Location = strings.TrimSpace(e.Location)
	p.Bio = e.Bio
	p.Skills = e.Skills
	p.Experience = e.Experience
	p.Education = e.Education
	p.Certifications = e.Certifications
	return p
}

// Store is the persistent profile store.
type Store interface {
	// Get returns ErrNotFound when the user has never saved a profile.
	Get(ctx context.Context, userID uuid.UUID) (Profile, error)
	Upsert(ctx context.Context, userID uuid.UUID, p Profile) error
}

// Cache is the per-user local copy checked before the store.
type Cache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context, userID uuid.UUID) (p Profile, ok bool, err error)
	Put(ctx context.Context, userID uuid.UUID, p Profile) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
