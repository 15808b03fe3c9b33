package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobsearch/pkg/apperr"
	"github.com/artem13815/jobsearch/pkg/profile"
)

// ProfileRepository stores job-seeker profiles, one row per user.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) Get(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.pool.QueryRow(ctx, `
SELECT display_name, email, phone, location, bio, skills, experience, education, certifications, updated_at
FROM profiles WHERE user_id = $1
`, userID)
	var p profile.Profile
	var updated time.Time
	if err := row.Scan(&p.DisplayName, &p.Email, &p.Phone, &p.Location, &p.Bio,
		&p.Skills, &p.Experience, &p.Education, &p.Certifications, &updated); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, apperr.NotFound("profile")
		}
		return profile.Profile{}, err
	}
	p.LastUpdated = updated.UTC()
	return p, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, userID uuid.UUID, p profile.Profile) error {
	updated := p.LastUpdated
	if updated.IsZero() {
		updated = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO profiles (user_id, display_name, email, phone, location, bio, skills, experience, education, certifications, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (user_id) DO UPDATE SET
	display_name = EXCLUDED.display_name,
	email = EXCLUDED.email,
	phone = EXCLUDED.phone,
	location = EXCLUDED.location,
	bio = EXCLUDED.bio,
	skills = EXCLUDED.skills,
	experience = EXCLUDED.experience,
	education = EXCLUDED.education,
	certifications = EXCLUDED.certifications,
	updated_at = EXCLUDED.updated_at
`, userID, p.DisplayName, p.Email, p.Phone, p.Location, p.Bio,
		p.Skills, p.Experience, p.Education, p.Certifications, updated)
	return err
}
