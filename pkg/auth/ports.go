package auth

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserRepository stores accounts; emails are compared case-insensitively.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	// GetByEmail returns ErrNotFound for an unknown address.
	GetByEmail(ctx context.Context, email string) (User, error)
}

// TokenGenerator issues the bearer token for a signed-in user.
type TokenGenerator interface {
	Generate(ctx context.Context, user User) (string, error)
}

// Publisher receives session events; *Sessions implements it.
type Publisher interface {
	Publish(e Event)
}
