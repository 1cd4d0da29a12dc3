// Package auth turns request credentials into an authenticated public identity.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/users-api/internal/domain/entity"
	repo "github.com/oksasatya/users-api/internal/domain/repository"
	"github.com/oksasatya/users-api/internal/domain/security"
)

// ErrUnauthenticated is returned for any credential that does not identify a stored user.
var ErrUnauthenticated = errors.New("unauthenticated")

// Credentials carries what a request presented. Strategies read only the fields they need.
type Credentials struct {
	Token    string
	Email    string
	Password string
}

type Strategy interface {
	Authenticate(ctx context.Context, cr Credentials) (entity.PublicUser, error)
}

// BearerStrategy authenticates a signed token and re-loads its subject from the store.
type BearerStrategy struct {
	Tokens security.TokenVerifier
	Users  repo.UserRepository
}

func NewBearerStrategy(tokens security.TokenVerifier, users repo.UserRepository) *BearerStrategy {
	return &BearerStrategy{Tokens: tokens, Users: users}
}

func (b *BearerStrategy) Authenticate(ctx context.Context, cr Credentials) (entity.PublicUser, error) {
	if cr.Token == "" {
		return entity.PublicUser{}, ErrUnauthenticated
	}
	sub, err := b.Tokens.Verify(cr.Token)
	if err != nil {
		return entity.PublicUser{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	u, err := b.Users.GetByID(ctx, sub)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.PublicUser{}, ErrUnauthenticated
		}
		return entity.PublicUser{}, fmt.Errorf("load token subject: %w", err)
	}
	return entity.ToPublicView(*u), nil
}

// LocalStrategy authenticates an email and password pair.
// Unknown email and wrong password both yield ErrUnauthenticated.
type LocalStrategy struct {
	Hasher security.PasswordHasher
	Users  repo.UserRepository
}

func NewLocalStrategy(hasher security.PasswordHasher, users repo.UserRepository) *LocalStrategy {
	return &LocalStrategy{Hasher: hasher, Users: users}
}

func (l *LocalStrategy) Authenticate(ctx context.Context, cr Credentials) (entity.PublicUser, error) {
	email := entity.NormalizeEmail(cr.Email)
	if email == "" || cr.Password == "" {
		return entity.PublicUser{}, ErrUnauthenticated
	}
	u, err := l.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.PublicUser{}, ErrUnauthenticated
		}
		return entity.PublicUser{}, fmt.Errorf("load user by email: %w", err)
	}
	ok, err := l.Hasher.Verify(cr.Password, u.PasswordHash)
	if err != nil {
		return entity.PublicUser{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return entity.PublicUser{}, ErrUnauthenticated
	}
	return entity.ToPublicView(*u), nil
}

var (
	_ Strategy = (*BearerStrategy)(nil)
	_ Strategy = (*LocalStrategy)(nil)
)
