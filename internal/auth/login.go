package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/oggyb/pawmatch/internal/db"
	"github.com/oggyb/pawmatch/internal/repository"
)

var ErrBadCredentials = errors.New("auth: bad credentials")

// ProfileFinder looks up accounts by email.
type ProfileFinder interface {
	GetProfileByEmail(ctx context.Context, email string) (*db.Profile, error)
}

// HashPassword returns the bcrypt hash stored on a profile.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login checks email/password and returns a signed token for the account.
func Login(ctx context.Context, profiles ProfileFinder, tokens *Tokens, email, password string) (string, error) {
	p, err := profiles.GetProfileByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrBadCredentials
	}
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(password)); err != nil {
		return "", ErrBadCredentials
	}
	return tokens.Issue(p.ID)
}
