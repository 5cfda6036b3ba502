// Package service provides business logic for authentication and todo
// operations, delegating persistence to repository interfaces.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/atinyakov/todovault/internal/models"
	"github.com/atinyakov/todovault/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthRepository defines the persistence operations
// required by the authentication service.
type AuthRepository interface {
	// FindByEmail returns the user registered under the given email,
	// or repository.ErrNotFound.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByEmailOrUsername returns a user matching either field,
	// or repository.ErrNotFound. Used to detect signup collisions.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*models.User, error)
	// Create inserts a new user with an empty todo list.
	Create(ctx context.Context, id, username, email string, passwordHash []byte) (*models.User, error)
}

// TokenIssuer produces a signed identity token bound to a user ID.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthService implements signup and login, issuing identity tokens on success.
type AuthService struct {
	repo   AuthRepository
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService using the provided repository
// and token issuer.
func NewAuthService(repo AuthRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Signup registers a new user and returns an identity token for them.
// Returns ErrConflict if the email or username is already registered, on
// either field independently.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (string, error) {
	_, err := s.repo.FindByEmailOrUsername(ctx, email, username)
	if err == nil {
		return "", ErrConflict
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("signup lookup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, uuid.NewString(), username, email, hash)
	if err != nil {
		// The unique constraint backstops a probe/create race.
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrConflict
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	return s.tokens.Issue(user.ID)
}

// Login verifies the email/password pair and returns an identity token.
// An unknown email and a wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("login lookup: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}
