package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tendant/simple-auth/pkg/password"
	"github.com/tendant/simple-auth/pkg/token"
)

// Service composes the credential hasher and the token service into the
// account operations: registration, login, current-user resolution and
// logout.
type Service struct {
	repo     Repository
	hasher   password.Hasher
	policy   *password.Policy
	tokens   *token.Service
	tokenTTL time.Duration
}

// ServiceOption defines configuration options for the account service.
type ServiceOption func(*Service)

// WithPasswordPolicy overrides the password complexity policy.
func WithPasswordPolicy(policy *password.Policy) ServiceOption {
	return func(s *Service) {
		s.policy = policy
	}
}

// WithTokenTTL sets the lifetime of tokens issued on login.
func WithTokenTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.tokenTTL = ttl
	}
}

// NewService creates a new account service.
func NewService(repo Repository, hasher password.Hasher, tokens *token.Service, opts ...ServiceOption) *Service {
	s := &Service{
		repo:     repo,
		hasher:   hasher,
		policy:   password.DefaultPolicy(),
		tokens:   tokens,
		tokenTTL: token.DefaultExpiry,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RegisterParams holds the registration input.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates a new account with a hashed password and an
// unverified email. The password policy runs before any storage access.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	if err := s.policy.CheckComplexity(params.Password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeakPassword, err)
	}

	_, err := s.repo.GetUserByEmail(ctx, params.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		slog.Error("Failed to check existing email", "err", err)
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		slog.Error("Failed to hash password", "err", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, CreateUserParams{
		Email:        params.Email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		slog.Error("Failed to create user", "err", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("Account created", "user_id", user.ID)
	return user, nil
}

// Login verifies the credentials and issues a bearer token. An unknown
// email and a wrong password both fail with ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (*User, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		slog.Error("Failed to look up user", "err", err)
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	match, err := s.hasher.Verify(plainPassword, user.PasswordHash)
	if err != nil {
		slog.Error("Failed to verify password", "user_id", user.ID, "err", err)
		return nil, "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		return nil, "", ErrInvalidCredentials
	}

	tokenStr, _, err := s.tokens.Issue(ctx, user.ID, s.tokenTTL)
	if err != nil {
		slog.Error("Failed to issue token", "user_id", user.ID, "err", err)
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("Login successful", "user_id", user.ID)
	return user, tokenStr, nil
}

// GetCurrentUser resolves a bearer token to its user. Token failures
// collapse to ErrUnauthenticated; storage failures are wrapped and
// surfaced as-is so callers can report them separately.
func (s *Service) GetCurrentUser(ctx context.Context, tokenStr string) (*User, error) {
	userID, err := s.tokens.Validate(ctx, tokenStr)
	if err != nil {
		switch {
		case errors.Is(err, token.ErrTokenExpired):
			return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, token.ErrTokenExpired)
		case errors.Is(err, token.ErrTokenNotFound), errors.Is(err, token.ErrTokenInvalid):
			return nil, ErrUnauthenticated
		default:
			slog.Error("Failed to validate token", "err", err)
			return nil, fmt.Errorf("failed to validate token: %w", err)
		}
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		slog.Error("Failed to load user", "user_id", userID, "err", err)
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return user, nil
}

// Logout revokes the presented token, ending that session.
func (s *Service) Logout(ctx context.Context, tokenStr string) error {
	return s.tokens.Revoke(ctx, tokenStr)
}
