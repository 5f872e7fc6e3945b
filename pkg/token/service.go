package token

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultExpiry is the token lifetime applied when the caller does not
// specify one.
const DefaultExpiry = 168 * time.Hour

// Service issues and validates signed bearer tokens. Every issued token
// is backed by a persisted record; validation requires both a matching
// record and a valid signature, so deleting the record revokes the token
// even though the signature would still verify.
type Service struct {
	repo          Repository
	secret        string
	issuer        string
	defaultExpiry time.Duration
	now           func() time.Time
}

// Option defines configuration options for the token service.
type Option func(*Service)

// WithDefaultExpiry sets the expiry applied when Issue is called with a
// non-positive ttl.
func WithDefaultExpiry(expiry time.Duration) Option {
	return func(s *Service) {
		s.defaultExpiry = expiry
	}
}

// WithIssuer sets the iss claim on issued tokens.
func WithIssuer(issuer string) Option {
	return func(s *Service) {
		s.issuer = issuer
	}
}

// WithNowFunc overrides the clock, used by tests to simulate expiry.
func WithNowFunc(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new token service signing with the given secret.
func NewService(repo Repository, secret string, opts ...Option) *Service {
	s := &Service{
		repo:          repo,
		secret:        secret,
		issuer:        "simple-auth",
		defaultExpiry: DefaultExpiry,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Issue signs a token for the user and persists the backing record.
// Issuance is atomic from the caller's perspective: if the record cannot
// be persisted the token is not returned.
func (s *Service) Issue(ctx context.Context, userID uuid.UUID, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = s.defaultExpiry
	}

	nowUTC := s.now().UTC()
	expiresAt := nowUTC.Add(ttl)

	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(nowUTC),
		Issuer:    s.issuer,
		ID:        uuid.New().String(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(s.secret))
	if err != nil {
		slog.Error("Failed to sign token", "user_id", userID, "err", err)
		return "", time.Time{}, err
	}

	if _, err := s.repo.Create(ctx, userID, signed, expiresAt); err != nil {
		slog.Error("Failed to persist token record", "user_id", userID, "err", err)
		return "", time.Time{}, fmt.Errorf("failed to persist token record: %w", err)
	}

	return signed, expiresAt, nil
}

// Validate checks a token string and returns the embedded user id.
// The persisted record is consulted first: without one the signature is
// never parsed. A record whose signature fails or whose expiry has
// passed is deleted before the error is returned, so retries observe
// ErrTokenNotFound. Successful validation does not consume the record.
func (s *Service) Validate(ctx context.Context, tokenStr string) (uuid.UUID, error) {
	if _, err := s.repo.GetByToken(ctx, tokenStr); err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return uuid.Nil, ErrTokenNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to look up token record: %w", err)
	}

	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		s.deleteRecord(ctx, tokenStr)
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrTokenExpired
		}
		slog.Warn("Deleted token record with invalid signature", "err", err)
		return uuid.Nil, ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		slog.Warn("Deleted token record with malformed subject", "err", err)
		s.deleteRecord(ctx, tokenStr)
		return uuid.Nil, ErrTokenInvalid
	}

	return userID, nil
}

// Revoke deletes the record backing the token, invalidating it before
// its natural expiry. Revoking an unknown token is not an error.
func (s *Service) Revoke(ctx context.Context, tokenStr string) error {
	if err := s.repo.DeleteByToken(ctx, tokenStr); err != nil {
		slog.Error("Failed to revoke token", "err", err)
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// deleteRecord is best-effort cleanup on the validation path; a failed
// delete is retried lazily the next time the token is presented.
func (s *Service) deleteRecord(ctx context.Context, tokenStr string) {
	if err := s.repo.DeleteByToken(ctx, tokenStr); err != nil {
		slog.Error("Failed to delete token record", "err", err)
	}
}
