package token

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestIssueAndValidate(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemRepository()
	svc := NewService(repo, testSecret)

	userID := uuid.New()

	tokenStr, expiresAt, err := svc.Issue(ctx, userID, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), expiresAt, 5*time.Second)

	resolved, err := svc.Validate(ctx, tokenStr)
	require.NoError(t, err)
	assert.Equal(t, userID, resolved)

	// Tokens are reusable until expiry or revocation.
	resolved, err = svc.Validate(ctx, tokenStr)
	require.NoError(t, err)
	assert.Equal(t, userID, resolved)
}

func TestIssueDefaultExpiry(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewInMemRepository(), testSecret)

	_, expiresAt, err := svc.Issue(ctx, uuid.New(), 0)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(DefaultExpiry), expiresAt, 5*time.Second)
}

func TestValidateUnknownToken(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewInMemRepository(), testSecret)

	// A well-signed token without a backing record must be rejected
	// without trusting the signature.
	other := NewService(NewInMemRepository(), testSecret)
	tokenStr, _, err := other.Issue(ctx, uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = svc.Validate(ctx, tokenStr)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestValidateExpired(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemRepository()

	now := time.Now().UTC()
	svc := NewService(repo, testSecret, WithNowFunc(func() time.Time { return now }))

	userID := uuid.New()
	tokenStr, _, err := svc.Issue(ctx, userID, time.Hour)
	require.NoError(t, err)

	// Advance the clock past the ttl.
	now = now.Add(2 * time.Hour)

	_, err = svc.Validate(ctx, tokenStr)
	assert.ErrorIs(t, err, ErrTokenExpired)

	// The expired record was deleted, so a retry sees no record at all.
	_, err = svc.Validate(ctx, tokenStr)
	assert.ErrorIs(t, err, ErrTokenNotFound)
	assert.Equal(t, 0, repo.Count())
}

func TestValidateTamperedSignature(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemRepository()
	svc := NewService(repo, testSecret)

	userID := uuid.New()

	// Sign with a different secret but store the record, simulating a
	// corrupt or tampered entry.
	rogue := NewService(repo, "another-secret")
	tokenStr, _, err := rogue.Issue(ctx, userID, time.Hour)
	require.NoError(t, err)

	_, err = svc.Validate(ctx, tokenStr)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	// Self-healing cleanup: the bad record is gone.
	_, err = svc.Validate(ctx, tokenStr)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewInMemRepository(), testSecret)

	userID := uuid.New()
	tokenStr, _, err := svc.Issue(ctx, userID, time.Hour)
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, tokenStr))

	_, err = svc.Validate(ctx, tokenStr)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	// Revoking again is idempotent.
	assert.NoError(t, svc.Revoke(ctx, tokenStr))
}

func TestIndependentSessions(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewInMemRepository(), testSecret)

	userID := uuid.New()
	first, _, err := svc.Issue(ctx, userID, time.Hour)
	require.NoError(t, err)
	second, _, err := svc.Issue(ctx, userID, time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	require.NoError(t, svc.Revoke(ctx, first))

	// Revoking one session leaves the other valid.
	resolved, err := svc.Validate(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, userID, resolved)

	_, err = svc.Validate(ctx, first)
	assert.ErrorIs(t, err, ErrTokenNotFound)
}

type failingRepository struct {
	*InMemRepository
}

func (r *failingRepository) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*Record, error) {
	return nil, assert.AnError
}

func TestIssueFailsWhenPersistenceFails(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&failingRepository{NewInMemRepository()}, testSecret)

	tokenStr, _, err := svc.Issue(ctx, uuid.New(), time.Hour)
	assert.Error(t, err)
	assert.Empty(t, tokenStr, "a token must not be returned when the record cannot be persisted")
}
