package emailverification

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemRepository is an in-memory Repository implementation for tests
// and local development. It tracks the email-verified flag itself so
// ConsumeOtp can be exercised without a database.
type InMemRepository struct {
	mu       sync.Mutex
	otps     map[uuid.UUID]OtpRecord
	verified map[uuid.UUID]bool
}

// NewInMemRepository creates an empty in-memory OTP repository.
func NewInMemRepository() *InMemRepository {
	return &InMemRepository{
		otps:     make(map[uuid.UUID]OtpRecord),
		verified: make(map[uuid.UUID]bool),
	}
}

func (r *InMemRepository) ReplaceOtp(ctx context.Context, userID uuid.UUID, email, code string, expiresAt time.Time) (*OtpRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, rec := range r.otps {
		if rec.UserID == userID {
			delete(r.otps, id)
		}
	}

	rec := OtpRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Email:     email,
		Otp:       code,
		ExpiresAt: expiresAt,
	}
	r.otps[rec.ID] = rec
	return &rec, nil
}

func (r *InMemRepository) GetOtpByUserAndCode(ctx context.Context, userID uuid.UUID, code string) (*OtpRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.otps {
		if rec.UserID == userID && rec.Otp == code {
			found := rec
			return &found, nil
		}
	}
	return nil, ErrInvalidOtp
}

func (r *InMemRepository) DeleteOtp(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.otps, id)
	return nil
}

func (r *InMemRepository) ConsumeOtp(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.otps, id)
	r.verified[userID] = true
	return nil
}

// EmailVerified reports whether ConsumeOtp has run for the user, used by
// tests.
func (r *InMemRepository) EmailVerified(userID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.verified[userID]
}

// PendingCount returns the number of stored passcodes, used by tests.
func (r *InMemRepository) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.otps)
}
