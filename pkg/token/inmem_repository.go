package token

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemRepository is an in-memory Repository implementation for tests
// and local development.
type InMemRepository struct {
	mu      sync.RWMutex
	records map[string]Record // keyed by token string
}

// NewInMemRepository creates an empty in-memory token repository.
func NewInMemRepository() *InMemRepository {
	return &InMemRepository{
		records: make(map[string]Record),
	}
}

func (r *InMemRepository) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := Record{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	r.records[token] = rec
	return &rec, nil
}

func (r *InMemRepository) GetByToken(ctx context.Context, token string) (*Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[token]
	if !ok {
		return nil, ErrTokenNotFound
	}
	return &rec, nil
}

func (r *InMemRepository) DeleteByToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, token)
	return nil
}

// Count returns the number of stored records, used by tests.
func (r *InMemRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
