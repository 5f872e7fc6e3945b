package account

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// InMemRepository is an in-memory Repository implementation for tests
// and local development.
type InMemRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]User
}

// NewInMemRepository creates an empty in-memory user repository.
func NewInMemRepository() *InMemRepository {
	return &InMemRepository{
		users: make(map[uuid.UUID]User),
	}
}

func (r *InMemRepository) CreateUser(ctx context.Context, params CreateUserParams) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == params.Email {
			return nil, ErrEmailTaken
		}
	}

	user := User{
		ID:           uuid.New(),
		Email:        params.Email,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		PasswordHash: params.PasswordHash,
	}
	r.users[user.ID] = user
	return &user, nil
}

func (r *InMemRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *InMemRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	found := u
	return &found, nil
}

// SetEmailVerified flips the stored flag, used by tests.
func (r *InMemRepository) SetEmailVerified(id uuid.UUID, verified bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, ok := r.users[id]; ok {
		u.EmailVerified = verified
		r.users[id] = u
	}
}
