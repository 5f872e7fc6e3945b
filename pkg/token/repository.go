package token

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Record is the persisted row backing an issued token. The record is the
// authoritative revocation point: a token whose record is absent is never
// accepted, regardless of its signature.
type Record struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
}

// Repository handles storage operations for token records.
type Repository interface {
	Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*Record, error)
	GetByToken(ctx context.Context, token string) (*Record, error)
	DeleteByToken(ctx context.Context, token string) error
}

// PostgresRepository implements Repository over a pgx connection pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new token repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists a token record for the given user.
func (r *PostgresRepository) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) (*Record, error) {
	query := `
		INSERT INTO tokens (user_id, token, exp)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, token, exp
	`

	var rec Record
	err := r.db.QueryRow(ctx, query, userID, token, expiresAt).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Token,
		&rec.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

// GetByToken retrieves the record matching the token string.
func (r *PostgresRepository) GetByToken(ctx context.Context, token string) (*Record, error) {
	query := `
		SELECT id, user_id, token, exp
		FROM tokens
		WHERE token = $1
	`

	var rec Record
	err := r.db.QueryRow(ctx, query, token).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Token,
		&rec.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	return &rec, nil
}

// DeleteByToken deletes the record matching the token string. Absence is
// not an error.
func (r *PostgresRepository) DeleteByToken(ctx context.Context, token string) error {
	query := `
		DELETE FROM tokens
		WHERE token = $1
	`

	_, err := r.db.Exec(ctx, query, token)
	return err
}
