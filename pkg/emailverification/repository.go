package emailverification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OtpRecord represents a pending email-verification passcode.
type OtpRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Email     string
	Otp       string
	ExpiresAt time.Time
}

// Repository handles storage operations for OTP records and the
// email-verified flag they control.
type Repository interface {
	// ReplaceOtp removes any pending passcodes for the user and stores a
	// new one, so at most one passcode is live per user.
	ReplaceOtp(ctx context.Context, userID uuid.UUID, email, code string, expiresAt time.Time) (*OtpRecord, error)

	// GetOtpByUserAndCode returns the pending passcode matching (user, code),
	// or ErrInvalidOtp when there is none.
	GetOtpByUserAndCode(ctx context.Context, userID uuid.UUID, code string) (*OtpRecord, error)

	// DeleteOtp removes a passcode record.
	DeleteOtp(ctx context.Context, id uuid.UUID) error

	// ConsumeOtp deletes the passcode record and marks the user's email
	// verified as one atomic unit.
	ConsumeOtp(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
}

// PostgresRepository implements Repository over a pgx connection pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new OTP repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ReplaceOtp deletes prior pending passcodes for the user and inserts the
// new one in a single transaction.
func (r *PostgresRepository) ReplaceOtp(ctx context.Context, userID uuid.UUID, email, code string, expiresAt time.Time) (*OtpRecord, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM otp_records WHERE user_id = $1`, userID); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO otp_records (user_id, email, otp, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, email, otp, expires_at
	`

	var rec OtpRecord
	err = tx.QueryRow(ctx, query, userID, email, code, expiresAt).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Email,
		&rec.Otp,
		&rec.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &rec, nil
}

// GetOtpByUserAndCode retrieves the pending passcode matching (user, code).
func (r *PostgresRepository) GetOtpByUserAndCode(ctx context.Context, userID uuid.UUID, code string) (*OtpRecord, error) {
	query := `
		SELECT id, user_id, email, otp, expires_at
		FROM otp_records
		WHERE user_id = $1
		AND otp = $2
	`

	var rec OtpRecord
	err := r.db.QueryRow(ctx, query, userID, code).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.Email,
		&rec.Otp,
		&rec.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidOtp
		}
		return nil, err
	}

	return &rec, nil
}

// DeleteOtp removes a passcode record.
func (r *PostgresRepository) DeleteOtp(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM otp_records WHERE id = $1`, id)
	return err
}

// ConsumeOtp flips the user's email-verified flag and deletes the
// passcode record in one transaction, so a partial failure can never
// leave the flag set without the passcode consumed or vice versa.
func (r *PostgresRepository) ConsumeOtp(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE users SET email_verified = TRUE WHERE id = $1`, userID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM otp_records WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
