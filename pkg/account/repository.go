package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// User represents an account holder.
type User struct {
	ID            uuid.UUID
	Email         string
	FirstName     string
	LastName      string
	PasswordHash  string
	EmailVerified bool
}

// CreateUserParams holds the fields persisted for a new user.
type CreateUserParams struct {
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
}

// Repository handles storage operations for users.
type Repository interface {
	CreateUser(ctx context.Context, params CreateUserParams) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// PostgresRepository implements Repository over a pgx connection pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const uniqueViolationCode = "23505"

// CreateUser inserts a new user. A unique-constraint violation on the
// email column maps to ErrEmailTaken.
func (r *PostgresRepository) CreateUser(ctx context.Context, params CreateUserParams) (*User, error) {
	query := `
		INSERT INTO users (email, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, first_name, last_name, password_hash, email_verified
	`

	user, err := scanUser(r.db.QueryRow(ctx, query,
		params.Email, params.FirstName, params.LastName, params.PasswordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// GetUserByEmail retrieves a user by exact email match.
func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, email, first_name, last_name, password_hash, email_verified
		FROM users
		WHERE email = $1
	`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// GetUserByID retrieves a user by id.
func (r *PostgresRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `
		SELECT id, email, first_name, last_name, password_hash, email_verified
		FROM users
		WHERE id = $1
	`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var user User
	var firstName, lastName *string
	err := row.Scan(
		&user.ID,
		&user.Email,
		&firstName,
		&lastName,
		&user.PasswordHash,
		&user.EmailVerified,
	)
	if err != nil {
		return nil, err
	}

	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}

	return &user, nil
}
