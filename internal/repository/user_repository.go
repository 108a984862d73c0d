package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ourystd/kaherecode/internal/domain"
)

const userColumns = `id, email, username, full_name, password_hash, role,
	is_confirmed, confirmation_token, reset_token, created_at, updated_at`

// PostgresUserRepository implements UserRepository using PostgreSQL.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository creates a new PostgresUserRepository.
func NewPostgresUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// Create persists a new user, mapping unique violations to domain errors.
func (r *PostgresUserRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, username, full_name, password_hash, role,
			is_confirmed, confirmation_token, reset_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, u.ID, u.Email, u.Username, u.FullName, u.PasswordHash, u.Role,
		u.IsConfirmed, u.ConfirmationToken, u.ResetToken, u.CreatedAt, u.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch {
			case strings.Contains(pgErr.ConstraintName, "email"):
				return domain.ErrEmailTaken
			case strings.Contains(pgErr.ConstraintName, "username"):
				return domain.ErrUsernameTaken
			}
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// Update persists user field changes.
func (r *PostgresUserRepository) Update(ctx context.Context, u *domain.User) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $2, username = $3, full_name = $4, password_hash = $5,
			role = $6, is_confirmed = $7, confirmation_token = $8,
			reset_token = $9, updated_at = $10
		WHERE id = $1
	`, u.ID, u.Email, u.Username, u.FullName, u.PasswordHash, u.Role,
		u.IsConfirmed, u.ConfirmationToken, u.ResetToken, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID returns the user with the given id, or nil when unknown.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns), id)
}

// GetByEmail returns the user with the given email, or nil when unknown.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns), email)
}

// GetByConfirmationToken returns the user holding the confirmation token,
// or nil when unknown.
func (r *PostgresUserRepository) GetByConfirmationToken(ctx context.Context, token string) (*domain.User, error) {
	return r.getOne(ctx, fmt.Sprintf(`SELECT %s FROM users WHERE confirmation_token = $1`, userColumns), token)
}

// GetByResetToken returns the user holding the password reset token, or nil
// when unknown.
func (r *PostgresUserRepository) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return r.getOne(ctx, fmt.Sprintf(`SELECT %s FROM users WHERE reset_token = $1`, userColumns), token)
}

func (r *PostgresUserRepository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Email, &u.Username, &u.FullName, &u.PasswordHash, &u.Role,
		&u.IsConfirmed, &u.ConfirmationToken, &u.ResetToken, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
