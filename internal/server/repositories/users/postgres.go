// Package users provides a PostgreSQL-backed repository for the user
// records that make up the credential store.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mkravcov/authgate/internal/common"
	"github.com/mkravcov/authgate/internal/dbx"
	"github.com/mkravcov/authgate/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, username, email, display_name, photo_url, password_hash, COALESCE(refresh_token, ''), created_at`

// Create inserts a new user record. Unique-constraint violations on
// username surface as common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (id, username, email, display_name, photo_url, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Username, user.Email, user.DisplayName, user.PhotoURL, user.PasswordHash).
		Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return user, nil
}

// GetByUsername returns the user with the given username.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

// GetByRefreshToken returns the user whose stored refresh token equals token.
// If no user matches, it returns common.ErrorNotFound.
func (r *PostgresRepository) GetByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE refresh_token = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, token))
}

// UpdateRefreshToken overwrites the stored refresh token. The write is a
// single-row update; concurrent logins for the same user resolve by last
// writer wins.
func (r *PostgresRepository) UpdateRefreshToken(ctx context.Context, userID string, token string) error {
	query := `
		UPDATE users
		SET refresh_token = $2
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, userID, token); err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	return nil
}

// UpdatePasswordHash replaces the stored password hash.
func (r *PostgresRepository) UpdatePasswordHash(ctx context.Context, userID string, hash string) error {
	query := `
		UPDATE users
		SET password_hash = $2
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, userID, hash); err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	return nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.DisplayName,
		&user.PhotoURL, &user.PasswordHash, &user.RefreshToken, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	return user, nil
}
