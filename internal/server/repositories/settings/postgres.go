// Package settings provides a PostgreSQL-backed repository for the
// per-user settings blob (a JSONB column keyed by user id).
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

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

// GetByUserID returns the settings blob for the user.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (models.Settings, error) {
	query := `
		SELECT settings
		FROM user_settings
		WHERE user_id = $1
	`
	var blob []byte
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	return models.Settings(blob), nil
}

// CreateDefault inserts the default settings blob for userID and returns it.
func (r *PostgresRepository) CreateDefault(ctx context.Context, userID string) (models.Settings, error) {
	query := `
		INSERT INTO user_settings (user_id, settings)
		VALUES ($1, $2)
	`
	blob := models.DefaultSettings()
	if _, err := r.db.ExecContext(ctx, query, userID, []byte(blob)); err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	return blob, nil
}
