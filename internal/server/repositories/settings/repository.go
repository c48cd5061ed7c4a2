package settings

import (
	"context"

	"github.com/mkravcov/authgate/internal/server/models"
)

// Repository stores the per-user settings blob. The auth flow only reads
// and initializes settings; it never interprets them.
type Repository interface {
	// GetByUserID returns the stored blob or common.ErrorNotFound.
	GetByUserID(ctx context.Context, userID string) (models.Settings, error)

	// CreateDefault persists the default blob for a new user and returns it.
	CreateDefault(ctx context.Context, userID string) (models.Settings, error)
}
