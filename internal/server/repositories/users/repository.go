package users

import (
	"context"

	"github.com/mkravcov/authgate/internal/server/models"
)

// Repository is the credential store for user records.
type Repository interface {
	// Create inserts a new user. A username collision yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername returns the user with the given username or
	// common.ErrorNotFound.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByRefreshToken returns the user whose stored refresh token equals
	// token, or common.ErrorNotFound.
	GetByRefreshToken(ctx context.Context, token string) (*models.User, error)

	// UpdateRefreshToken overwrites the stored refresh token for the user.
	UpdateRefreshToken(ctx context.Context, userID string, token string) error

	// UpdatePasswordHash replaces the stored password hash for the user.
	UpdatePasswordHash(ctx context.Context, userID string, hash string) error
}
