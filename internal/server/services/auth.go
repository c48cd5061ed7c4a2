// Package services contains server-side business logic. This file implements
// AuthService, which orchestrates login, token-based identity lookup,
// refresh-token exchange, registration, and password change by composing
// the credential store, the token service, and the settings provider.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkravcov/authgate/internal/common"
	"github.com/mkravcov/authgate/internal/dbx"
	"github.com/mkravcov/authgate/internal/server/models"
	"github.com/mkravcov/authgate/internal/server/password"
	"github.com/mkravcov/authgate/internal/server/repositories/repomanager"
	"github.com/mkravcov/authgate/internal/server/token"
)

// Session is the result of a successful login or identity lookup.
type Session struct {
	AccessToken string
	Settings    models.Settings
	User        *models.User
}

// RegisterParams carries the registration inputs.
type RegisterParams struct {
	Username    string
	Email       string
	Password    string
	PhotoURL    string
	DisplayName string
}

// AuthService holds no per-request state; all state lives in the store.
type AuthService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *token.Service
	hasher      password.Hasher
}

// NewAuthService constructs an AuthService from its collaborators.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, tokens *token.Service, hasher password.Hasher) *AuthService {
	return &AuthService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		hasher:      hasher,
	}
}

// Authenticate checks the credentials, issues a fresh access/refresh token
// pair, overwrites the stored refresh token (invalidating any previous
// session for the user), and returns the session enriched with settings.
//
// Errors: common.ErrorNotFound (unknown username),
// common.ErrorInvalidCredentials (password mismatch).
func (s *AuthService) Authenticate(ctx context.Context, username string, plaintext string) (*Session, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error looking up user: %v", err)
	}

	if !s.hasher.Compare(user.PasswordHash, plaintext) {
		return nil, common.ErrorInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccess(user.Username)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refreshToken, err := s.tokens.IssueRefresh(user.Username)
	if err != nil {
		return nil, common.ErrorInternal
	}

	// The point of mutation: logging in invalidates any previous refresh
	// token for this user.
	if err := repo.UpdateRefreshToken(ctx, user.ID, refreshToken); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %v", err)
	}
	user.RefreshToken = refreshToken

	settings, err := s.settingsFor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &Session{AccessToken: accessToken, Settings: settings, User: user}, nil
}

// Identify resolves a bearer access token to a session. The token's
// signature and expiry are verified before its claims are trusted.
//
// Errors: common.ErrInvalidToken (bad signature, malformed, or expired),
// common.ErrorNotFound (token names a user that does not exist).
func (s *AuthService) Identify(ctx context.Context, accessToken string) (*Session, error) {
	claims, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error looking up user: %v", err)
	}

	settings, err := s.settingsFor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	// No new token is issued; the presented one is echoed back.
	return &Session{AccessToken: accessToken, Settings: settings, User: user}, nil
}

// Refresh exchanges a refresh token for a new access token. The presented
// token must both equal the stored value for some user and pass
// signature/expiry verification. The stored refresh token is not rotated.
//
// Errors: common.ErrInvalidToken (no stored match),
// common.ErrForbidden (cryptographic verification failed).
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByRefreshToken(ctx, refreshToken); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrInvalidToken
		}
		return "", fmt.Errorf("error looking up refresh token: %v", err)
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", common.ErrForbidden
	}

	accessToken, err := s.tokens.IssueAccess(claims.Username)
	if err != nil {
		return "", common.ErrorInternal
	}
	return accessToken, nil
}

// Register creates a new user with a generated id and a hashed password,
// and initializes the default settings blob, both in one transaction.
//
// Errors: common.ErrorAlreadyExists (username taken).
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	hash, err := s.hasher.Hash(params.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     params.Username,
		Email:        params.Email,
		DisplayName:  params.DisplayName,
		PhotoURL:     params.PhotoURL,
		PasswordHash: hash,
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		if _, err := s.repomanager.Settings(tx).CreateDefault(ctx, user.ID); err != nil {
			return fmt.Errorf("error initializing settings: %v", err)
		}
		return nil
	}); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, err
	}

	return user, nil
}

// ChangePassword verifies the old password and replaces the stored hash.
//
// Errors: common.ErrorInvalidRequest (missing old or new password),
// common.ErrorNotFound (unknown username),
// common.ErrorUnauthorized (old password mismatch).
func (s *AuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) (*models.User, error) {
	if oldPassword == "" || newPassword == "" {
		return nil, common.ErrorInvalidRequest
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error looking up user: %v", err)
	}

	if !s.hasher.Compare(user.PasswordHash, oldPassword) {
		return nil, common.ErrorUnauthorized
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return nil, common.ErrorInternal
	}

	if err := repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return nil, fmt.Errorf("error updating password: %v", err)
	}
	user.PasswordHash = hash

	return user, nil
}

// settingsFor fetches the settings blob for the user; a missing row yields
// the default blob without failing the call.
func (s *AuthService) settingsFor(ctx context.Context, userID string) (models.Settings, error) {
	blob, err := s.repomanager.Settings(s.db).GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("error fetching settings: %v", err)
	}
	return blob, nil
}
