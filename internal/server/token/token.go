// Package token implements the signed-token service: issuing and verifying
// HS256 JWTs for the two signing contexts (access, refresh), each with its
// own secret and lifetime.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mkravcov/authgate/internal/common"
	"github.com/mkravcov/authgate/internal/server/config"
)

// Claims is the payload embedded in every token issued by the service:
// the standard registered claims plus the username.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Service issues and verifies tokens. It is pure logic with no I/O.
type Service struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenValidityDuration,
		refreshTTL:    cfg.RefreshTokenValidityDuration,
	}
}

// IssueAccess returns a signed access token embedding username, expiring
// at now + access TTL.
func (s *Service) IssueAccess(username string) (string, error) {
	return sign(username, s.accessSecret, s.accessTTL)
}

// IssueRefresh returns a signed refresh token embedding username, expiring
// at now + refresh TTL.
func (s *Service) IssueRefresh(username string) (string, error) {
	return sign(username, s.refreshSecret, s.refreshTTL)
}

// VerifyAccess validates signature and expiry against the access context
// and returns the embedded claims.
func (s *Service) VerifyAccess(tokenString string) (*Claims, error) {
	return verify(tokenString, s.accessSecret)
}

// VerifyRefresh validates signature and expiry against the refresh context
// and returns the embedded claims.
func (s *Service) VerifyRefresh(tokenString string) (*Claims, error) {
	return verify(tokenString, s.refreshSecret)
}

// DecodeUnverified extracts claims WITHOUT checking the signature or expiry.
// The result proves nothing about authenticity and must never gate an
// auth decision; it exists for diagnostics (e.g. locating which user a
// malformed request was aimed at).
func (s *Service) DecodeUnverified(tokenString string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

func sign(username string, secret []byte, ttl time.Duration) (string, error) {
	// The jti makes every issued token unique even within one clock second,
	// so overwriting the stored refresh token always invalidates the
	// previous one.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        uuid.NewString(),
		},
		Username: username,
	})

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func verify(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
