// Package common contains shared sentinel errors used across authgate
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// service specific errors (generic/internal flow control)
	ErrorInternal       = errors.New("internal error")
	ErrorUnauthorized   = errors.New("unauthorized")
	ErrorInvalidRequest = errors.New("invalid request")

	// credential errors
	ErrorInvalidCredentials = errors.New("invalid credentials")

	// auth errors (invalid or malformed token)
	ErrInvalidToken = errors.New("invalid token")

	// token lifecycle errors
	ErrTokenExpired = errors.New("token expired")

	// refresh verification failed; the caller must re-authenticate
	ErrForbidden = errors.New("forbidden")
)
