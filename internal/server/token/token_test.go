package token

import (
	"errors"
	"testing"
	"time"

	"github.com/mkravcov/authgate/internal/common"
	"github.com/mkravcov/authgate/internal/server/config"
)

func newTestService(accessTTL, refreshTTL time.Duration) *Service {
	return NewService(&config.Config{
		AccessTokenSecret:            "access-secret",
		RefreshTokenSecret:           "refresh-secret",
		AccessTokenValidityDuration:  accessTTL,
		RefreshTokenValidityDuration: refreshTTL,
	})
}

func TestIssueAndVerifyAccess_Success(t *testing.T) {
	t.Parallel()

	s := newTestService(time.Hour, time.Hour)

	tok, err := s.IssueAccess("alice")
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}

	claims, err := s.VerifyAccess(tok)
	if err != nil {
		t.Fatalf("VerifyAccess error: %v", err)
	}
	if claims.Username != "alice" {
		t.Fatalf("username mismatch: got %q want %q", claims.Username, "alice")
	}
}

func TestIssueAndVerifyRefresh_Success(t *testing.T) {
	t.Parallel()

	s := newTestService(time.Hour, time.Hour)

	tok, err := s.IssueRefresh("bob")
	if err != nil {
		t.Fatalf("IssueRefresh error: %v", err)
	}

	claims, err := s.VerifyRefresh(tok)
	if err != nil {
		t.Fatalf("VerifyRefresh error: %v", err)
	}
	if claims.Username != "bob" {
		t.Fatalf("username mismatch: got %q want %q", claims.Username, "bob")
	}
}

func TestVerify_ContextsAreIndependent(t *testing.T) {
	t.Parallel()

	s := newTestService(time.Hour, time.Hour)

	access, err := s.IssueAccess("alice")
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}

	// An access token must not verify against the refresh secret.
	if _, err := s.VerifyRefresh(access); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestVerifyAccess_Expired(t *testing.T) {
	t.Parallel()

	s := newTestService(-1*time.Second, time.Hour)

	tok, err := s.IssueAccess("alice")
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}

	_, err = s.VerifyAccess(tok)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestVerifyRefresh_Expired(t *testing.T) {
	t.Parallel()

	s := newTestService(time.Hour, -1*time.Second)

	tok, err := s.IssueRefresh("alice")
	if err != nil {
		t.Fatalf("IssueRefresh error: %v", err)
	}

	_, err = s.VerifyRefresh(tok)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestVerifyAccess_MalformedString(t *testing.T) {
	t.Parallel()

	s := newTestService(time.Hour, time.Hour)

	if _, err := s.VerifyAccess("not.a.jwt"); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for malformed token, got %v", err)
	}
}

func TestDecodeUnverified_ExtractsClaimsFromExpiredToken(t *testing.T) {
	t.Parallel()

	s := newTestService(-1*time.Second, time.Hour)

	tok, err := s.IssueAccess("carol")
	if err != nil {
		t.Fatalf("IssueAccess error: %v", err)
	}

	// Decoding ignores both expiry and signature.
	claims, err := s.DecodeUnverified(tok)
	if err != nil {
		t.Fatalf("DecodeUnverified error: %v", err)
	}
	if claims.Username != "carol" {
		t.Fatalf("username mismatch: got %q want %q", claims.Username, "carol")
	}
}

func TestDecodeUnverified_Malformed(t *testing.T) {
	t.Parallel()

	s := newTestService(time.Hour, time.Hour)

	if _, err := s.DecodeUnverified("garbage"); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}
