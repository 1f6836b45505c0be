package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestSessionRevoke(t *testing.T) {
	now := time.Now().UTC()
	s := &Session{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Token:     "tok",
		ExpiresAt: now.Add(time.Hour),
	}
	if !s.IsActive(now) {
		t.Fatalf("fresh session should be active")
	}
	if err := s.Revoke(now); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if s.RevokedAt == nil || !s.RevokedAt.Equal(now) {
		t.Fatalf("RevokedAt not set")
	}
	if s.IsActive(now) {
		t.Fatalf("revoked session must be inactive")
	}
	if err := s.Revoke(now); !errors.Is(err, ErrSessionRevoked) {
		t.Fatalf("double revoke: got %v, want ErrSessionRevoked", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	now := time.Now().UTC()
	s := &Session{Token: "tok", ExpiresAt: now.Add(-time.Minute)}
	if s.IsActive(now) {
		t.Fatalf("expired session must be inactive")
	}
}

func TestConsentRevoke(t *testing.T) {
	now := time.Now().UTC()
	c := &UserConsent{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		ConsentType: "marketing",
	}
	c.Grant(now)
	if !c.IsGranted || c.RevokedAt != nil {
		t.Fatalf("Grant: IsGranted=%v RevokedAt=%v", c.IsGranted, c.RevokedAt)
	}

	if err := c.Revoke(now); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if c.IsGranted || c.RevokedAt == nil {
		t.Fatalf("revoked consent must have IsGranted=false and RevokedAt set")
	}
	if err := c.Revoke(now); !errors.Is(err, ErrConsentRevoked) {
		t.Fatalf("double revoke: got %v, want ErrConsentRevoked", err)
	}

	c.Grant(now.Add(time.Hour))
	if !c.IsGranted || c.RevokedAt != nil {
		t.Fatalf("re-grant must clear revocation")
	}
}

func TestUserEmailVerification(t *testing.T) {
	u := &User{Email: "a@b.c"}
	if u.IsEmailVerified() {
		t.Fatalf("new user must be unverified")
	}
	first := time.Now().UTC()
	u.VerifyEmail(first)
	u.VerifyEmail(first.Add(time.Hour))
	if u.EmailVerifiedAt == nil || !u.EmailVerifiedAt.Equal(first) {
		t.Fatalf("second verification must not move the timestamp")
	}
}

func TestUserIsComplete(t *testing.T) {
	u := &User{Email: "a@b.c"}
	if u.IsComplete() {
		t.Fatalf("user without names is incomplete")
	}
	u.FirstName = "Ada"
	u.LastName = "Lovelace"
	if !u.IsComplete() {
		t.Fatalf("user with both names is complete")
	}
}

func TestNewAuditLog(t *testing.T) {
	actor := uuid.New()
	record := uuid.New()
	entry, err := NewAuditLog("user_consent", record, "revoke", actor, map[string]any{"consent_type": "marketing"})
	if err != nil {
		t.Fatalf("NewAuditLog: %v", err)
	}
	if entry.Table != "user_consent" || entry.RecordID != record || entry.PerformedBy != actor {
		t.Fatalf("audit fields wrong: %+v", entry)
	}
	if len(entry.Details) == 0 {
		t.Fatalf("details must be serialized")
	}
}
