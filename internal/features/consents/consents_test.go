package consents_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matchpointhq/matchpoint-backend/internal/data/memory"
	"github.com/matchpointhq/matchpoint-backend/internal/data/repos"
	"github.com/matchpointhq/matchpoint-backend/internal/data/uow"
	"github.com/matchpointhq/matchpoint-backend/internal/domain"
	"github.com/matchpointhq/matchpoint-backend/internal/features/consents"
	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
)

func seedUser(t *testing.T, uowf uow.Factory) *domain.User {
	t.Helper()
	now := time.Now().UTC()
	user := &domain.User{
		ID:        uuid.New(),
		Email:     "alex@example.com",
		Password:  "irrelevant",
		CreatedAt: now,
		UpdatedAt: now,
	}
	u := uowf.New()
	defer u.Close()
	u.Users().Add(user)
	if _, err := u.SaveChanges(context.Background()); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestGrantConsent(t *testing.T) {
	store := memory.NewStore()
	uowf := memory.NewFactory(store)
	user := seedUser(t, uowf)

	h := consents.NewGrantConsentHandler(uowf, logger.NewNop())

	res, err := h.Handle(context.Background(), consents.GrantConsentCommand{
		UserID:      user.ID,
		ConsentType: "marketing_email",
		Metadata:    map[string]any{"source": "signup"},
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	granted, ok := res.Value()
	if !ok {
		t.Fatalf("expected consent dto, got %v", res.Errors())
	}
	if !granted.IsGranted || granted.RevokedAt != nil {
		t.Fatalf("expected granted consent, got %+v", granted)
	}

	missing, err := h.Handle(context.Background(), consents.GrantConsentCommand{
		UserID:      uuid.New(),
		ConsentType: "marketing_email",
	})
	if err != nil {
		t.Fatalf("handle missing user: %v", err)
	}
	if missing.IsSuccess() || missing.Message() != "User not found" {
		t.Fatalf("expected user-not-found failure, got %v", missing)
	}
}

func TestGrantConsentReusesRevokedRow(t *testing.T) {
	store := memory.NewStore()
	uowf := memory.NewFactory(store)
	user := seedUser(t, uowf)

	grant := consents.NewGrantConsentHandler(uowf, logger.NewNop())
	revoke := consents.NewRevokeConsentHandler(uowf, logger.NewNop())

	first, err := grant.Handle(context.Background(), consents.GrantConsentCommand{UserID: user.ID, ConsentType: "marketing_email"})
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	firstDTO, _ := first.Value()

	if _, err := revoke.Handle(context.Background(), consents.RevokeConsentCommand{UserID: user.ID, ConsentType: "marketing_email"}); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	second, err := grant.Handle(context.Background(), consents.GrantConsentCommand{UserID: user.ID, ConsentType: "marketing_email"})
	if err != nil {
		t.Fatalf("re-grant: %v", err)
	}
	secondDTO, ok := second.Value()
	if !ok {
		t.Fatalf("expected re-grant to succeed, got %v", second.Errors())
	}
	if secondDTO.ID != firstDTO.ID {
		t.Fatalf("re-grant must reuse the existing row")
	}
	if !secondDTO.IsGranted || secondDTO.RevokedAt != nil {
		t.Fatalf("re-grant must clear revocation, got %+v", secondDTO)
	}
}

func TestRevokeConsentWritesAuditEntryAtomically(t *testing.T) {
	store := memory.NewStore()
	uowf := memory.NewFactory(store)
	user := seedUser(t, uowf)

	grant := consents.NewGrantConsentHandler(uowf, logger.NewNop())
	revoke := consents.NewRevokeConsentHandler(uowf, logger.NewNop())

	if _, err := grant.Handle(context.Background(), consents.GrantConsentCommand{UserID: user.ID, ConsentType: "marketing_email"}); err != nil {
		t.Fatalf("grant: %v", err)
	}

	res, err := revoke.Handle(context.Background(), consents.RevokeConsentCommand{UserID: user.ID, ConsentType: "marketing_email"})
	if err != nil {
		t.Fatalf("revoke: %v", err)
	}
	revoked, ok := res.Value()
	if !ok {
		t.Fatalf("expected consent dto, got %v", res.Errors())
	}
	if revoked.IsGranted || revoked.RevokedAt == nil {
		t.Fatalf("expected revoked consent, got %+v", revoked)
	}

	u := uowf.New()
	defer u.Close()
	trail, err := u.AuditLogs().ListByTable(context.Background(), domain.UserConsent{}.TableName(), repos.Page{})
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(trail) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(trail))
	}
	if trail[0].RecordID != revoked.ID || trail[0].Action != "revoke" {
		t.Fatalf("audit entry mismatched: %+v", trail[0])
	}
}

func TestRevokeConsentRollsBackWhenAuditFails(t *testing.T) {
	store := memory.NewStore()
	uowf := memory.NewFactory(store)
	user := seedUser(t, uowf)

	grant := consents.NewGrantConsentHandler(uowf, logger.NewNop())
	revoke := consents.NewRevokeConsentHandler(uowf, logger.NewNop())

	if _, err := grant.Handle(context.Background(), consents.GrantConsentCommand{UserID: user.ID, ConsentType: "marketing_email"}); err != nil {
		t.Fatalf("grant: %v", err)
	}

	store.FailNext("insert audit log", context.DeadlineExceeded)
	if _, err := revoke.Handle(context.Background(), consents.RevokeConsentCommand{UserID: user.ID, ConsentType: "marketing_email"}); err == nil {
		t.Fatalf("expected audit fault to surface as error")
	}

	// The consent update must have rolled back with the audit write.
	u := uowf.New()
	defer u.Close()
	consent, err := u.Consents().GetByUserAndType(context.Background(), user.ID, "marketing_email")
	if err != nil {
		t.Fatalf("lookup consent: %v", err)
	}
	if consent == nil || !consent.IsGranted || consent.RevokedAt != nil {
		t.Fatalf("failed revocation must leave the consent granted, got %+v", consent)
	}
	trail, err := u.AuditLogs().ListByTable(context.Background(), domain.UserConsent{}.TableName(), repos.Page{})
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if len(trail) != 0 {
		t.Fatalf("failed revocation must not leave audit entries, got %d", len(trail))
	}
}

func TestRevokeConsentFailures(t *testing.T) {
	store := memory.NewStore()
	uowf := memory.NewFactory(store)
	user := seedUser(t, uowf)

	grant := consents.NewGrantConsentHandler(uowf, logger.NewNop())
	revoke := consents.NewRevokeConsentHandler(uowf, logger.NewNop())

	res, err := revoke.Handle(context.Background(), consents.RevokeConsentCommand{UserID: user.ID, ConsentType: "marketing_email"})
	if err != nil {
		t.Fatalf("revoke unknown: %v", err)
	}
	if res.IsSuccess() || res.Message() != "Consent not found" {
		t.Fatalf("expected consent-not-found, got %v", res)
	}

	if _, err := grant.Handle(context.Background(), consents.GrantConsentCommand{UserID: user.ID, ConsentType: "marketing_email"}); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if _, err := revoke.Handle(context.Background(), consents.RevokeConsentCommand{UserID: user.ID, ConsentType: "marketing_email"}); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	twice, err := revoke.Handle(context.Background(), consents.RevokeConsentCommand{UserID: user.ID, ConsentType: "marketing_email"})
	if err != nil {
		t.Fatalf("revoke twice: %v", err)
	}
	if twice.IsSuccess() || twice.Message() != "Consent already revoked" {
		t.Fatalf("expected already-revoked failure, got %v", twice)
	}
}

func TestListUserConsents(t *testing.T) {
	store := memory.NewStore()
	uowf := memory.NewFactory(store)
	user := seedUser(t, uowf)

	grant := consents.NewGrantConsentHandler(uowf, logger.NewNop())
	for _, ct := range []string{"marketing_email", "data_processing"} {
		if _, err := grant.Handle(context.Background(), consents.GrantConsentCommand{UserID: user.ID, ConsentType: ct}); err != nil {
			t.Fatalf("grant %s: %v", ct, err)
		}
	}

	h := consents.NewListUserConsentsHandler(uowf, logger.NewNop())
	res, err := h.Handle(context.Background(), consents.ListUserConsentsQuery{UserID: user.ID})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	rows, ok := res.Value()
	if !ok || len(rows) != 2 {
		t.Fatalf("expected 2 consents, got %v", res)
	}

	missing, err := h.Handle(context.Background(), consents.ListUserConsentsQuery{UserID: uuid.New()})
	if err != nil {
		t.Fatalf("handle missing: %v", err)
	}
	if missing.IsSuccess() || missing.Message() != "User not found" {
		t.Fatalf("expected user-not-found, got %v", missing)
	}
}
