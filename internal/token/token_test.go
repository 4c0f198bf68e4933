package token

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tenantworks/saas-admin/internal/core/domain"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	raw, err := iss.Issue("u1", "t1", "alice@example.com", domain.RoleTenantAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := iss.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "u1" || claims.TenantID != "t1" {
		t.Fatalf("unexpected identity: %+v", claims)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}
	if claims.Role != domain.RoleTenantAdmin {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	raw, err := NewIssuer("secret", time.Hour).Issue("u1", "t1", "a@b.c", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewIssuer("other", time.Hour).Verify(raw); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestVerify_TamperedPayload(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	raw, err := iss.Issue("u1", "t1", "a@b.c", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Flip one byte of the payload segment; the signature no longer matches.
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(parts))
	}
	payload := []byte(parts[1])
	if payload[5] == 'A' {
		payload[5] = 'B'
	} else {
		payload[5] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := iss.Verify(tampered); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	iss := NewIssuer("secret", -time.Second)

	raw, err := iss.Issue("u1", "t1", "a@b.c", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := iss.Verify(raw); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestVerify_ExpiresAtBoundary(t *testing.T) {
	now := time.Now()
	clock := now
	iss := NewIssuer("secret", time.Minute, WithClock(func() time.Time { return clock }))

	raw, err := iss.Issue("u1", "t1", "a@b.c", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Still valid just inside the TTL.
	clock = now.Add(59 * time.Second)
	if _, err := iss.Verify(raw); err != nil {
		t.Fatalf("expected valid before expiry, got %v", err)
	}

	// Invalid once the clock passes expires_at.
	clock = now.Add(61 * time.Second)
	if _, err := iss.Verify(raw); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	for _, raw := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := iss.Verify(raw); !errors.Is(err, ErrMalformed) {
			t.Fatalf("input %q: expected ErrMalformed, got %v", raw, err)
		}
	}
}

func TestVerify_UnknownRoleRejected(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	raw, err := iss.Issue("u1", "t1", "a@b.c", domain.Role("owner"))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := iss.Verify(raw); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed for role outside the closed set, got %v", err)
	}
}
