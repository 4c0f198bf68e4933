package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tenantworks/saas-admin/internal/core/domain"
)

func contextWithRole(e *echo.Echo, role domain.Role) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(identityKey, domain.Identity{UserID: "u1", TenantID: "t1", Role: role})
	return c, rec
}

func TestRequireTenantAdmin_RoleMatrix(t *testing.T) {
	cases := []struct {
		role  domain.Role
		admit bool
	}{
		{domain.RoleUser, false},
		{domain.RoleTenantAdmin, true},
		{domain.RoleSuperAdmin, true},
	}

	for _, tc := range cases {
		e := echo.New()
		c, rec := contextWithRole(e, tc.role)

		called := false
		handler := RequireTenantAdmin()(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})

		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}

		if called != tc.admit {
			t.Fatalf("role %s: called = %v, want %v", tc.role, called, tc.admit)
		}
		if !tc.admit && rec.Code != http.StatusForbidden {
			t.Fatalf("role %s: expected 403, got %d", tc.role, rec.Code)
		}
	}
}

func TestRequireSuperAdmin_ExcludesTenantAdmin(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleUser, domain.RoleTenantAdmin} {
		e := echo.New()
		c, rec := contextWithRole(e, role)

		handler := RequireSuperAdmin()(func(c echo.Context) error {
			t.Fatalf("role %s should not reach handler", role)
			return nil
		})

		if err := handler(c); err != nil {
			e.HTTPErrorHandler(err, c)
		}
		if rec.Code != http.StatusForbidden {
			t.Fatalf("role %s: expected 403, got %d", role, rec.Code)
		}
	}

	e := echo.New()
	c, rec := contextWithRole(e, domain.RoleSuperAdmin)
	handler := RequireSuperAdmin()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("super_admin: expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_MissingIdentity(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireTenantAdmin()(func(c echo.Context) error {
		t.Fatalf("should not reach handler without identity")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
