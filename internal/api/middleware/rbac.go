package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tenantworks/saas-admin/internal/api/metrics"
	"github.com/tenantworks/saas-admin/internal/core/domain"
)

// RequireRole enforces role-based access control with an explicit allow-list
// over the closed Role set. It must run after Auth: a missing Identity is a
// wiring bug and is rejected like any other unauthenticated request.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	// Metric label: the weakest role that would have been admitted.
	label := ""
	if len(allowedRoles) > 0 {
		label = string(allowedRoles[0])
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			if _, ok := allowed[ident.Role]; !ok {
				metrics.ForbiddenTotal.WithLabelValues(label).Inc()
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}

// RequireTenantAdmin gates tenant-administration endpoints: tenant_admin or
// super_admin.
func RequireTenantAdmin() echo.MiddlewareFunc {
	return RequireRole(domain.RoleTenantAdmin, domain.RoleSuperAdmin)
}

// RequireSuperAdmin gates cross-tenant endpoints: super_admin only.
func RequireSuperAdmin() echo.MiddlewareFunc {
	return RequireRole(domain.RoleSuperAdmin)
}
