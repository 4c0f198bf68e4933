package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tenantworks/saas-admin/internal/api/middleware"
	"github.com/tenantworks/saas-admin/internal/core/domain"
)

// ctxIdentity extracts the Identity injected by the Auth middleware. Handlers
// behind the auth gate always find one; its absence means the route was wired
// without the gate, which is rejected as unauthenticated rather than served.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ident, nil
}
