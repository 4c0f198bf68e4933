package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tenantworks/saas-admin/internal/core/domain"
	"github.com/tenantworks/saas-admin/internal/core/ports"
)

type TenantHandler struct {
	tenantService ports.TenantService
}

func NewTenantHandler(tenantService ports.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

type updateTenantRequest struct {
	Name             string `json:"name"`
	SubscriptionPlan string `json:"subscription_plan" validate:"omitempty,oneof=free pro enterprise"`
}

type listResponse[T any] struct {
	Data       []T              `json:"data"`
	Pagination ports.Pagination `json:"pagination"`
}

// pageFromQuery reads ?page and ?limit, leaving normalisation to the service.
func pageFromQuery(c echo.Context) ports.PageRequest {
	page, _ := strconv.ParseInt(c.QueryParam("page"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	return ports.PageRequest{Page: page, Limit: limit}
}

// List returns all tenants, paginated. Super_admin only.
//
// @Summary      List tenants
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"
// @Param        limit  query     int  false  "Page size"
// @Success      200    {object}  listResponse[domain.Tenant]
// @Failure      403    {object}  map[string]string
// @Router       /tenants [get]
func (h *TenantHandler) List(c echo.Context) error {
	tenants, page, err := h.tenantService.List(c.Request().Context(), pageFromQuery(c))
	if err != nil {
		return err
	}
	if tenants == nil {
		tenants = []domain.Tenant{}
	}
	return c.JSON(http.StatusOK, listResponse[domain.Tenant]{Data: tenants, Pagination: page})
}

// Get returns a single tenant: the caller's own, or any for super_admin.
//
// @Summary      Get a tenant
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Tenant id"
// @Success      200  {object}  domain.Tenant
// @Failure      404  {object}  map[string]string
// @Router       /tenants/{id} [get]
func (h *TenantHandler) Get(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tenant, err := h.tenantService.Get(c.Request().Context(), ident, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tenant)
}

// Update changes a tenant's name or plan. Super_admin only.
//
// @Summary      Update a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Tenant id"
// @Param        body  body      updateTenantRequest  true  "Fields to update"
// @Success      200   {object}  domain.Tenant
// @Failure      404   {object}  map[string]string
// @Router       /tenants/{id} [put]
func (h *TenantHandler) Update(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateTenantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	tenant, err := h.tenantService.Update(c.Request().Context(), ident, c.Param("id"), ports.UpdateTenantInput{
		Name:             req.Name,
		SubscriptionPlan: req.SubscriptionPlan,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tenant)
}

// Delete removes a tenant. Super_admin only.
//
// @Summary      Delete a tenant
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Tenant id"
// @Success      200  {object}  map[string]string
// @Router       /tenants/{id} [delete]
func (h *TenantHandler) Delete(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.tenantService.Delete(c.Request().Context(), ident, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Tenant deleted successfully"})
}
