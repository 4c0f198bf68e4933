package ports

import (
	"context"

	"github.com/tenantworks/saas-admin/internal/core/domain"
)

// TenantRepository persists tenants. Listing is unscoped: only super_admin
// paths reach it.
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	FindByID(ctx context.Context, id string) (*domain.Tenant, error)
	List(ctx context.Context, offset, limit int64) ([]domain.Tenant, error)
	Update(ctx context.Context, id, name, plan string) (*domain.Tenant, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// UpdateTenantInput carries partial tenant updates; empty fields keep their
// stored value (plan falls back to free, matching the legacy behaviour).
type UpdateTenantInput struct {
	Name             string
	SubscriptionPlan string
}

type TenantService interface {
	List(ctx context.Context, page PageRequest) ([]domain.Tenant, Pagination, error)
	// Get returns the tenant if it is the identity's own, or any tenant for
	// super_admin; otherwise ErrTenantNotFound.
	Get(ctx context.Context, ident domain.Identity, id string) (*domain.Tenant, error)
	Update(ctx context.Context, ident domain.Identity, id string, in UpdateTenantInput) (*domain.Tenant, error)
	Delete(ctx context.Context, ident domain.Identity, id string) error
}
