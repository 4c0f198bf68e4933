package ports

import (
	"context"

	"github.com/tenantworks/saas-admin/internal/core/domain"
)

// RegisterTenantInput carries the fields needed to provision a new tenant and
// its first administrator in one step.
type RegisterTenantInput struct {
	TenantName string
	AdminName  string
	AdminEmail string
	Password   string
}

type AuthService interface {
	// RegisterTenant creates a tenant on the free plan plus its owning
	// super_admin user and returns a fresh credential for that user.
	RegisterTenant(ctx context.Context, in RegisterTenantInput) (string, *domain.Tenant, error)
	// Login verifies email+password and returns a credential and the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// CurrentUser resolves the identity's user record.
	CurrentUser(ctx context.Context, ident domain.Identity) (*domain.User, error)
}
