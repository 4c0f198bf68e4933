package ports

import (
	"context"

	"github.com/tenantworks/saas-admin/internal/core/domain"
)

// UserRepository persists users. Methods taking tenantID treat the empty
// string as "unscoped" — reserved for super_admin callers.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, tenantID, id string) (*domain.User, error)
	ListByTenant(ctx context.Context, tenantID string) ([]domain.User, error)
	Update(ctx context.Context, tenantID, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, tenantID, id string) error
	Count(ctx context.Context) (int64, error)
}

// CreateUserInput carries the fields for adding a user to a tenant.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput carries partial user updates; empty fields are left as-is.
type UpdateUserInput struct {
	Name  string
	Email string
	Role  string
}

type UserService interface {
	// Create adds a user under pathTenantID. Non-super_admin identities may
	// only target their own tenant.
	Create(ctx context.Context, ident domain.Identity, pathTenantID string, in CreateUserInput) (*domain.User, error)
	List(ctx context.Context, ident domain.Identity, pathTenantID string) ([]domain.User, error)
	Get(ctx context.Context, ident domain.Identity, id string) (*domain.User, error)
	Update(ctx context.Context, ident domain.Identity, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, ident domain.Identity, id string) error
}
