package ports

import (
	"context"

	"github.com/tenantworks/saas-admin/internal/core/domain"
)

// ProjectRepository persists projects. Every method is tenant-scoped.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, tenantID, id string) (*domain.Project, error)
	ListByTenant(ctx context.Context, tenantID string, offset, limit int64) ([]domain.Project, error)
	CountByTenant(ctx context.Context, tenantID string) (int64, error)
	Delete(ctx context.Context, tenantID, id string) error
	Count(ctx context.Context) (int64, error)
}

// CreateProjectInput carries the fields for a new project.
type CreateProjectInput struct {
	Name        string
	Description string
}

type ProjectService interface {
	Create(ctx context.Context, ident domain.Identity, in CreateProjectInput) (*domain.Project, error)
	List(ctx context.Context, ident domain.Identity, page PageRequest) ([]domain.Project, Pagination, error)
	Delete(ctx context.Context, ident domain.Identity, id string) error
}
