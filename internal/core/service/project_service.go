package service

import (
	"context"
	"time"

	"github.com/tenantworks/saas-admin/internal/core/domain"
	"github.com/tenantworks/saas-admin/internal/core/ports"
)

// ProjectService implements project CRUD. Projects are tenant workspace data:
// every operation is pinned to the identity's tenant, super_admin included.
type ProjectService struct {
	projects ports.ProjectRepository
	audit    ports.AuditRecorder
}

func NewProjectService(projects ports.ProjectRepository, audit ports.AuditRecorder) *ProjectService {
	return &ProjectService{projects: projects, audit: audit}
}

func (s *ProjectService) Create(ctx context.Context, ident domain.Identity, in ports.CreateProjectInput) (*domain.Project, error) {
	now := time.Now().UTC()
	project, err := s.projects.Create(ctx, &domain.Project{
		TenantID:    ident.TenantID,
		Name:        in.Name,
		Description: in.Description,
		CreatedBy:   ident.UserID,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditEvent{
		TenantID:   ident.TenantID,
		ActorID:    ident.UserID,
		Action:     "project.create",
		Resource:   "project",
		ResourceID: project.ID,
		OccurredAt: now,
	})
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, ident domain.Identity, page ports.PageRequest) ([]domain.Project, ports.Pagination, error) {
	page = page.Normalize()

	projects, err := s.projects.ListByTenant(ctx, ident.TenantID, page.Offset(), page.Limit)
	if err != nil {
		return nil, ports.Pagination{}, err
	}
	total, err := s.projects.CountByTenant(ctx, ident.TenantID)
	if err != nil {
		return nil, ports.Pagination{}, err
	}
	return projects, ports.NewPagination(page, total), nil
}

func (s *ProjectService) Delete(ctx context.Context, ident domain.Identity, id string) error {
	if err := s.projects.Delete(ctx, ident.TenantID, id); err != nil {
		return err
	}

	s.record(domain.AuditEvent{
		TenantID:   ident.TenantID,
		ActorID:    ident.UserID,
		Action:     "project.delete",
		Resource:   "project",
		ResourceID: id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (s *ProjectService) record(event domain.AuditEvent) {
	if s.audit != nil {
		s.audit.Record(event)
	}
}
