package service

import (
	"context"
	"time"

	"github.com/tenantworks/saas-admin/internal/core/domain"
	"github.com/tenantworks/saas-admin/internal/core/ports"
)

// TenantService implements tenant management. List/Update/Delete sit behind
// the super_admin gate; Get additionally scopes non-super_admin callers to
// their own tenant.
type TenantService struct {
	tenants ports.TenantRepository
	audit   ports.AuditRecorder
}

func NewTenantService(tenants ports.TenantRepository, audit ports.AuditRecorder) *TenantService {
	return &TenantService{tenants: tenants, audit: audit}
}

func (s *TenantService) List(ctx context.Context, page ports.PageRequest) ([]domain.Tenant, ports.Pagination, error) {
	page = page.Normalize()

	tenants, err := s.tenants.List(ctx, page.Offset(), page.Limit)
	if err != nil {
		return nil, ports.Pagination{}, err
	}
	total, err := s.tenants.Count(ctx)
	if err != nil {
		return nil, ports.Pagination{}, err
	}
	return tenants, ports.NewPagination(page, total), nil
}

func (s *TenantService) Get(ctx context.Context, ident domain.Identity, id string) (*domain.Tenant, error) {
	// A tenant's existence is itself cross-tenant information: answer 404,
	// not 403, when the id is not the caller's own.
	if ident.Role != domain.RoleSuperAdmin && ident.TenantID != id {
		return nil, domain.ErrTenantNotFound
	}
	return s.tenants.FindByID(ctx, id)
}

func (s *TenantService) Update(ctx context.Context, ident domain.Identity, id string, in ports.UpdateTenantInput) (*domain.Tenant, error) {
	if in.SubscriptionPlan == "" {
		in.SubscriptionPlan = domain.PlanFree
	}

	tenant, err := s.tenants.Update(ctx, id, in.Name, in.SubscriptionPlan)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditEvent{
		TenantID:   id,
		ActorID:    ident.UserID,
		Action:     "tenant.update",
		Resource:   "tenant",
		ResourceID: id,
		OccurredAt: time.Now().UTC(),
	})
	return tenant, nil
}

func (s *TenantService) Delete(ctx context.Context, ident domain.Identity, id string) error {
	if err := s.tenants.Delete(ctx, id); err != nil {
		return err
	}

	s.record(domain.AuditEvent{
		TenantID:   id,
		ActorID:    ident.UserID,
		Action:     "tenant.delete",
		Resource:   "tenant",
		ResourceID: id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (s *TenantService) record(event domain.AuditEvent) {
	if s.audit != nil {
		s.audit.Record(event)
	}
}
