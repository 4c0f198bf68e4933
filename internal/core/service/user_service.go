package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tenantworks/saas-admin/internal/core/domain"
	"github.com/tenantworks/saas-admin/internal/core/ports"
)

// UserService implements user management within a tenant. The identity's
// tenant bounds every lookup; super_admin callers operate unscoped.
type UserService struct {
	users ports.UserRepository
	audit ports.AuditRecorder
}

func NewUserService(users ports.UserRepository, audit ports.AuditRecorder) *UserService {
	return &UserService{users: users, audit: audit}
}

// scope returns the tenant filter for the identity: empty (unscoped) for
// super_admin, the identity's own tenant otherwise.
func scope(ident domain.Identity) string {
	if ident.Role == domain.RoleSuperAdmin {
		return ""
	}
	return ident.TenantID
}

func (s *UserService) Create(ctx context.Context, ident domain.Identity, pathTenantID string, in ports.CreateUserInput) (*domain.User, error) {
	if ident.Role != domain.RoleSuperAdmin && pathTenantID != ident.TenantID {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	role := domain.RoleUser
	if in.Role != "" {
		parsed, ok := domain.ParseRole(in.Role)
		if !ok {
			return nil, domain.ErrInvalidCredentials
		}
		// Only a super_admin may mint another super_admin.
		if parsed == domain.RoleSuperAdmin && ident.Role != domain.RoleSuperAdmin {
			return nil, domain.ErrForbidden
		}
		role = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		TenantID:     pathTenantID,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditEvent{
		TenantID:   pathTenantID,
		ActorID:    ident.UserID,
		Action:     "user.create",
		Resource:   "user",
		ResourceID: user.ID,
		OccurredAt: now,
	})
	return user, nil
}

func (s *UserService) List(ctx context.Context, ident domain.Identity, pathTenantID string) ([]domain.User, error) {
	if ident.Role != domain.RoleSuperAdmin && pathTenantID != ident.TenantID {
		return nil, domain.ErrForbidden
	}
	return s.users.ListByTenant(ctx, pathTenantID)
}

func (s *UserService) Get(ctx context.Context, ident domain.Identity, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, scope(ident), id)
}

func (s *UserService) Update(ctx context.Context, ident domain.Identity, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if in.Role != "" {
		parsed, ok := domain.ParseRole(in.Role)
		if !ok {
			return nil, domain.ErrInvalidCredentials
		}
		// Role changes are an admin action; a plain user must not be able to
		// promote their own record.
		if !ident.Role.IsAdmin() {
			return nil, domain.ErrForbidden
		}
		if parsed == domain.RoleSuperAdmin && ident.Role != domain.RoleSuperAdmin {
			return nil, domain.ErrForbidden
		}
	}

	user, err := s.users.Update(ctx, scope(ident), id, in)
	if err != nil {
		return nil, err
	}

	s.record(domain.AuditEvent{
		TenantID:   user.TenantID,
		ActorID:    ident.UserID,
		Action:     "user.update",
		Resource:   "user",
		ResourceID: id,
		OccurredAt: time.Now().UTC(),
	})
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, ident domain.Identity, id string) error {
	if err := s.users.Delete(ctx, scope(ident), id); err != nil {
		return err
	}

	s.record(domain.AuditEvent{
		TenantID:   ident.TenantID,
		ActorID:    ident.UserID,
		Action:     "user.delete",
		Resource:   "user",
		ResourceID: id,
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (s *UserService) record(event domain.AuditEvent) {
	if s.audit != nil {
		s.audit.Record(event)
	}
}
