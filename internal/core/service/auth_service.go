package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tenantworks/saas-admin/internal/core/domain"
	"github.com/tenantworks/saas-admin/internal/core/ports"
	"github.com/tenantworks/saas-admin/internal/token"
)

// AuthService implements tenant registration, login, and identity lookup.
type AuthService struct {
	tenants ports.TenantRepository
	users   ports.UserRepository
	issuer  *token.Issuer
	audit   ports.AuditRecorder
}

func NewAuthService(tenants ports.TenantRepository, users ports.UserRepository, issuer *token.Issuer, audit ports.AuditRecorder) *AuthService {
	return &AuthService{tenants: tenants, users: users, issuer: issuer, audit: audit}
}

func (s *AuthService) RegisterTenant(ctx context.Context, in ports.RegisterTenantInput) (string, *domain.Tenant, error) {
	if in.TenantName == "" || in.AdminName == "" || in.AdminEmail == "" || in.Password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	tenant, err := s.tenants.Create(ctx, &domain.Tenant{
		Name:             in.TenantName,
		SubscriptionPlan: domain.PlanFree,
		CreatedAt:        now,
	})
	if err != nil {
		return "", nil, err
	}

	// The first user of a tenant owns it outright.
	admin, err := s.users.Create(ctx, &domain.User{
		TenantID:     tenant.ID,
		Name:         in.AdminName,
		Email:        in.AdminEmail,
		PasswordHash: string(hash),
		Role:         domain.RoleSuperAdmin,
		CreatedAt:    now,
	})
	if err != nil {
		// Best-effort: the registration is two inserts without a transaction,
		// so remove the tenant rather than leave an ownerless row behind.
		_ = s.tenants.Delete(ctx, tenant.ID)
		return "", nil, err
	}

	signed, err := s.issuer.Issue(admin.ID, tenant.ID, admin.Email, admin.Role)
	if err != nil {
		return "", nil, err
	}

	s.record(domain.AuditEvent{
		TenantID:   tenant.ID,
		ActorID:    admin.ID,
		Action:     "tenant.register",
		Resource:   "tenant",
		ResourceID: tenant.ID,
		OccurredAt: now,
	})

	return signed, tenant, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Unknown email and wrong password are indistinguishable to the caller.
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.issuer.Issue(user.ID, user.TenantID, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, ident domain.Identity) (*domain.User, error) {
	return s.users.FindByID(ctx, ident.TenantID, ident.UserID)
}

func (s *AuthService) record(event domain.AuditEvent) {
	if s.audit != nil {
		s.audit.Record(event)
	}
}
