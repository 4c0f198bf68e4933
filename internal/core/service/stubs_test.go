package service

import (
	"context"
	"strconv"
	"sync"

	"github.com/tenantworks/saas-admin/internal/core/domain"
	"github.com/tenantworks/saas-admin/internal/core/ports"
)

// In-memory repository stubs shared by the service tests.

type stubTenantRepo struct {
	seq     int
	tenants map[string]*domain.Tenant
}

func newStubTenantRepo() *stubTenantRepo {
	return &stubTenantRepo{tenants: make(map[string]*domain.Tenant)}
}

func (r *stubTenantRepo) Create(_ context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	r.seq++
	clone := *t
	clone.ID = "t" + strconv.Itoa(r.seq)
	r.tenants[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubTenantRepo) FindByID(_ context.Context, id string) (*domain.Tenant, error) {
	t, ok := r.tenants[id]
	if !ok {
		return nil, domain.ErrTenantNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTenantRepo) List(_ context.Context, offset, limit int64) ([]domain.Tenant, error) {
	out := make([]domain.Tenant, 0, len(r.tenants))
	for i := 1; i <= r.seq; i++ {
		if t, ok := r.tenants["t"+strconv.Itoa(i)]; ok {
			out = append(out, *t)
		}
	}
	if offset >= int64(len(out)) {
		return nil, nil
	}
	out = out[offset:]
	if limit < int64(len(out)) {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubTenantRepo) Update(_ context.Context, id, name, plan string) (*domain.Tenant, error) {
	t, ok := r.tenants[id]
	if !ok {
		return nil, domain.ErrTenantNotFound
	}
	if name != "" {
		t.Name = name
	}
	t.SubscriptionPlan = plan
	clone := *t
	return &clone, nil
}

func (r *stubTenantRepo) Delete(_ context.Context, id string) error {
	delete(r.tenants, id)
	return nil
}

func (r *stubTenantRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.tenants)), nil
}

type stubUserRepo struct {
	seq   int
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := *u
	clone.ID = "u" + strconv.Itoa(r.seq)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, tenantID, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || (tenantID != "" && u.TenantID != tenantID) {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) ListByTenant(_ context.Context, tenantID string) ([]domain.User, error) {
	var out []domain.User
	for i := 1; i <= r.seq; i++ {
		if u, ok := r.users["u"+strconv.Itoa(i)]; ok && u.TenantID == tenantID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, tenantID, id string, in ports.UpdateUserInput) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok || (tenantID != "" && u.TenantID != tenantID) {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Role != "" {
		u.Role = domain.Role(in.Role)
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Delete(_ context.Context, tenantID, id string) error {
	u, ok := r.users[id]
	if !ok || (tenantID != "" && u.TenantID != tenantID) {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type stubProjectRepo struct {
	seq      int
	projects map[string]*domain.Project
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project)}
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	r.seq++
	clone := *p
	clone.ID = "p" + strconv.Itoa(r.seq)
	r.projects[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, tenantID, id string) (*domain.Project, error) {
	p, ok := r.projects[id]
	if !ok || p.TenantID != tenantID {
		return nil, domain.ErrProjectNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProjectRepo) ListByTenant(_ context.Context, tenantID string, offset, limit int64) ([]domain.Project, error) {
	var out []domain.Project
	for i := 1; i <= r.seq; i++ {
		if p, ok := r.projects["p"+strconv.Itoa(i)]; ok && p.TenantID == tenantID {
			out = append(out, *p)
		}
	}
	if offset >= int64(len(out)) {
		return nil, nil
	}
	out = out[offset:]
	if limit < int64(len(out)) {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubProjectRepo) CountByTenant(_ context.Context, tenantID string) (int64, error) {
	var n int64
	for _, p := range r.projects {
		if p.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *stubProjectRepo) Delete(_ context.Context, tenantID, id string) error {
	p, ok := r.projects[id]
	if !ok || p.TenantID != tenantID {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *stubProjectRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.projects)), nil
}

type stubTaskRepo struct {
	seq   int
	tasks []*domain.Task
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	r.seq++
	clone := *t
	clone.ID = "k" + strconv.Itoa(r.seq)
	r.tasks = append(r.tasks, &clone)
	out := clone
	return &out, nil
}

func (r *stubTaskRepo) ListByProject(_ context.Context, tenantID, projectID string, filter ports.TaskFilter) ([]domain.Task, error) {
	var out []domain.Task
	for _, t := range r.tasks {
		if t.TenantID != tenantID || t.ProjectID != projectID {
			continue
		}
		if filter.Status != "" && string(t.Status) != filter.Status {
			continue
		}
		if filter.Priority != "" && string(t.Priority) != filter.Priority {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTaskRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.tasks)), nil
}

// recorderStub captures audit events synchronously.
type recorderStub struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (r *recorderStub) Record(event domain.AuditEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorderStub) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Action
	}
	return out
}
