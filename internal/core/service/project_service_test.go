package service

import (
	"context"
	"testing"

	"github.com/tenantworks/saas-admin/internal/core/domain"
	"github.com/tenantworks/saas-admin/internal/core/ports"
)

var acmeUser = domain.Identity{UserID: "u1", TenantID: "acme", Role: domain.RoleUser}

func TestProjectService_CreateAndList(t *testing.T) {
	rec := &recorderStub{}
	svc := NewProjectService(newStubProjectRepo(), rec)

	project, err := svc.Create(context.Background(), acmeUser, ports.CreateProjectInput{
		Name: "Onboarding", Description: "Q3 rollout",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if project.TenantID != "acme" || project.CreatedBy != "u1" {
		t.Fatalf("project not stamped with identity: %+v", project)
	}

	projects, page, err := svc.List(context.Background(), acmeUser, ports.PageRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 1 || page.Total != 1 {
		t.Fatalf("unexpected listing: %d rows, %+v", len(projects), page)
	}
	if got := rec.actions(); len(got) != 1 || got[0] != "project.create" {
		t.Fatalf("audit actions = %v", got)
	}
}

func TestProjectService_List_NeverCrossesTenants(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, &recorderStub{})

	_, _ = svc.Create(context.Background(), acmeUser, ports.CreateProjectInput{Name: "A"})
	globexUser := domain.Identity{UserID: "u2", TenantID: "globex", Role: domain.RoleUser}
	_, _ = svc.Create(context.Background(), globexUser, ports.CreateProjectInput{Name: "B"})

	projects, _, err := svc.List(context.Background(), globexUser, ports.PageRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, p := range projects {
		if p.TenantID != "globex" {
			t.Fatalf("listing leaked tenant %s row", p.TenantID)
		}
	}
	if len(projects) != 1 {
		t.Fatalf("got %d rows, want 1", len(projects))
	}
}

func TestProjectService_Delete_Scoped(t *testing.T) {
	repo := newStubProjectRepo()
	svc := NewProjectService(repo, &recorderStub{})

	project, _ := svc.Create(context.Background(), acmeUser, ports.CreateProjectInput{Name: "A"})

	globexUser := domain.Identity{UserID: "u2", TenantID: "globex", Role: domain.RoleUser}
	if err := svc.Delete(context.Background(), globexUser, project.ID); err != domain.ErrProjectNotFound {
		t.Fatalf("cross-tenant delete: expected ErrProjectNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), acmeUser, project.ID); err != nil {
		t.Fatalf("own delete: %v", err)
	}
}
