package service

import (
	"context"

	"github.com/tenantworks/saas-admin/internal/core/ports"
)

// StatsService aggregates entity counts across every tenant. Super_admin only.
type StatsService struct {
	tenants  ports.TenantRepository
	users    ports.UserRepository
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
}

func NewStatsService(tenants ports.TenantRepository, users ports.UserRepository, projects ports.ProjectRepository, tasks ports.TaskRepository) *StatsService {
	return &StatsService{tenants: tenants, users: users, projects: projects, tasks: tasks}
}

func (s *StatsService) Counts(ctx context.Context) (ports.Stats, error) {
	var stats ports.Stats
	var err error

	if stats.Tenants, err = s.tenants.Count(ctx); err != nil {
		return ports.Stats{}, err
	}
	if stats.Users, err = s.users.Count(ctx); err != nil {
		return ports.Stats{}, err
	}
	if stats.Projects, err = s.projects.Count(ctx); err != nil {
		return ports.Stats{}, err
	}
	if stats.Tasks, err = s.tasks.Count(ctx); err != nil {
		return ports.Stats{}, err
	}
	return stats, nil
}
