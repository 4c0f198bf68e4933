package service

import (
	"context"
	"time"

	"github.com/tenantworks/saas-admin/internal/core/domain"
	"github.com/tenantworks/saas-admin/internal/core/ports"
)

// TaskService implements task CRUD beneath a project. The parent project is
// resolved within the identity's tenant first, so a task can never attach to
// or be read from another tenant's project.
type TaskService struct {
	tasks    ports.TaskRepository
	projects ports.ProjectRepository
}

func NewTaskService(tasks ports.TaskRepository, projects ports.ProjectRepository) *TaskService {
	return &TaskService{tasks: tasks, projects: projects}
}

func (s *TaskService) Create(ctx context.Context, ident domain.Identity, projectID string, in ports.CreateTaskInput) (*domain.Task, error) {
	if _, err := s.projects.FindByID(ctx, ident.TenantID, projectID); err != nil {
		return nil, err
	}

	status := domain.TaskStatus(in.Status)
	if status == "" {
		status = domain.TaskPending
	}
	priority := domain.TaskPriority(in.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}

	return s.tasks.Create(ctx, &domain.Task{
		ProjectID:   projectID,
		TenantID:    ident.TenantID,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     in.DueDate,
		CreatedAt:   time.Now().UTC(),
	})
}

func (s *TaskService) List(ctx context.Context, ident domain.Identity, projectID string, filter ports.TaskFilter) ([]domain.Task, error) {
	return s.tasks.ListByProject(ctx, ident.TenantID, projectID, filter)
}
