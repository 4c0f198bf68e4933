package ports

import (
	"context"
	"time"

	"github.com/tenantworks/saas-admin/internal/core/domain"
)

// TaskFilter narrows task listings. Empty fields match everything.
type TaskFilter struct {
	Status   string
	Priority string
}

// TaskRepository persists tasks. Every method is tenant-scoped.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	ListByProject(ctx context.Context, tenantID, projectID string, filter TaskFilter) ([]domain.Task, error)
	Count(ctx context.Context) (int64, error)
}

// CreateTaskInput carries the fields for a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
}

type TaskService interface {
	// Create adds a task under projectID, which must belong to the identity's
	// tenant.
	Create(ctx context.Context, ident domain.Identity, projectID string, in CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, ident domain.Identity, projectID string, filter TaskFilter) ([]domain.Task, error)
}
