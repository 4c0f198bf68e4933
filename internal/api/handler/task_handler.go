package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tenantworks/saas-admin/internal/core/domain"
	"github.com/tenantworks/saas-admin/internal/core/ports"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type createTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     string `json:"due_date"`
}

type taskListResponse struct {
	Data []domain.Task `json:"data"`
}

// Create adds a task under a project of the caller's tenant.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string             true  "Project id"
// @Param        body       body      createTaskRequest  true  "Task details"
// @Success      201        {object}  domain.Task
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /projects/{id}/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "due_date must be RFC3339"})
		}
		dueDate = &parsed
	}

	task, err := h.taskService.Create(c.Request().Context(), ident, c.Param("id"), ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     dueDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

// List returns a project's tasks with optional status/priority filters.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id         path      string  true   "Project id"
// @Param        status     query     string  false  "Filter by status"
// @Param        priority   query     string  false  "Filter by priority"
// @Success      200        {object}  taskListResponse
// @Router       /projects/{id}/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	ident, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.List(c.Request().Context(), ident, c.Param("id"), ports.TaskFilter{
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
	})
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return c.JSON(http.StatusOK, taskListResponse{Data: tasks})
}
