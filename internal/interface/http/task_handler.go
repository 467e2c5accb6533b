package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/planify/internal/application"
	"github.com/oksasatya/planify/internal/domain/entity"
	"github.com/oksasatya/planify/internal/interface/middleware"
	"github.com/oksasatya/planify/pkg/response"
)

type TaskHandler struct {
	Svc    *application.TaskService
	Logger *logrus.Logger
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger}
}

type createTaskRequest struct {
	ProjectID   string       `json:"projectId" binding:"required"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      *string      `json:"status"`
	Priority    *string      `json:"priority"`
	StartDate   optionalDate `json:"startDate"`
	EndDate     optionalDate `json:"endDate"`
	AssignedTo  string       `json:"assignedTo"`
}

// updateTaskRequest has no projectId field: a task never moves between projects.
type updateTaskRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Status      *string      `json:"status"`
	Priority    *string      `json:"priority"`
	StartDate   optionalDate `json:"startDate"`
	EndDate     optionalDate `json:"endDate"`
	AssignedTo  *string      `json:"assignedTo"`
}

func statusPtr(s *string) *entity.TaskStatus {
	if s == nil {
		return nil
	}
	v := entity.TaskStatus(*s)
	return &v
}

func priorityPtr(s *string) *entity.TaskPriority {
	if s == nil {
		return nil
	}
	v := entity.TaskPriority(*s)
	return &v
}

// ListByProject GET /api/tasks/project/:projectId
func (h *TaskHandler) ListByProject(c *gin.Context) {
	tasks, err := h.Svc.ListByProject(c.Request.Context(), c.Param("projectId"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, tasks)
}

// Create POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.TaskInput{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      statusPtr(req.Status),
		Priority:    priorityPtr(req.Priority),
		StartDate:   req.StartDate.Value,
		EndDate:     req.EndDate.Value,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, t)
}

// Update PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	ctx, id, uid := c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey)
	var req updateTaskRequest
	if !bindGuardedJSON(c, h.Logger, &req, func() error { return h.Svc.Authorize(ctx, id, uid) }) {
		return
	}
	t, err := h.Svc.Update(ctx, id, uid, entity.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      statusPtr(req.Status),
		Priority:    priorityPtr(req.Priority),
		StartDate:   req.StartDate.patch(),
		EndDate:     req.EndDate.patch(),
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, t)
}

// Delete DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey)); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusOK, "Task removed")
}
