package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/planify/internal/application"
	"github.com/oksasatya/planify/internal/domain/entity"
	"github.com/oksasatya/planify/internal/interface/middleware"
	"github.com/oksasatya/planify/pkg/response"
)

type ProjectHandler struct {
	Svc    *application.ProjectService
	Logger *logrus.Logger
}

func NewProjectHandler(svc *application.ProjectService, logger *logrus.Logger) *ProjectHandler {
	return &ProjectHandler{Svc: svc, Logger: logger}
}

type createProjectRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	StartDate   optionalDate `json:"startDate"`
	EndDate     optionalDate `json:"endDate"`
	TechStack   []string     `json:"techStack"`
	Pinned      *bool        `json:"pinned"`
	EmailAlerts *bool        `json:"emailAlerts"`
	Notes       *string      `json:"notes"`
}

// updateProjectRequest has no owner field; sending one is rejected as unknown.
type updateProjectRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	StartDate   optionalDate `json:"startDate"`
	EndDate     optionalDate `json:"endDate"`
	TechStack   *[]string    `json:"techStack"`
	Pinned      *bool        `json:"pinned"`
	EmailAlerts *bool        `json:"emailAlerts"`
	Notes       *string      `json:"notes"`
}

func (r updateProjectRequest) patch() entity.ProjectPatch {
	return entity.ProjectPatch{
		Title:       r.Title,
		Description: r.Description,
		StartDate:   r.StartDate.patch(),
		EndDate:     r.EndDate.patch(),
		TechStack:   r.TechStack,
		Pinned:      r.Pinned,
		EmailAlerts: r.EmailAlerts,
		Notes:       r.Notes,
	}
}

// List GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	views, err := h.Svc.List(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, views)
}

// Search GET /api/projects/search?q=&size=
func (h *ProjectHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	projects, err := h.Svc.Search(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, projects)
}

// Create POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.ProjectInput{
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate.Value,
		EndDate:     req.EndDate.Value,
		TechStack:   req.TechStack,
		Pinned:      req.Pinned,
		EmailAlerts: req.EmailAlerts,
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, p)
}

// Get GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// Update PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	ctx, id, uid := c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey)
	var req updateProjectRequest
	if !bindGuardedJSON(c, h.Logger, &req, func() error {
		_, err := h.Svc.Get(ctx, id, uid)
		return err
	}) {
		return
	}
	p, err := h.Svc.Update(ctx, id, uid, req.patch())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// Delete DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey)); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Message(c, http.StatusOK, "Project removed")
}
