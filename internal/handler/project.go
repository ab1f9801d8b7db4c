package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/worktrail/backend/internal/middleware"
	"github.com/worktrail/backend/internal/service"
)

type ProjectHandler struct {
	projectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid payload: "+err.Error())
		return
	}

	actor := middleware.GetCurrentUser(c)
	project, err := h.projectService.Create(actor, req.Name)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{
		"id":         project.ID,
		"name":       project.Name,
		"created_at": project.CreatedAt,
	})
}

// GET /projects
func (h *ProjectHandler) List(c *gin.Context) {
	actor := middleware.GetCurrentUser(c)

	projects, err := h.projectService.List(actor)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, projects)
}

// GET /projects/:id/assignees
func (h *ProjectHandler) Assignees(c *gin.Context) {
	id := parseID(c.Param("id"))

	users, err := h.projectService.Assignees(id)
	if err != nil {
		RespondError(c, err)
		return
	}

	list := make([]gin.H, 0, len(users))
	for _, u := range users {
		list = append(list, gin.H{
			"id":    u.ID,
			"name":  u.Name,
			"email": u.Email,
			"role":  u.Role,
		})
	}
	Success(c, list)
}
