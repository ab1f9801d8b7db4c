package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/worktrail/backend/internal/middleware"
	"github.com/worktrail/backend/internal/model"
	"github.com/worktrail/backend/internal/service"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// POST /projects/:id/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	projectID := parseID(c.Param("id"))

	var req struct {
		Title       string          `json:"title" binding:"required,max=256"`
		Description string          `json:"description" binding:"max=5000"`
		Priority    string          `json:"priority" binding:"max=10"`
		Assets      model.AssetList `json:"assets"`
		DueAt       *time.Time      `json:"due_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid payload: "+err.Error())
		return
	}

	actor := middleware.GetCurrentUser(c)
	task, err := h.taskService.Create(actor, projectID, service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Assets:      req.Assets,
		DueAt:       req.DueAt,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, task)
}

// PATCH /tasks/:id/status
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	taskID := parseID(c.Param("id"))

	var req struct {
		Status model.TaskStatus `json:"status" binding:"required,oneof=todo ongoing complete"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid payload: "+err.Error())
		return
	}

	actor := middleware.GetCurrentUser(c)
	task, err := h.taskService.UpdateStatus(actor, taskID, req.Status)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"id": task.ID, "status": task.Status})
}

// POST /tasks/:id/assignees/:user_id
func (h *TaskHandler) Assign(c *gin.Context) {
	taskID := parseID(c.Param("id"))
	userID := parseID(c.Param("user_id"))

	actor := middleware.GetCurrentUser(c)
	if err := h.taskService.Assign(actor, taskID, userID); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"message": "user assigned"})
}

// DELETE /tasks/:id/assignees/:user_id
func (h *TaskHandler) Unassign(c *gin.Context) {
	taskID := parseID(c.Param("id"))
	userID := parseID(c.Param("user_id"))

	actor := middleware.GetCurrentUser(c)
	if err := h.taskService.Unassign(actor, taskID, userID); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"message": "user unassigned"})
}

// GET /tasks/:id/logs
func (h *TaskHandler) Logs(c *gin.Context) {
	taskID := parseID(c.Param("id"))

	actor := middleware.GetCurrentUser(c)
	logs, err := h.taskService.Logs(actor, taskID)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, logs)
}
