package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/worktrail/backend/internal/middleware"
	"github.com/worktrail/backend/internal/service"
)

type UserHandler struct {
	authService *service.AuthService
	taskService *service.TaskService
}

func NewUserHandler(authService *service.AuthService, taskService *service.TaskService) *UserHandler {
	return &UserHandler{authService: authService, taskService: taskService}
}

// GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	actor := middleware.GetCurrentUser(c)

	users, err := h.authService.ListUsers(actor)
	if err != nil {
		RespondError(c, err)
		return
	}

	list := make([]gin.H, 0, len(users))
	for _, u := range users {
		list = append(list, gin.H{
			"id":        u.ID,
			"email":     u.Email,
			"name":      u.Name,
			"role":      u.Role,
			"joined_at": u.JoinedAt,
		})
	}
	Success(c, list)
}

// GET /users/my/assigned-tasks
func (h *UserHandler) MyAssignedTasks(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	tasks, err := h.taskService.AssignedTasks(userID)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, tasks)
}
