package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/worktrail/backend/internal/handler"
	"github.com/worktrail/backend/internal/middleware"
	"github.com/worktrail/backend/internal/service"
)

type Deps struct {
	DB               *gorm.DB
	JWTSecret        string
	Blacklist        *service.TokenBlacklist
	AuthHandler      *handler.AuthHandler
	UserHandler      *handler.UserHandler
	ProjectHandler   *handler.ProjectHandler
	TaskHandler      *handler.TaskHandler
	TimeEntryHandler *handler.TimeEntryHandler
}

func Setup(r *gin.Engine, deps Deps) {
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	api := r.Group("/api/v1")

	// Public routes (no auth)
	auth := api.Group("/auth")
	{
		auth.POST("/register", deps.AuthHandler.Register)
		auth.POST("/login", deps.AuthHandler.Login)
	}

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(deps.JWTSecret, deps.DB, deps.Blacklist))
	{
		// Auth
		authed.POST("/auth/logout", deps.AuthHandler.Logout)
		authed.GET("/auth/me", deps.AuthHandler.GetMe)

		// Users
		users := authed.Group("/users")
		{
			users.GET("", deps.UserHandler.ListUsers)
			users.GET("/my/assigned-tasks", deps.UserHandler.MyAssignedTasks)
		}

		// Projects
		projects := authed.Group("/projects")
		{
			projects.POST("", deps.ProjectHandler.Create)
			projects.GET("", deps.ProjectHandler.List)
			projects.GET("/:id/assignees", deps.ProjectHandler.Assignees)

			// Tasks under projects
			projects.POST("/:id/tasks", deps.TaskHandler.Create)
		}

		// Tasks (standalone)
		tasks := authed.Group("/tasks")
		{
			tasks.PATCH("/:id/status", deps.TaskHandler.UpdateStatus)
			tasks.POST("/:id/assignees/:user_id", deps.TaskHandler.Assign)
			tasks.DELETE("/:id/assignees/:user_id", deps.TaskHandler.Unassign)
			tasks.GET("/:id/logs", deps.TaskHandler.Logs)
		}

		// Time entries
		entries := authed.Group("/time-entries")
		{
			entries.POST("", deps.TimeEntryHandler.Create)
			entries.GET("", deps.TimeEntryHandler.List)
			entries.GET("/stats/summary", deps.TimeEntryHandler.Stats)
			entries.GET("/user/:id", deps.TimeEntryHandler.ListForUser)
			entries.GET("/project/:id", deps.TimeEntryHandler.ListForProject)
			entries.GET("/:id", deps.TimeEntryHandler.Get)
			entries.PATCH("/:id", deps.TimeEntryHandler.Update)
			entries.DELETE("/:id", deps.TimeEntryHandler.Delete)
		}
	}
}
