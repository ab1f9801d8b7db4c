package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/worktrail/backend/internal/config"
	"github.com/worktrail/backend/internal/handler"
	"github.com/worktrail/backend/internal/model"
	"github.com/worktrail/backend/internal/policy"
	"github.com/worktrail/backend/internal/router"
	"github.com/worktrail/backend/internal/service"
)

func main() {
	// Load config
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Database
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}

	// Auto migrate
	if err := db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.ProjectOwner{},
		&model.Task{},
		&model.Assignee{},
		&model.TaskLog{},
		&model.TimeEntry{},
	); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}

	// Redis (token revocation); the blacklist degrades to a no-op
	// when no address is configured.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	blacklist := service.NewTokenBlacklist(rdb)

	// Task workflow: permissive unless strict transitions are enabled.
	var transitions policy.TransitionTable
	if cfg.Workflow.StrictTransitions {
		transitions = policy.StrictTransitions
	}

	// Services
	authService := service.NewAuthService(db, blacklist, cfg.JWT.Secret, cfg.JWT.ExpireHours)
	projectService := service.NewProjectService(db)
	taskService := service.NewTaskService(db, transitions)
	entryService := service.NewTimeEntryService(db)

	// Bootstrap admin
	if err := authService.EnsureAdmin(cfg.Bootstrap.AdminEmail, cfg.Bootstrap.AdminName, cfg.Bootstrap.AdminPassword); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService, taskService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	entryHandler := handler.NewTimeEntryHandler(entryService)

	// Gin engine
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// Setup routes
	router.Setup(r, router.Deps{
		DB:               db,
		JWTSecret:        cfg.JWT.Secret,
		Blacklist:        blacklist,
		AuthHandler:      authHandler,
		UserHandler:      userHandler,
		ProjectHandler:   projectHandler,
		TaskHandler:      taskHandler,
		TimeEntryHandler: entryHandler,
	})

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
