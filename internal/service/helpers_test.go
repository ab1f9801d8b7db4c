package service

import (
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/worktrail/backend/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	// One connection so every session sees the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.ProjectOwner{},
		&model.Task{},
		&model.Assignee{},
		&model.TaskLog{},
		&model.TimeEntry{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role model.Role) *model.User {
	t.Helper()
	user := &model.User{
		Email:        email,
		Name:         strings.SplitN(email, "@", 2)[0],
		Role:         role,
		PasswordHash: "x",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func seedProject(t *testing.T, db *gorm.DB, name string, ownerID uint) *model.Project {
	t.Helper()
	project := &model.Project{Name: name}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("seed project %s: %v", name, err)
	}
	if err := db.Create(&model.ProjectOwner{ProjectID: project.ID, UserID: ownerID}).Error; err != nil {
		t.Fatalf("seed owner: %v", err)
	}
	return project
}

func seedTask(t *testing.T, db *gorm.DB, projectID, creatorID uint) *model.Task {
	t.Helper()
	task := &model.Task{
		ProjectID: projectID,
		Title:     "task",
		Status:    model.StatusTodo,
		CreatedBy: creatorID,
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return task
}

// hasCode reports whether err carries the given coded prefix.
func hasCode(err error, code string) bool {
	return err != nil && strings.HasPrefix(err.Error(), code+":")
}

func countLogs(t *testing.T, db *gorm.DB, taskID uint) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&model.TaskLog{}).Where("task_id = ?", taskID).Count(&n).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	return n
}
