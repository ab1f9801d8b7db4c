package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/worktrail/backend/internal/model"
	"github.com/worktrail/backend/internal/policy"
)

type TaskService struct {
	db          *gorm.DB
	transitions policy.TransitionTable
}

// NewTaskService takes the status transition table to enforce; nil
// permits any status change.
func NewTaskService(db *gorm.DB, transitions policy.TransitionTable) *TaskService {
	return &TaskService{db: db, transitions: transitions}
}

type TaskInput struct {
	Title       string
	Description string
	Priority    string
	Assets      model.AssetList
	DueAt       *time.Time
}

// Create inserts a task under a project and appends the creation audit
// row in the same transaction. Gated on admin or project ownership.
func (s *TaskService) Create(actor *model.User, projectID uint, in TaskInput) (*model.Task, error) {
	var count int64
	s.db.Model(&model.Project{}).Where("id = ?", projectID).Count(&count)
	if count == 0 {
		return nil, fmt.Errorf("40402:project not found")
	}

	if err := policy.CanManageTasks(actor.Role, s.isProjectOwner(projectID, actor.ID)); err != nil {
		return nil, err
	}

	task := &model.Task{
		ProjectID:   projectID,
		Title:       in.Title,
		Description: in.Description,
		Status:      model.StatusTodo,
		Priority:    in.Priority,
		Assets:      in.Assets,
		CreatedBy:   actor.ID,
		DueAt:       in.DueAt,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		return tx.Create(&model.TaskLog{
			TaskID: task.ID,
			UserID: actor.ID,
			Log:    "Task created",
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateStatus moves a task through the workflow and records the
// old -> new transition in the audit trail. Any authenticated user may
// change status; the transition table is the only restriction.
func (s *TaskService) UpdateStatus(actor *model.User, taskID uint, status model.TaskStatus) (*model.Task, error) {
	task, err := s.Get(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.transitions.CheckTransition(task.Status, status); err != nil {
		return nil, err
	}

	oldStatus := task.Status
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(task).Update("status", status).Error; err != nil {
			return err
		}
		return tx.Create(&model.TaskLog{
			TaskID: task.ID,
			UserID: actor.ID,
			Log:    fmt.Sprintf("Status changed from %s to %s", oldStatus, status),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	task.Status = status
	return task, nil
}

// Assign adds a user to a task. Duplicate pairs are a conflict, not a
// silent no-op; the unique index on (task_id, user_id) backs up the
// pre-check under concurrency.
func (s *TaskService) Assign(actor *model.User, taskID, userID uint) error {
	task, err := s.Get(taskID)
	if err != nil {
		return err
	}
	var count int64
	s.db.Model(&model.User{}).Where("id = ?", userID).Count(&count)
	if count == 0 {
		return fmt.Errorf("40401:user not found")
	}

	if err := policy.CanManageTasks(actor.Role, s.isProjectOwner(task.ProjectID, actor.ID)); err != nil {
		return err
	}

	s.db.Model(&model.Assignee{}).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Count(&count)
	if count > 0 {
		return fmt.Errorf("40901:user already assigned")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.Assignee{TaskID: taskID, UserID: userID}).Error; err != nil {
			return fmt.Errorf("40901:user already assigned")
		}
		return tx.Create(&model.TaskLog{
			TaskID: taskID,
			UserID: actor.ID,
			Log:    fmt.Sprintf("User %d assigned to task", userID),
		}).Error
	})
}

// Unassign removes a user from a task; removing a pair that was never
// assigned is not found.
func (s *TaskService) Unassign(actor *model.User, taskID, userID uint) error {
	task, err := s.Get(taskID)
	if err != nil {
		return err
	}

	if err := policy.CanManageTasks(actor.Role, s.isProjectOwner(task.ProjectID, actor.ID)); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("task_id = ? AND user_id = ?", taskID, userID).Delete(&model.Assignee{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("40403:assignment not found")
		}
		return tx.Create(&model.TaskLog{
			TaskID: taskID,
			UserID: actor.ID,
			Log:    fmt.Sprintf("User %d unassigned from task", userID),
		}).Error
	})
}

// Logs returns the task's audit trail; admins and assignees only.
func (s *TaskService) Logs(actor *model.User, taskID uint) ([]model.TaskLog, error) {
	if _, err := s.Get(taskID); err != nil {
		return nil, err
	}

	if err := policy.CanViewTaskLogs(actor.Role, s.isAssignee(taskID, actor.ID)); err != nil {
		return nil, err
	}

	var logs []model.TaskLog
	if err := s.db.Where("task_id = ?", taskID).Order("created_at").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// AssignedTasks lists the tasks the user is assigned to.
func (s *TaskService) AssignedTasks(userID uint) ([]model.Task, error) {
	var taskIDs []uint
	if err := s.db.Model(&model.Assignee{}).
		Where("user_id = ?", userID).
		Pluck("task_id", &taskIDs).Error; err != nil {
		return nil, err
	}
	tasks := make([]model.Task, 0, len(taskIDs))
	if len(taskIDs) == 0 {
		return tasks, nil
	}
	if err := s.db.Where("id IN ?", taskIDs).Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskService) Get(taskID uint) (*model.Task, error) {
	var task model.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("40404:task not found")
		}
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) isProjectOwner(projectID, userID uint) bool {
	var count int64
	s.db.Model(&model.ProjectOwner{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count)
	return count > 0
}

func (s *TaskService) isAssignee(taskID, userID uint) bool {
	var count int64
	s.db.Model(&model.Assignee{}).
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Count(&count)
	return count > 0
}
