package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/worktrail/backend/internal/model"
	"github.com/worktrail/backend/internal/policy"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

// Create inserts the project and records the creator as its first
// owner in the same transaction.
func (s *ProjectService) Create(actor *model.User, name string) (*model.Project, error) {
	if err := policy.CanCreateProject(actor.Role); err != nil {
		return nil, err
	}

	project := &model.Project{Name: name}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		owner := &model.ProjectOwner{ProjectID: project.ID, UserID: actor.ID}
		return tx.Create(owner).Error
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// List returns all projects for admins. For everyone else it is the
// deduplicated union of projects the user owns and projects containing
// a task assigned to the user, assembled from two independent id
// fetches (see policy.VisibleProjects).
func (s *ProjectService) List(actor *model.User) ([]model.Project, error) {
	if actor.Role == model.RoleAdmin {
		var projects []model.Project
		if err := s.db.Order("id").Find(&projects).Error; err != nil {
			return nil, err
		}
		return projects, nil
	}

	var owned []uint
	if err := s.db.Model(&model.ProjectOwner{}).
		Where("user_id = ?", actor.ID).
		Pluck("project_id", &owned).Error; err != nil {
		return nil, err
	}

	var taskIDs []uint
	if err := s.db.Model(&model.Assignee{}).
		Where("user_id = ?", actor.ID).
		Pluck("task_id", &taskIDs).Error; err != nil {
		return nil, err
	}
	var assignedVia []uint
	if len(taskIDs) > 0 {
		if err := s.db.Model(&model.Task{}).
			Where("id IN ?", taskIDs).
			Pluck("project_id", &assignedVia).Error; err != nil {
			return nil, err
		}
	}

	visible := policy.VisibleProjects(owned, assignedVia)
	projects := make([]model.Project, 0, len(visible))
	if len(visible) == 0 {
		return projects, nil
	}
	if err := s.db.Where("id IN ?", visible).Order("id").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectService) Get(id uint) (*model.Project, error) {
	var project model.Project
	if err := s.db.Preload("Owners.User").First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("40402:project not found")
		}
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) IsOwner(projectID, userID uint) bool {
	var count int64
	s.db.Model(&model.ProjectOwner{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count)
	return count > 0
}

// Assignees lists the users assigned to any task of the project.
func (s *ProjectService) Assignees(projectID uint) ([]model.User, error) {
	if _, err := s.Get(projectID); err != nil {
		return nil, err
	}

	var taskIDs []uint
	if err := s.db.Model(&model.Task{}).
		Where("project_id = ?", projectID).
		Pluck("id", &taskIDs).Error; err != nil {
		return nil, err
	}
	users := make([]model.User, 0)
	if len(taskIDs) == 0 {
		return users, nil
	}

	var userIDs []uint
	if err := s.db.Model(&model.Assignee{}).
		Where("task_id IN ?", taskIDs).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error; err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return users, nil
	}
	if err := s.db.Where("id IN ?", userIDs).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
