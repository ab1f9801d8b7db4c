package model

import "time"

type Project struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(128);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Owners []ProjectOwner `gorm:"foreignKey:ProjectID" json:"owners,omitempty"`
}

func (Project) TableName() string { return "projects" }

// ProjectOwner rows are append-only: ownership is granted at project
// creation and never revoked through the API.
type ProjectOwner struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;uniqueIndex:uk_project_user" json:"project_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uk_project_user;index:idx_owner_user_id" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (ProjectOwner) TableName() string { return "project_owners" }
