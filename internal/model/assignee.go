package model

import "time"

// Assignee links a user to a task. The composite unique index backs up
// the duplicate-assignment pre-check in the service layer.
type Assignee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    uint      `gorm:"not null;uniqueIndex:uk_task_user" json:"task_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:uk_task_user;index:idx_assignee_user_id" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Assignee) TableName() string { return "assignees" }
