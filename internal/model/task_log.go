package model

import "time"

// TaskLog is an append-only audit trail. Rows are never updated or
// deleted; no endpoint exists that could.
type TaskLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TaskID    uint      `gorm:"not null;index:idx_task_id" json:"task_id"`
	UserID    uint      `gorm:"not null;index:idx_log_user_id" json:"user_id"`
	Log       string    `gorm:"type:text;not null" json:"log"`
	CreatedAt time.Time `gorm:"index:idx_log_created_at" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (TaskLog) TableName() string { return "task_logs" }
