package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type TaskStatus string

const (
	StatusTodo     TaskStatus = "todo"
	StatusOngoing  TaskStatus = "ongoing"
	StatusComplete TaskStatus = "complete"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusOngoing, StatusComplete:
		return true
	}
	return false
}

// AssetList stores a JSON array of asset references in a single column.
type AssetList []string

func (a AssetList) Value() (driver.Value, error) {
	if a == nil {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	return string(b), err
}

func (a *AssetList) Scan(value interface{}) error {
	if value == nil {
		*a = AssetList{}
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case string:
		bytes = []byte(v)
	case []byte:
		bytes = v
	}
	return json.Unmarshal(bytes, a)
}

type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ProjectID   uint       `gorm:"not null;index:idx_project_id" json:"project_id"`
	Title       string     `gorm:"type:varchar(256);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(10);not null;default:todo;index:idx_status" json:"status"`
	Priority    string     `gorm:"type:varchar(10)" json:"priority"`
	Assets      AssetList  `gorm:"type:json" json:"assets"`
	CreatedBy   uint       `gorm:"not null;index:idx_created_by" json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	DueAt       *time.Time `json:"due_at"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Creator *User    `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

func (Task) TableName() string { return "tasks" }
