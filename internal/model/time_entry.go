package model

import "time"

type Billing string

const (
	Billable    Billing = "billable"
	NonBillable Billing = "non_billable"
)

func (b Billing) Valid() bool {
	return b == Billable || b == NonBillable
}

// TimeEntry records hours a user worked on a project (optionally a
// specific task) on one work date. WorkDate is kept as an ISO date
// string so range filters behave the same on MySQL and SQLite.
type TimeEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_user_date,priority:1" json:"user_id"`
	ProjectID uint      `gorm:"not null;index:idx_entry_project_id" json:"project_id"`
	TaskID    *uint     `gorm:"index:idx_entry_task_id" json:"task_id"`
	Hours     float64   `gorm:"type:decimal(5,2);not null" json:"hours"`
	Billable  Billing   `gorm:"type:varchar(15);not null;default:non_billable" json:"billable"`
	WorkDate  string    `gorm:"type:date;not null;index:idx_user_date,priority:2" json:"work_date"`
	Note      string    `gorm:"type:text" json:"note"`
	CreatedAt time.Time `json:"created_at"`

	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (TimeEntry) TableName() string { return "time_entries" }
