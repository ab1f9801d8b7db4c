package model

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(128);uniqueIndex:uk_email;not null" json:"email"`
	Name         string    `gorm:"type:varchar(64);not null" json:"name"`
	Role         Role      `gorm:"type:varchar(10);not null;default:user;index:idx_role" json:"role"`
	PasswordHash string    `gorm:"type:varchar(128);not null" json:"-"`
	JoinedAt     time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (User) TableName() string { return "users" }

type UserBrief struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  Role   `json:"role,omitempty"`
}

func (u *User) Brief() UserBrief {
	return UserBrief{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
