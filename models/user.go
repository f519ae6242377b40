package models

import (
	"time"
)

const (
	RoleAdmin   = "admin"
	RoleTrainer = "trainer"
)

type User struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Username     string `gorm:"uniqueIndex;size:255;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;not null;default:'trainer';index" json:"role"`

	// trainer 绑定到一个 lab；admin 两个都为空
	LabID   *string `gorm:"type:uuid;index" json:"labId,omitempty"`
	LabName string  `gorm:"size:200" json:"labName,omitempty"`

	LastLoginAt *time.Time `gorm:"index" json:"lastLoginAt,omitempty"`
	LastSeenAt  *time.Time `gorm:"index" json:"lastSeenAt,omitempty"`
	LoginCount  int64      `gorm:"not null;default:0" json:"loginCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "inv_users" }

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsTrainer() bool { return u.Role == RoleTrainer }
