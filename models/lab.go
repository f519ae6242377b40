package models

import "time"

const LabTable = "inv_labs"

const (
	LabStatusActive      = "active"
	LabStatusMaintenance = "maintenance"
)

type Lab struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	LabID       string    `gorm:"size:40;uniqueIndex;not null" json:"labId"` // 展示编号，如 LAB-001
	Name        string    `gorm:"size:200;not null" json:"name"`
	Location    string    `gorm:"size:200" json:"location"`
	DeviceCount int       `gorm:"not null;default:0" json:"deviceCount"`
	Status      string    `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Lab) TableName() string { return LabTable }
