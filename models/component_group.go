package models

import "time"

const GroupTable = "inv_component_groups"

// DefaultGroupColor is assigned to groups auto-created during import.
const DefaultGroupColor = "#6B7280"

type ComponentGroup struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string `gorm:"size:120;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Color       string `gorm:"size:20;not null;default:'#6B7280'" json:"color"`

	// lab_id 为空 = 全局共享分组
	LabID       *string `gorm:"type:uuid;index" json:"labId,omitempty"`
	LabName     string  `gorm:"size:200" json:"labName,omitempty"`
	AutoCreated bool    `gorm:"not null;default:false" json:"autoCreated"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ComponentGroup) TableName() string { return GroupTable }
