package models

import "time"

const ComponentTable = "inv_components"

const (
	StatusAvailable  = "available"
	StatusLowStock   = "low_stock"
	StatusOutOfStock = "out_of_stock"
)

type Component struct {
	ID   string `gorm:"type:uuid;primaryKey" json:"id"`
	UID  string `gorm:"size:60;uniqueIndex;not null" json:"uid"` // COM<labcode>-NNN
	Name string `gorm:"size:200;not null;index:idx_component_name_lab" json:"name"`

	Category string `gorm:"size:120;not null" json:"category"`

	// lab 名称冗余一份，列表页免 join
	Lab   string `gorm:"size:200;not null" json:"lab"`
	LabID string `gorm:"type:uuid;not null;index:idx_component_name_lab" json:"labId"`

	GroupID   *string `gorm:"type:uuid;index" json:"groupId,omitempty"`
	GroupName string  `gorm:"size:120" json:"groupName,omitempty"`

	InitialQuantity int    `gorm:"not null" json:"initialQuantity"`
	CurrentQuantity int    `gorm:"not null" json:"currentQuantity"`
	Status          string `gorm:"size:20;not null;default:'available';index" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Component) TableName() string { return ComponentTable }
