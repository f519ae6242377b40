package models

import "time"

const TransactionTable = "inv_transactions"

const (
	TxIssued            = "issued"
	TxPartiallyReturned = "partially_returned"
	TxReturned          = "returned"
)

// Transaction is one issue-and-return lifecycle of a quantity of a
// component handed to a recipient. quantity_issued is fixed at creation;
// quantity_returned + pending_quantity == quantity_issued holds after
// every mutation.
type Transaction struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	// 稳定外链 + 展示用冗余（name/uid 改名不影响 component_id）
	ComponentID   string `gorm:"type:uuid;not null;index" json:"componentId"`
	ComponentName string `gorm:"size:200;not null" json:"componentName"`
	ComponentUID  string `gorm:"size:60" json:"componentUid"`

	Lab   string `gorm:"size:200;not null" json:"lab"`
	LabID string `gorm:"type:uuid;not null;index" json:"labId"`

	IssuedTo string `gorm:"size:200;not null;index" json:"issuedTo"`
	Campus   string `gorm:"size:200" json:"campus"`
	Purpose  string `gorm:"size:255" json:"purpose"`

	QuantityIssued   int `gorm:"not null" json:"quantityIssued"`
	QuantityReturned int `gorm:"not null;default:0" json:"quantityReturned"`
	// 冗余存储，供“未结清”查询走索引
	PendingQuantity int `gorm:"not null;index" json:"pendingQuantity"`

	Status    string     `gorm:"size:30;not null;default:'issued';index" json:"status"`
	IssueDate time.Time  `gorm:"not null;index" json:"issueDate"`
	// 只在完全归还时写入；之后不再清除
	ReturnDate *time.Time `json:"returnDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Transaction) TableName() string { return TransactionTable }
