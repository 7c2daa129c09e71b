package approval

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound  = errors.New("approval record not found")
	ErrDuplicate = errors.New("complaint already has an approval record")
)

// Table: approval_records. Immutable audit entry, at most one per complaint.
type Record struct {
	// Internal numeric PK
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	ApprovalID string `gorm:"column:approval_id;size:32;not null;uniqueIndex:ux_approval_records_approval_id" json:"approval_id"`
	// FK to complaints.id (numeric); unique so a complaint is approved once
	ComplaintID     uint64          `gorm:"column:complaint_id;not null;uniqueIndex:ux_approval_records_complaint_id" json:"-"`
	ApprovedByID    string          `gorm:"column:approved_by_id;size:32;not null" json:"approved_by_id"`
	AmountAllocated decimal.Decimal `gorm:"column:amount_allocated;type:decimal(18,2);not null" json:"amount_allocated"`
	ApprovalDate    time.Time       `gorm:"column:approval_date;not null" json:"approval_date"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Record) TableName() string { return "approval_records" }
