package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"relief-fund-backend/internal/domain/complaint"
)

var (
	ErrNotFound      = errors.New("payment not found")
	ErrInvalidMethod = errors.New("unsupported payment method")
)

type Status string

// Only completed disbursements are modelled; there is no pending state.
const StatusCompleted Status = "COMPLETED"

type Method string

const (
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodUPI          Method = "UPI"
	MethodCheque       Method = "CHEQUE"
	MethodCash         Method = "CASH"
)

// ParseMethod defaults an empty method to BANK_TRANSFER.
func ParseMethod(raw string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(raw)))
	switch m {
	case "":
		return MethodBankTransfer, nil
	case MethodBankTransfer, MethodUPI, MethodCheque, MethodCash:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidMethod, raw)
}

// Table: payments. Immutable once written.
type Payment struct {
	ID            uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	PaymentID     string          `gorm:"column:payment_id;size:32;not null;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	MemberID      string          `gorm:"column:member_id;size:32;not null;index:idx_payments_member" json:"member_id"`
	ComplaintID   uint64          `gorm:"column:complaint_id;not null;index:idx_payments_complaint" json:"-"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Status        Status          `gorm:"column:status;size:16;not null" json:"status"`
	PaymentMethod Method          `gorm:"column:payment_method;size:32;not null" json:"payment_method"`
	TransactionID string          `gorm:"column:transaction_id;size:64;not null;uniqueIndex:ux_payments_transaction_id" json:"transaction_id"`
	ProcessedAt   time.Time       `gorm:"column:processed_at;not null" json:"processed_at"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Complaint *complaint.Complaint `gorm:"foreignKey:ComplaintID" json:"-"`
}

func (Payment) TableName() string { return "payments" }
