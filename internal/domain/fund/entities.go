package fund

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound            = errors.New("relief fund not found")
	ErrInvalidAmount       = errors.New("amount must be a positive value with at most 2 decimal places")
	ErrInsufficientBalance = errors.New("insufficient relief fund balance")
	ErrInvariantViolated   = errors.New("relief fund invariant violated")
)

// InsufficientBalanceError carries the figures behind a rejected disbursement.
// It matches ErrInsufficientBalance.
type InsufficientBalanceError struct {
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient relief fund balance: available %s, requested %s",
		e.Available.StringFixed(2), e.Requested.StringFixed(2))
}

func (e *InsufficientBalanceError) Is(target error) bool { return target == ErrInsufficientBalance }

// Table: relief_funds. One row per member.
// Invariant after every commit: 0 <= amount_dispersed <= total_allocated.
type ReliefFund struct {
	ID              uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	MemberID        string          `gorm:"column:member_id;size:32;not null;uniqueIndex:ux_relief_funds_member_id" json:"member_id"`
	TotalAllocated  decimal.Decimal `gorm:"column:total_allocated;type:decimal(18,2);not null;default:0;check:chk_relief_funds_allocated_nonneg,total_allocated >= 0" json:"total_allocated"`
	AmountDispersed decimal.Decimal `gorm:"column:amount_dispersed;type:decimal(18,2);not null;default:0;check:chk_relief_funds_dispersed_le_allocated,amount_dispersed >= 0 AND amount_dispersed <= total_allocated" json:"amount_dispersed"`
	LastUpdated     time.Time       `gorm:"column:last_updated;not null" json:"last_updated"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ReliefFund) TableName() string { return "relief_funds" }

// NewEmpty is the zero-balance row created lazily for a member.
func NewEmpty(memberID string, at time.Time) *ReliefFund {
	return &ReliefFund{
		MemberID:        memberID,
		TotalAllocated:  decimal.Zero,
		AmountDispersed: decimal.Zero,
		LastUpdated:     at,
	}
}

// Available is total_allocated - amount_dispersed.
func (f *ReliefFund) Available() decimal.Decimal {
	return f.TotalAllocated.Sub(f.AmountDispersed)
}

func (f *ReliefFund) Allocate(amount decimal.Decimal, at time.Time) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	f.TotalAllocated = f.TotalAllocated.Add(amount)
	f.LastUpdated = at
	return nil
}

func (f *ReliefFund) Disburse(amount decimal.Decimal, at time.Time) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if avail := f.Available(); amount.GreaterThan(avail) {
		return &InsufficientBalanceError{Available: avail, Requested: amount}
	}
	f.AmountDispersed = f.AmountDispersed.Add(amount)
	f.LastUpdated = at
	return nil
}

// CheckInvariant verifies 0 <= dispersed <= allocated.
func (f *ReliefFund) CheckInvariant() error {
	if f.AmountDispersed.IsNegative() || f.TotalAllocated.IsNegative() || f.AmountDispersed.GreaterThan(f.TotalAllocated) {
		return fmt.Errorf("%w: member %s allocated=%s dispersed=%s",
			ErrInvariantViolated, f.MemberID, f.TotalAllocated, f.AmountDispersed)
	}
	return nil
}

// ValidateAmount accepts strictly positive amounts with at most 2 decimal places.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() || !amount.Equal(amount.Round(2)) {
		return ErrInvalidAmount
	}
	return nil
}
