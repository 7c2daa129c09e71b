package fund

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Ledger exposes only balance-preserving mutations of the per-member fund.
// It must be built on a repository bound to an open unit of work: nothing
// here commits.
type Ledger struct {
	repo Repository
	now  func() time.Time
}

func NewLedger(repo Repository, now func() time.Time) *Ledger {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Ledger{repo: repo, now: now}
}

func (l *Ledger) EnsureFund(ctx context.Context, memberID string) (*ReliefFund, error) {
	return l.repo.Ensure(ctx, memberID, l.now())
}

// EnsureFunds initializes funds for the distinct members given.
func (l *Ledger) EnsureFunds(ctx context.Context, memberIDs []string) (int64, error) {
	seen := make(map[string]struct{}, len(memberIDs))
	distinct := make([]string, 0, len(memberIDs))
	for _, m := range memberIDs {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		distinct = append(distinct, m)
	}
	if len(distinct) == 0 {
		return 0, nil
	}
	return l.repo.EnsureMany(ctx, distinct, l.now())
}

// Fund reads the row under lock. Fails with ErrNotFound.
func (l *Ledger) Fund(ctx context.Context, memberID string) (*ReliefFund, error) {
	return l.repo.GetByMemberIDForUpdate(ctx, memberID)
}

func (l *Ledger) IncreaseAllocation(ctx context.Context, memberID string, amount decimal.Decimal) (*ReliefFund, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	f, err := l.repo.GetByMemberIDForUpdate(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if err := f.Allocate(amount, l.now()); err != nil {
		return nil, err
	}
	return f, l.persist(ctx, f)
}

func (l *Ledger) AvailableBalance(ctx context.Context, memberID string) (decimal.Decimal, error) {
	f, err := l.repo.GetByMemberIDForUpdate(ctx, memberID)
	if err != nil {
		return decimal.Zero, err
	}
	return f.Available(), nil
}

// RecordDisbursement fails with *InsufficientBalanceError when amount exceeds
// the available balance read inside the current unit of work.
func (l *Ledger) RecordDisbursement(ctx context.Context, memberID string, amount decimal.Decimal) (*ReliefFund, error) {
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}
	f, err := l.repo.GetByMemberIDForUpdate(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if err := f.Disburse(amount, l.now()); err != nil {
		return nil, err
	}
	return f, l.persist(ctx, f)
}

func (l *Ledger) persist(ctx context.Context, f *ReliefFund) error {
	if err := f.CheckInvariant(); err != nil {
		return err
	}
	return l.repo.UpdateBalances(ctx, f)
}
