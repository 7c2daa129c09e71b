package fund

import (
	"context"
	"time"
)

type Repository interface {
	// Ensure is a get-or-create keyed by member id; concurrent callers never
	// produce a second row.
	Ensure(ctx context.Context, memberID string, at time.Time) (*ReliefFund, error)

	// EnsureMany creates zero-balance rows for the members lacking one and
	// returns how many were created.
	EnsureMany(ctx context.Context, memberIDs []string, at time.Time) (int64, error)

	// GetByMemberID returns ErrNotFound when absent.
	GetByMemberID(ctx context.Context, memberID string) (*ReliefFund, error)

	// GetByMemberIDForUpdate locks the row for the rest of the transaction.
	GetByMemberIDForUpdate(ctx context.Context, memberID string) (*ReliefFund, error)

	// UpdateBalances persists both counters and last_updated.
	UpdateBalances(ctx context.Context, f *ReliefFund) error
}
