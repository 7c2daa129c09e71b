package uow

import (
	"context"
	"errors"
	"time"

	"relief-fund-backend/internal/domain/approval"
	"relief-fund-backend/internal/domain/complaint"
	"relief-fund-backend/internal/domain/fund"
	"relief-fund-backend/internal/domain/member"
	"relief-fund-backend/internal/domain/payment"
)

var (
	// ErrSerializationConflict: the store aborted the unit of work to keep
	// serializable ordering. Safe to retry only for re-evaluating workflows.
	ErrSerializationConflict = errors.New("transaction serialization conflict")
	// ErrTransactionTimeout: lock wait or execution bound exceeded; nothing was kept.
	ErrTransactionTimeout = errors.New("transaction timed out")
)

// Repos are the repositories bound to one open transaction.
type Repos struct {
	Members    member.Reader
	Complaints complaint.Repository
	Funds      fund.Repository
	Approvals  approval.Repository
	Payments   payment.Repository
}

// Tx is the typed handle a unit-of-work body receives. It exposes the state
// machine and ledger rather than raw table access.
type Tx struct {
	Members    member.Reader
	Complaints *complaint.Machine
	Ledger     *fund.Ledger
	Approvals  approval.Repository
	Payments   payment.Repository
}

// Handle wraps tx-bound repositories into the workflow handle.
func (r Repos) Handle(now func() time.Time) Tx {
	return Tx{
		Members:    r.Members,
		Complaints: complaint.NewMachine(r.Complaints, now),
		Ledger:     fund.NewLedger(r.Funds, now),
		Approvals:  r.Approvals,
		Payments:   r.Payments,
	}
}

// Options bound a single unit of work.
type Options struct {
	// Name labels the workflow in logs.
	Name string
	// LockWait caps how long a statement may wait for a row lock. Stores
	// without a transaction scoped setting take it from their DSN instead.
	LockWait time.Duration
	// Timeout caps the whole unit of work, commit included.
	Timeout time.Duration
}

type UnitOfWork interface {
	// WithinTx runs fn in one serializable transaction. fn's ctx carries the
	// execution deadline. Any error discards every write; domain errors come
	// back unchanged, store conflicts and timeouts as ErrSerializationConflict
	// and ErrTransactionTimeout.
	WithinTx(ctx context.Context, opts Options, fn func(ctx context.Context, tx Tx) error) error
}
