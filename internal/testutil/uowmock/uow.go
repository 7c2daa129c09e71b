package uowmock

import (
	"context"
	"errors"
	"time"

	"relief-fund-backend/internal/domain/uow"
)

var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Unset WithinTxFn returns errUnimplemented.
type UoW struct {
	WithinTxFn func(ctx context.Context, opts uow.Options, fn func(ctx context.Context, tx uow.Tx) error) error

	// Calls records the options of every WithinTx call.
	Calls []uow.Options
}

func New() *UoW { return &UoW{} }

// Passthrough runs every body directly against repos, with no rollback.
func Passthrough(repos uow.Repos, now func() time.Time) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, _ uow.Options, fn func(context.Context, uow.Tx) error) error {
			return fn(ctx, repos.Handle(now))
		},
	}
}

func (m *UoW) WithWithinTx(fn func(context.Context, uow.Options, func(context.Context, uow.Tx) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, opts uow.Options, fn func(ctx context.Context, tx uow.Tx) error) error {
	m.Calls = append(m.Calls, opts)
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, opts, fn)
	}
	return errUnimplemented
}
