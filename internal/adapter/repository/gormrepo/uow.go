package gormrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"relief-fund-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormUoW(db *gorm.DB) *GormUoW {
	return &GormUoW{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// NewRepos binds every repository to db, which may be a transaction.
func NewRepos(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Members:    NewMemberRepository(db),
		Complaints: NewComplaintRepository(db),
		Funds:      NewFundRepository(db),
		Approvals:  NewApprovalRepository(db),
		Payments:   NewPaymentRepository(db),
	}
}

// WithinTx runs fn inside one transaction at the strictest isolation the
// dialect offers. The execution bound covers commit as well.
func (u *GormUoW) WithinTx(ctx context.Context, opts uow.Options, fn func(ctx context.Context, tx uow.Tx) error) error {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}
	dialect := u.db.Dialector.Name()

	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if stmt := lockWaitStatement(dialect, opts.LockWait); stmt != "" {
			if err := tx.Exec(stmt).Error; err != nil {
				return err
			}
		}
		return fn(ctx, NewRepos(tx).Handle(u.now))
	}, txOptions(dialect))

	return translateTxError(ctx, err)
}

// SQLite transactions are always serializable; it keeps the driver default.
func txOptions(dialect string) *sql.TxOptions {
	if dialect == "sqlite" {
		return &sql.TxOptions{}
	}
	return &sql.TxOptions{Isolation: sql.LevelSerializable}
}

// lockWaitStatement returns a transaction scoped lock wait. Only PostgreSQL
// has one; MySQL and SQLite take theirs from the DSN so pooled connections
// never keep a per-workflow session setting.
func lockWaitStatement(dialect string, wait time.Duration) string {
	ms := wait.Milliseconds()
	if ms <= 0 || dialect != "postgres" {
		return ""
	}
	return fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", ms)
}
