package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"relief-fund-backend/internal/domain/fund"
	"relief-fund-backend/internal/domain/uow"
)

func TestTranslateTxError(t *testing.T) {
	expired, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()

	cases := []struct {
		name string
		ctx  context.Context
		err  error
		want error
	}{
		{"pg serialization", context.Background(), &pgconn.PgError{Code: "40001"}, uow.ErrSerializationConflict},
		{"pg deadlock", context.Background(), &pgconn.PgError{Code: "40P01"}, uow.ErrSerializationConflict},
		{"mysql deadlock", context.Background(), &mysql.MySQLError{Number: 1213}, uow.ErrSerializationConflict},
		{"sqlite busy", context.Background(), sqlite3.Error{Code: sqlite3.ErrBusy}, uow.ErrSerializationConflict},
		{"pg lock timeout", context.Background(), &pgconn.PgError{Code: "55P03"}, uow.ErrTransactionTimeout},
		{"mysql lock wait", context.Background(), &mysql.MySQLError{Number: 1205}, uow.ErrTransactionTimeout},
		{"deadline", context.Background(), fmt.Errorf("commit: %w", context.DeadlineExceeded), uow.ErrTransactionTimeout},
		{"pg canceled under deadline", expired, &pgconn.PgError{Code: "57014"}, uow.ErrTransactionTimeout},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, translateTxError(tc.ctx, tc.err), tc.want)
		})
	}

	domainErr := &fund.InsufficientBalanceError{}
	assert.Same(t, domainErr, translateTxError(context.Background(), domainErr))
	assert.NoError(t, translateTxError(context.Background(), nil))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(&mysql.MySQLError{Number: 1062}))
	assert.True(t, isUniqueViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
	assert.False(t, isUniqueViolation(nil))
}

func TestNotFound(t *testing.T) {
	assert.ErrorIs(t, notFound(gorm.ErrRecordNotFound, fund.ErrNotFound), fund.ErrNotFound)
	other := errors.New("io")
	assert.Same(t, other, notFound(other, fund.ErrNotFound))
}
