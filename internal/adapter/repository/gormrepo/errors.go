package gormrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"relief-fund-backend/internal/domain/uow"
)

// translateTxError maps store-level aborts onto the unit-of-work error kinds.
// Anything else, domain errors included, is returned as is.
func translateTxError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case isSerializationFailure(err):
		return fmt.Errorf("%w: %v", uow.ErrSerializationConflict, err)
	case isLockTimeout(err), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", uow.ErrTransactionTimeout, err)
	case errors.Is(ctx.Err(), context.DeadlineExceeded) && abortedByDeadline(err):
		return fmt.Errorf("%w: %v", uow.ErrTransactionTimeout, err)
	}
	return err
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func isSerializationFailure(err error) bool {
	if hasPGCode(err, "40001") || hasPGCode(err, "40P01") {
		return true
	}
	if hasMySQLCode(err, 1213) {
		return true
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked
	}
	return strings.Contains(err.Error(), "database is locked")
}

func isLockTimeout(err error) bool {
	return hasPGCode(err, "55P03") || hasMySQLCode(err, 1205)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || hasPGCode(err, "23505") || hasMySQLCode(err, 1062) {
		return true
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// abortedByDeadline recognizes the shapes a context cancellation takes once
// it reaches the driver.
func abortedByDeadline(err error) bool {
	if errors.Is(err, sql.ErrTxDone) || errors.Is(err, context.Canceled) || hasPGCode(err, "57014") {
		return true
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.Code == sqlite3.ErrInterrupt
	}
	return false
}

func hasPGCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

func hasMySQLCode(err error, number uint16) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == number
	}
	return false
}
