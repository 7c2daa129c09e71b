package relief

import (
	"errors"

	"relief-fund-backend/internal/domain/approval"
	"relief-fund-backend/internal/domain/complaint"
	"relief-fund-backend/internal/domain/fund"
	"relief-fund-backend/internal/domain/member"
	"relief-fund-backend/internal/domain/payment"
	"relief-fund-backend/internal/domain/uow"
)

// ErrInvalidInput rejects requests that fail checks done before any unit of work.
var ErrInvalidInput = errors.New("invalid input")

type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindNotFound     ErrorKind = "not_found"
	KindBusinessRule ErrorKind = "business_rule"
	KindConcurrency  ErrorKind = "concurrency"
	KindUnknown      ErrorKind = "unknown"
)

// KindOf classifies a workflow error. Out-of-sequence requests (approving an
// approved complaint) count as validation. Validation and business-rule
// failures are terminal; concurrency failures may be retried after deduplication.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, fund.ErrInvalidAmount),
		errors.Is(err, complaint.ErrInvalidDetails),
		errors.Is(err, payment.ErrInvalidMethod),
		errors.Is(err, complaint.ErrInvalidTransition),
		errors.Is(err, approval.ErrDuplicate):
		return KindValidation
	case errors.Is(err, member.ErrNotFound),
		errors.Is(err, complaint.ErrNotFound),
		errors.Is(err, fund.ErrNotFound),
		errors.Is(err, approval.ErrNotFound),
		errors.Is(err, payment.ErrNotFound):
		return KindNotFound
	case errors.Is(err, member.ErrInactive),
		errors.Is(err, fund.ErrInsufficientBalance):
		return KindBusinessRule
	case errors.Is(err, uow.ErrSerializationConflict),
		errors.Is(err, uow.ErrTransactionTimeout):
		return KindConcurrency
	}
	return KindUnknown
}

// Retryable reports transient store aborts. Workflows B and D are not
// idempotent, so callers must deduplicate before retrying them.
func Retryable(err error) bool {
	return KindOf(err) == KindConcurrency
}
