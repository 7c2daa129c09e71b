package http

import (
	"errors"
	"fmt"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"relief-fund-backend/internal/domain/approval"
	"relief-fund-backend/internal/domain/complaint"
	"relief-fund-backend/internal/domain/fund"
	"relief-fund-backend/internal/domain/member"
	"relief-fund-backend/internal/domain/uow"
	"relief-fund-backend/internal/usecase/relief"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"invalid amount", fund.ErrInvalidAmount, stdhttp.StatusUnprocessableEntity, fund.ErrInvalidAmount.Error()},
		{"invalid input", relief.ErrInvalidInput, stdhttp.StatusUnprocessableEntity, relief.ErrInvalidInput.Error()},
		{"member not found", fmt.Errorf("%w: %s", member.ErrNotFound, "m9"), stdhttp.StatusNotFound, "member not found: m9"},
		{"complaint not found", complaint.ErrNotFound, stdhttp.StatusNotFound, complaint.ErrNotFound.Error()},
		{"inactive member", member.ErrInactive, stdhttp.StatusUnprocessableEntity, member.ErrInactive.Error()},
		{
			"invalid transition",
			&complaint.TransitionError{From: complaint.StatusApproved, To: complaint.StatusApproved},
			stdhttp.StatusConflict,
			"invalid state transition: complaint is APPROVED, cannot move to APPROVED",
		},
		{"duplicate approval", approval.ErrDuplicate, stdhttp.StatusConflict, approval.ErrDuplicate.Error()},
		{
			"insufficient balance",
			&fund.InsufficientBalanceError{Available: decimal.RequireFromString("40"), Requested: decimal.RequireFromString("50.5")},
			stdhttp.StatusUnprocessableEntity,
			"insufficient relief fund balance: available ₹40.00, requested ₹50.50",
		},
		{"serialization conflict", uow.ErrSerializationConflict, stdhttp.StatusServiceUnavailable, "please retry"},
		{"timeout", uow.ErrTransactionTimeout, stdhttp.StatusServiceUnavailable, "please retry"},
		{"unknown", errors.New("disk on fire"), stdhttp.StatusInternalServerError, "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(stdhttp.MethodPost, "/", nil), rec)

			if err := writeError(c, tt.err); err != nil {
				t.Fatalf("writeError returned %v", err)
			}
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d", rec.Code, tt.code)
			}
			var er ErrorResponse
			decode(t, rec, &er)
			if er.Error != tt.message {
				t.Fatalf("error = %q, want %q", er.Error, tt.message)
			}
			if tt.code == stdhttp.StatusServiceUnavailable && rec.Header().Get("Retry-After") == "" {
				t.Fatalf("503 must carry Retry-After")
			}
		})
	}
}
