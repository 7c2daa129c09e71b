package relief

import (
	"context"

	"relief-fund-backend/internal/domain/complaint"
	"relief-fund-backend/internal/domain/fund"
	"relief-fund-backend/internal/domain/payment"
	"relief-fund-backend/internal/domain/uow"
	"relief-fund-backend/pkg/id"
)

// ProcessPayment disburses amount from the member's fund against one of the
// member's complaints. The balance is read under the fund row lock, so two
// concurrent payments cannot both spend the same allocation: the loser either
// waits and sees the new balance or is aborted with a serialization conflict.
func (u *Usecase) ProcessPayment(ctx context.Context, in ProcessPaymentInput) (*PaymentDTO, error) {
	if err := fund.ValidateAmount(in.Amount); err != nil {
		return nil, u.rejectEarly(ctx, WorkflowProcessPayment, err)
	}
	method, err := payment.ParseMethod(in.Method)
	if err != nil {
		return nil, u.rejectEarly(ctx, WorkflowProcessPayment, err)
	}

	var out PaymentDTO

	err = u.run(ctx, WorkflowProcessPayment, u.timeouts.Timeout, func(ctx context.Context, tx uow.Tx, p *progress) error {
		p.at("read_fund")
		f, err := tx.Ledger.Fund(ctx, in.MemberID)
		if err != nil {
			return err
		}

		p.at("check_complaint")
		c, err := tx.Complaints.Get(ctx, in.ComplaintID)
		if err != nil {
			return err
		}
		if c.MemberID != f.MemberID {
			return complaint.ErrNotFound
		}

		p.at("check_balance")
		if available := f.Available(); in.Amount.GreaterThan(available) {
			return &fund.InsufficientBalanceError{Available: available, Requested: in.Amount}
		}

		p.at("create_payment")
		pay := &payment.Payment{
			PaymentID:     id.NewID32(),
			MemberID:      f.MemberID,
			ComplaintID:   c.ID,
			Amount:        in.Amount,
			Status:        payment.StatusCompleted,
			PaymentMethod: method,
			TransactionID: id.NewTransactionID(),
			ProcessedAt:   u.now(),
		}
		if err := tx.Payments.Create(ctx, pay); err != nil {
			return err
		}

		p.at("record_disbursement")
		if _, err := tx.Ledger.RecordDisbursement(ctx, f.MemberID, in.Amount); err != nil {
			return err
		}

		out = toPaymentDTO(pay, c.ComplaintID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.invalidate(ctx, fundKey(out.MemberID), paymentsKey(out.MemberID))
	return &out, nil
}
