package relief

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"relief-fund-backend/internal/domain/approval"
	"relief-fund-backend/internal/domain/complaint"
	"relief-fund-backend/internal/domain/fund"
	"relief-fund-backend/internal/domain/uow"
	"relief-fund-backend/pkg/id"
)

// ApproveComplaint moves a FILED complaint to APPROVED, writes its approval
// record and credits the member's fund, all in one unit of work. It is not
// idempotent: a second call fails with complaint.ErrInvalidTransition.
func (u *Usecase) ApproveComplaint(ctx context.Context, in ApproveInput) (*ApprovalDTO, error) {
	if err := fund.ValidateAmount(in.Amount); err != nil {
		return nil, u.rejectEarly(ctx, WorkflowApproveComplaint, err)
	}
	if strings.TrimSpace(in.ApproverID) == "" {
		return nil, u.rejectEarly(ctx, WorkflowApproveComplaint, fmt.Errorf("%w: approver id is required", ErrInvalidInput))
	}

	var out *ApprovalDTO
	var approved *complaint.Complaint

	err := u.run(ctx, WorkflowApproveComplaint, u.timeouts.Timeout, func(ctx context.Context, tx uow.Tx, p *progress) error {
		p.at("approve")
		c, err := tx.Complaints.Approve(ctx, in.ComplaintID)
		if err != nil {
			return err
		}

		p.at("record_approval")
		rec := &approval.Record{
			ApprovalID:      id.NewID32(),
			ComplaintID:     c.ID,
			ApprovedByID:    strings.TrimSpace(in.ApproverID),
			AmountAllocated: in.Amount,
			ApprovalDate:    u.now(),
		}
		if err := tx.Approvals.Create(ctx, rec); err != nil {
			if errors.Is(err, approval.ErrDuplicate) {
				return &complaint.TransitionError{From: complaint.StatusApproved, To: complaint.StatusApproved}
			}
			return err
		}

		p.at("increase_allocation")
		if _, err := tx.Ledger.IncreaseAllocation(ctx, c.MemberID, in.Amount); err != nil {
			return err
		}

		approved = c
		out = toApprovalDTO(rec, c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.invalidate(ctx, complaintKey(approved.ComplaintID), fundKey(approved.MemberID))
	return out, nil
}
