package relief

import (
	"context"

	"relief-fund-backend/internal/domain/complaint"
	"relief-fund-backend/internal/domain/uow"
)

// FileComplaint records a FILED complaint for an active member and makes sure
// the member has a fund row. Nothing is kept if any step fails.
func (u *Usecase) FileComplaint(ctx context.Context, in FileComplaintInput) (*ComplaintDTO, error) {
	var out *complaint.Complaint

	err := u.run(ctx, WorkflowFileComplaint, u.timeouts.Timeout, func(ctx context.Context, tx uow.Tx, p *progress) error {
		p.at("lookup_member")
		m, err := tx.Members.GetByMemberID(ctx, in.MemberID)
		if err != nil {
			return err
		}
		if err := m.CheckActive(); err != nil {
			return err
		}

		p.at("file")
		c, err := tx.Complaints.File(ctx, m.MemberID, complaint.Details{
			Title:       in.Title,
			Description: in.Description,
			Location:    in.Location,
			Severity:    complaint.Severity(in.Severity),
		})
		if err != nil {
			return err
		}

		p.at("ensure_fund")
		if _, err := tx.Ledger.EnsureFund(ctx, m.MemberID); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.invalidate(ctx, fundKey(out.MemberID))
	return toComplaintDTO(out), nil
}
