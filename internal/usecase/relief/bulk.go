package relief

import (
	"context"
	"fmt"

	"relief-fund-backend/internal/domain/complaint"
	"relief-fund-backend/internal/domain/member"
	"relief-fund-backend/internal/domain/uow"
)

// BulkRegister files a batch of complaints and initializes missing funds.
// Entries colliding with an existing (member, normalized title) are skipped,
// as are members that already have a fund; the result counts rows actually
// created. Any other error discards the whole batch.
func (u *Usecase) BulkRegister(ctx context.Context, entries []BulkEntry) (*BulkResult, error) {
	if len(entries) == 0 {
		return &BulkResult{}, nil
	}

	memberIDs := distinctMembers(entries)
	filings := make([]complaint.Filing, 0, len(entries))
	for _, e := range entries {
		filings = append(filings, complaint.Filing{
			MemberID: e.MemberID,
			Details: complaint.Details{
				Title:       e.Title,
				Description: e.Description,
				Location:    e.Location,
				Severity:    complaint.Severity(e.Severity),
			},
		})
	}

	out := &BulkResult{}

	err := u.run(ctx, WorkflowBulkRegister, u.timeouts.BulkTimeout, func(ctx context.Context, tx uow.Tx, p *progress) error {
		p.at("lookup_members")
		if err := checkMembers(ctx, tx, memberIDs); err != nil {
			return err
		}

		p.at("insert_complaints")
		created, err := tx.Complaints.FileBatch(ctx, filings)
		if err != nil {
			return err
		}

		p.at("init_funds")
		initialized, err := tx.Ledger.EnsureFunds(ctx, memberIDs)
		if err != nil {
			return err
		}

		out.ComplaintsCreated, out.FundsInitialized = created, initialized
		return nil
	})
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(memberIDs))
	for _, m := range memberIDs {
		keys = append(keys, fundKey(m))
	}
	u.invalidate(ctx, keys...)
	return out, nil
}

func distinctMembers(entries []BulkEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.MemberID]; ok {
			continue
		}
		seen[e.MemberID] = struct{}{}
		out = append(out, e.MemberID)
	}
	return out
}

// checkMembers fails on the first unknown or inactive member, in input order.
func checkMembers(ctx context.Context, tx uow.Tx, memberIDs []string) error {
	found, err := tx.Members.ListByMemberIDs(ctx, memberIDs)
	if err != nil {
		return err
	}
	byID := make(map[string]bool, len(found))
	for _, m := range found {
		byID[m.MemberID] = m.Active
	}
	for _, mid := range memberIDs {
		active, ok := byID[mid]
		if !ok {
			return fmt.Errorf("%w: %s", member.ErrNotFound, mid)
		}
		if !active {
			return fmt.Errorf("%w: %s", member.ErrInactive, mid)
		}
	}
	return nil
}
