package relief

import (
	"context"

	"relief-fund-backend/internal/observability/metrics"
)

// GetFund never feeds a workflow decision; workflows read the fund under lock.
func (u *Usecase) GetFund(ctx context.Context, memberID string) (*FundDTO, error) {
	var cached FundDTO
	if u.lookup(ctx, "fund", fundKey(memberID), &cached) {
		return &cached, nil
	}
	f, err := u.reads.Funds.GetByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	out := toFundDTO(f)
	u.store(ctx, fundKey(memberID), out)
	return out, nil
}

func (u *Usecase) GetComplaint(ctx context.Context, complaintID string) (*ComplaintDTO, error) {
	var cached ComplaintDTO
	if u.lookup(ctx, "complaint", complaintKey(complaintID), &cached) {
		return &cached, nil
	}
	c, err := u.reads.Complaints.GetByComplaintID(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	out := toComplaintDTO(c)
	u.store(ctx, complaintKey(complaintID), out)
	return out, nil
}

// ListPayments returns the member's disbursements, newest first.
func (u *Usecase) ListPayments(ctx context.Context, memberID string) ([]PaymentDTO, error) {
	var cached []PaymentDTO
	if u.lookup(ctx, "payments", paymentsKey(memberID), &cached) {
		return cached, nil
	}
	ps, err := u.reads.Payments.ListByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentDTO, 0, len(ps))
	for i := range ps {
		var complaintID string
		if ps[i].Complaint != nil {
			complaintID = ps[i].Complaint.ComplaintID
		}
		out = append(out, toPaymentDTO(&ps[i], complaintID))
	}
	u.store(ctx, paymentsKey(memberID), out)
	return out, nil
}

func (u *Usecase) lookup(ctx context.Context, entity, key string, dst any) bool {
	if u.cache == nil {
		return false
	}
	if u.cache.GetJSON(ctx, key, dst) {
		u.metrics.CacheLookup(entity, metrics.CacheHit)
		return true
	}
	u.metrics.CacheLookup(entity, metrics.CacheMiss)
	return false
}

func (u *Usecase) store(ctx context.Context, key string, v any) {
	if u.cache != nil {
		u.cache.SetJSON(ctx, key, v)
	}
}
