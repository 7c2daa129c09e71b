package complaintmock

import (
	"context"
	"time"

	domain "relief-fund-backend/internal/domain/complaint"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies complaint.Repository.
type Repo struct {
	CreateFn                    func(ctx context.Context, c *domain.Complaint) error
	CreateBatchFn               func(ctx context.Context, cs []*domain.Complaint) (int64, error)
	GetByComplaintIDFn          func(ctx context.Context, complaintID string) (*domain.Complaint, error)
	GetByComplaintIDForUpdateFn func(ctx context.Context, complaintID string) (*domain.Complaint, error)
	TransitionStatusFn          func(ctx context.Context, id uint64, from, to domain.Status, at time.Time) (bool, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Complaint) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) CreateBatch(ctx context.Context, cs []*domain.Complaint) (int64, error) {
	if m.CreateBatchFn != nil {
		return m.CreateBatchFn(ctx, cs)
	}
	return int64(len(cs)), nil
}

func (m *Repo) GetByComplaintID(ctx context.Context, complaintID string) (*domain.Complaint, error) {
	if m.GetByComplaintIDFn != nil {
		return m.GetByComplaintIDFn(ctx, complaintID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByComplaintIDForUpdate(ctx context.Context, complaintID string) (*domain.Complaint, error) {
	if m.GetByComplaintIDForUpdateFn != nil {
		return m.GetByComplaintIDForUpdateFn(ctx, complaintID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) TransitionStatus(ctx context.Context, id uint64, from, to domain.Status, at time.Time) (bool, error) {
	if m.TransitionStatusFn != nil {
		return m.TransitionStatusFn(ctx, id, from, to, at)
	}
	return true, nil
}
