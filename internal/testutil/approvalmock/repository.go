package approvalmock

import (
	"context"

	domain "relief-fund-backend/internal/domain/approval"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies approval.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, r *domain.Record) error
	GetByComplaintIDFn func(ctx context.Context, complaintID uint64) (*domain.Record, error)
	GetByApprovalIDFn  func(ctx context.Context, approvalID string) (*domain.Record, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Record) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByComplaintID(ctx context.Context, complaintID uint64) (*domain.Record, error) {
	if m.GetByComplaintIDFn != nil {
		return m.GetByComplaintIDFn(ctx, complaintID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByApprovalID(ctx context.Context, approvalID string) (*domain.Record, error) {
	if m.GetByApprovalIDFn != nil {
		return m.GetByApprovalIDFn(ctx, approvalID)
	}
	return nil, domain.ErrNotFound
}
