package gormrepo

import (
	"context"

	approvalDomain "relief-fund-backend/internal/domain/approval"

	"gorm.io/gorm"
)

type ApprovalRepository struct{ db *gorm.DB }

func NewApprovalRepository(db *gorm.DB) *ApprovalRepository { return &ApprovalRepository{db: db} }

func (r *ApprovalRepository) Create(ctx context.Context, a *approvalDomain.Record) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if isUniqueViolation(err) {
		return approvalDomain.ErrDuplicate
	}
	return err
}

func (r *ApprovalRepository) GetByComplaintID(ctx context.Context, complaintID uint64) (*approvalDomain.Record, error) {
	var out approvalDomain.Record
	if err := r.db.WithContext(ctx).Where("complaint_id = ?", complaintID).First(&out).Error; err != nil {
		return nil, notFound(err, approvalDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ApprovalRepository) GetByApprovalID(ctx context.Context, approvalID string) (*approvalDomain.Record, error) {
	var out approvalDomain.Record
	if err := r.db.WithContext(ctx).Where("approval_id = ?", approvalID).First(&out).Error; err != nil {
		return nil, notFound(err, approvalDomain.ErrNotFound)
	}
	return &out, nil
}
