package approval

import "context"

type Repository interface {
	// Create a new record (DB uniqueness ensures at most one per complaint)
	Create(ctx context.Context, r *Record) error

	// GetByComplaintID looks up by the numeric complaint FK. Returns ErrNotFound.
	GetByComplaintID(ctx context.Context, complaintID uint64) (*Record, error)

	// GetByApprovalID looks up by public approval_id. Returns ErrNotFound.
	GetByApprovalID(ctx context.Context, approvalID string) (*Record, error)
}
