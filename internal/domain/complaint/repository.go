package complaint

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, c *Complaint) error

	// CreateBatch inserts in one set-oriented write, skipping rows that collide
	// with an existing (member_id, import_key). Returns the rows actually inserted.
	CreateBatch(ctx context.Context, cs []*Complaint) (int64, error)

	// GetByComplaintID returns ErrNotFound when absent.
	GetByComplaintID(ctx context.Context, complaintID string) (*Complaint, error)

	// GetByComplaintIDForUpdate also takes a row lock where the store supports one.
	GetByComplaintIDForUpdate(ctx context.Context, complaintID string) (*Complaint, error)

	// TransitionStatus updates the status only if it still equals from.
	// Reports false when another writer changed it first.
	TransitionStatus(ctx context.Context, id uint64, from, to Status, at time.Time) (bool, error)
}
