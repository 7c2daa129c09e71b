package gormrepo

import (
	"context"
	"time"

	complaintDomain "relief-fund-backend/internal/domain/complaint"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const insertBatchSize = 500

type ComplaintRepository struct{ db *gorm.DB }

func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

func (r *ComplaintRepository) Create(ctx context.Context, c *complaintDomain.Complaint) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// CreateBatch skips rows hitting a unique key instead of failing the batch.
func (r *ComplaintRepository) CreateBatch(ctx context.Context, cs []*complaintDomain.Complaint) (int64, error) {
	if len(cs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(cs, insertBatchSize)
	return res.RowsAffected, res.Error
}

func (r *ComplaintRepository) GetByComplaintID(ctx context.Context, complaintID string) (*complaintDomain.Complaint, error) {
	return r.get(r.db.WithContext(ctx), complaintID)
}

func (r *ComplaintRepository) GetByComplaintIDForUpdate(ctx context.Context, complaintID string) (*complaintDomain.Complaint, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), complaintID)
}

func (r *ComplaintRepository) get(q *gorm.DB, complaintID string) (*complaintDomain.Complaint, error) {
	var out complaintDomain.Complaint
	if err := q.Where("complaint_id = ?", complaintID).First(&out).Error; err != nil {
		return nil, notFound(err, complaintDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ComplaintRepository) TransitionStatus(ctx context.Context, id uint64, from, to complaintDomain.Status, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&complaintDomain.Complaint{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "status_updated_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
