package gormrepo

import (
	"context"
	"time"

	fundDomain "relief-fund-backend/internal/domain/fund"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FundRepository struct{ db *gorm.DB }

func NewFundRepository(db *gorm.DB) *FundRepository { return &FundRepository{db: db} }

var onMemberConflictDoNothing = clause.OnConflict{
	Columns:   []clause.Column{{Name: "member_id"}},
	DoNothing: true,
}

func (r *FundRepository) Ensure(ctx context.Context, memberID string, at time.Time) (*fundDomain.ReliefFund, error) {
	row := fundDomain.NewEmpty(memberID, at)
	if err := r.db.WithContext(ctx).Clauses(onMemberConflictDoNothing).Create(row).Error; err != nil {
		return nil, err
	}
	// re-read: on conflict the insert wrote nothing and row.ID is unset
	return r.GetByMemberID(ctx, memberID)
}

func (r *FundRepository) EnsureMany(ctx context.Context, memberIDs []string, at time.Time) (int64, error) {
	if len(memberIDs) == 0 {
		return 0, nil
	}
	rows := make([]*fundDomain.ReliefFund, 0, len(memberIDs))
	for _, m := range memberIDs {
		rows = append(rows, fundDomain.NewEmpty(m, at))
	}
	res := r.db.WithContext(ctx).Clauses(onMemberConflictDoNothing).CreateInBatches(rows, insertBatchSize)
	return res.RowsAffected, res.Error
}

func (r *FundRepository) GetByMemberID(ctx context.Context, memberID string) (*fundDomain.ReliefFund, error) {
	return r.get(r.db.WithContext(ctx), memberID)
}

func (r *FundRepository) GetByMemberIDForUpdate(ctx context.Context, memberID string) (*fundDomain.ReliefFund, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), memberID)
}

func (r *FundRepository) get(q *gorm.DB, memberID string) (*fundDomain.ReliefFund, error) {
	var out fundDomain.ReliefFund
	if err := q.Where("member_id = ?", memberID).First(&out).Error; err != nil {
		return nil, notFound(err, fundDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *FundRepository) UpdateBalances(ctx context.Context, f *fundDomain.ReliefFund) error {
	res := r.db.WithContext(ctx).
		Model(&fundDomain.ReliefFund{}).
		Where("id = ?", f.ID).
		Updates(map[string]any{
			"total_allocated":  f.TotalAllocated,
			"amount_dispersed": f.AmountDispersed,
			"last_updated":     f.LastUpdated,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fundDomain.ErrNotFound
	}
	return nil
}
