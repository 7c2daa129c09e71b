package gormrepo

import (
	"context"

	memberDomain "relief-fund-backend/internal/domain/member"

	"gorm.io/gorm"
)

type MemberRepository struct{ db *gorm.DB }

func NewMemberRepository(db *gorm.DB) *MemberRepository { return &MemberRepository{db: db} }

func (r *MemberRepository) GetByMemberID(ctx context.Context, memberID string) (*memberDomain.Member, error) {
	var out memberDomain.Member
	if err := r.db.WithContext(ctx).Where("member_id = ?", memberID).First(&out).Error; err != nil {
		return nil, notFound(err, memberDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *MemberRepository) ListByMemberIDs(ctx context.Context, memberIDs []string) ([]memberDomain.Member, error) {
	var out []memberDomain.Member
	if len(memberIDs) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Where("member_id IN ?", memberIDs).Find(&out).Error
	return out, err
}
