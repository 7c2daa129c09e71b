package gormrepo

import (
	"context"

	paymentDomain "relief-fund-backend/internal/domain/payment"

	"gorm.io/gorm"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Omit("Complaint").Create(p).Error
}

func (r *PaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*paymentDomain.Payment, error) {
	var out paymentDomain.Payment
	if err := r.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&out).Error; err != nil {
		return nil, notFound(err, paymentDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *PaymentRepository) ListByMemberID(ctx context.Context, memberID string) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	err := r.db.WithContext(ctx).
		Preload("Complaint").
		Where("member_id = ?", memberID).
		Order("processed_at DESC, id DESC").
		Find(&out).Error
	return out, err
}
