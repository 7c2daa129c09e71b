package db

import (
	"context"

	"gorm.io/gorm"

	"relief-fund-backend/internal/domain/approval"
	"relief-fund-backend/internal/domain/complaint"
	"relief-fund-backend/internal/domain/fund"
	"relief-fund-backend/internal/domain/member"
	"relief-fund-backend/internal/domain/payment"
)

// AutoMigrate creates or updates the relief tables and their unique keys.
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&member.Member{},
		&complaint.Complaint{},
		&fund.ReliefFund{},
		&approval.Record{},
		&payment.Payment{},
	)
}
