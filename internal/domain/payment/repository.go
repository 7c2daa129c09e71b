package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) error

	// GetByTransactionID returns ErrNotFound when absent.
	GetByTransactionID(ctx context.Context, transactionID string) (*Payment, error)

	// ListByMemberID returns the member's payments newest first, with Complaint loaded.
	ListByMemberID(ctx context.Context, memberID string) ([]Payment, error)
}
