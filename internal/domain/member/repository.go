package member

import "context"

// Reader is read-only: membership is never mutated by the relief workflows.
type Reader interface {
	// GetByMemberID returns ErrNotFound when the member does not exist.
	GetByMemberID(ctx context.Context, memberID string) (*Member, error)

	// ListByMemberIDs returns the members found; missing ids are simply absent.
	ListByMemberIDs(ctx context.Context, memberIDs []string) ([]Member, error)
}
