package membermock

import (
	"context"

	domain "relief-fund-backend/internal/domain/member"
)

var _ domain.Reader = (*Reader)(nil)

// Reader is a function-backed mock of member.Reader. Unset lookups report
// member.ErrNotFound.
type Reader struct {
	GetByMemberIDFn   func(ctx context.Context, memberID string) (*domain.Member, error)
	ListByMemberIDsFn func(ctx context.Context, memberIDs []string) ([]domain.Member, error)
}

// Active builds a Reader that knows the given members as active.
func Active(memberIDs ...string) *Reader {
	known := make(map[string]domain.Member, len(memberIDs))
	for i, m := range memberIDs {
		known[m] = domain.Member{ID: uint64(i + 1), MemberID: m, Active: true}
	}
	return &Reader{
		GetByMemberIDFn: func(_ context.Context, memberID string) (*domain.Member, error) {
			if m, ok := known[memberID]; ok {
				return &m, nil
			}
			return nil, domain.ErrNotFound
		},
		ListByMemberIDsFn: func(_ context.Context, ids []string) ([]domain.Member, error) {
			var out []domain.Member
			for _, id := range ids {
				if m, ok := known[id]; ok {
					out = append(out, m)
				}
			}
			return out, nil
		},
	}
}

func (m *Reader) GetByMemberID(ctx context.Context, memberID string) (*domain.Member, error) {
	if m.GetByMemberIDFn != nil {
		return m.GetByMemberIDFn(ctx, memberID)
	}
	return nil, domain.ErrNotFound
}

func (m *Reader) ListByMemberIDs(ctx context.Context, memberIDs []string) ([]domain.Member, error) {
	if m.ListByMemberIDsFn != nil {
		return m.ListByMemberIDsFn(ctx, memberIDs)
	}
	return nil, nil
}
