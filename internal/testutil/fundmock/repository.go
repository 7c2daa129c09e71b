package fundmock

import (
	"context"
	"sync"
	"time"

	domain "relief-fund-backend/internal/domain/fund"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies fund.Repository.
type Repo struct {
	EnsureFn                 func(ctx context.Context, memberID string, at time.Time) (*domain.ReliefFund, error)
	EnsureManyFn             func(ctx context.Context, memberIDs []string, at time.Time) (int64, error)
	GetByMemberIDFn          func(ctx context.Context, memberID string) (*domain.ReliefFund, error)
	GetByMemberIDForUpdateFn func(ctx context.Context, memberID string) (*domain.ReliefFund, error)
	UpdateBalancesFn         func(ctx context.Context, f *domain.ReliefFund) error
}

func (m *Repo) Ensure(ctx context.Context, memberID string, at time.Time) (*domain.ReliefFund, error) {
	if m.EnsureFn != nil {
		return m.EnsureFn(ctx, memberID, at)
	}
	return domain.NewEmpty(memberID, at), nil
}

func (m *Repo) EnsureMany(ctx context.Context, memberIDs []string, at time.Time) (int64, error) {
	if m.EnsureManyFn != nil {
		return m.EnsureManyFn(ctx, memberIDs, at)
	}
	return int64(len(memberIDs)), nil
}

func (m *Repo) GetByMemberID(ctx context.Context, memberID string) (*domain.ReliefFund, error) {
	if m.GetByMemberIDFn != nil {
		return m.GetByMemberIDFn(ctx, memberID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) GetByMemberIDForUpdate(ctx context.Context, memberID string) (*domain.ReliefFund, error) {
	if m.GetByMemberIDForUpdateFn != nil {
		return m.GetByMemberIDForUpdateFn(ctx, memberID)
	}
	return nil, domain.ErrNotFound
}

func (m *Repo) UpdateBalances(ctx context.Context, f *domain.ReliefFund) error {
	if m.UpdateBalancesFn != nil {
		return m.UpdateBalancesFn(ctx, f)
	}
	return nil
}

// Store is a map-backed Repo for tests that need balances to persist across
// calls. Rows are copied in and out so callers cannot alias stored state.
type Store struct {
	mu    sync.Mutex
	rows  map[string]domain.ReliefFund
	seq   uint64
	Saved int
}

func NewStore(funds ...domain.ReliefFund) *Store {
	s := &Store{rows: make(map[string]domain.ReliefFund)}
	for _, f := range funds {
		s.seq++
		if f.ID == 0 {
			f.ID = s.seq
		}
		s.rows[f.MemberID] = f
	}
	return s
}

// Repo exposes the store through the function-backed mock.
func (s *Store) Repo() *Repo {
	get := func(_ context.Context, memberID string) (*domain.ReliefFund, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		f, ok := s.rows[memberID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		return &f, nil
	}
	ensure := func(memberID string, at time.Time) bool {
		if _, ok := s.rows[memberID]; ok {
			return false
		}
		s.seq++
		f := domain.NewEmpty(memberID, at)
		f.ID = s.seq
		s.rows[memberID] = *f
		return true
	}
	return &Repo{
		EnsureFn: func(ctx context.Context, memberID string, at time.Time) (*domain.ReliefFund, error) {
			s.mu.Lock()
			ensure(memberID, at)
			s.mu.Unlock()
			return get(ctx, memberID)
		},
		EnsureManyFn: func(_ context.Context, memberIDs []string, at time.Time) (int64, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			var n int64
			for _, m := range memberIDs {
				if ensure(m, at) {
					n++
				}
			}
			return n, nil
		},
		GetByMemberIDFn:          get,
		GetByMemberIDForUpdateFn: get,
		UpdateBalancesFn: func(_ context.Context, f *domain.ReliefFund) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.rows[f.MemberID]; !ok {
				return domain.ErrNotFound
			}
			s.rows[f.MemberID] = *f
			s.Saved++
			return nil
		},
	}
}

// Get returns a copy of the stored row.
func (s *Store) Get(memberID string) (domain.ReliefFund, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.rows[memberID]
	return f, ok
}
