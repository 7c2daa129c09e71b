package approvalmock

import (
	"context"
	"errors"
	"testing"

	domain "relief-fund-backend/internal/domain/approval"
)

func TestRepo_Create(t *testing.T) {
	ctx := context.Background()
	r := &domain.Record{ApprovalID: "APR-1", ComplaintID: 123}

	called := false
	wantErr := errors.New("boom")
	m := &Repo{
		CreateFn: func(gotCtx context.Context, got *domain.Record) error {
			called = true
			if gotCtx != ctx {
				t.Fatalf("ctx mismatch")
			}
			if got != r {
				t.Fatalf("arg mismatch")
			}
			return wantErr
		},
	}
	if err := m.Create(ctx, r); !errors.Is(err, wantErr) {
		t.Fatalf("Create: want %v, got %v", wantErr, err)
	}
	if !called {
		t.Fatalf("CreateFn not called")
	}

	// Default (nil func) → no-op, nil error
	m = &Repo{}
	if err := m.Create(ctx, r); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
}

func TestRepo_GetByComplaintID(t *testing.T) {
	ctx := context.Background()
	want := &domain.Record{ApprovalID: "APR-2", ComplaintID: 456}

	m := &Repo{
		GetByComplaintIDFn: func(_ context.Context, id uint64) (*domain.Record, error) {
			if id != 456 {
				t.Fatalf("complaint id mismatch: got %d", id)
			}
			return want, nil
		},
	}
	got, err := m.GetByComplaintID(ctx, 456)
	if err != nil || got != want {
		t.Fatalf("GetByComplaintID: want %+v, got %+v (%v)", want, got, err)
	}

	// Default (nil func) → ErrNotFound
	m = &Repo{}
	if _, err := m.GetByComplaintID(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByComplaintID default: want ErrNotFound, got %v", err)
	}
}

func TestRepo_GetByApprovalID(t *testing.T) {
	ctx := context.Background()
	want := &domain.Record{ApprovalID: "APR-3", ComplaintID: 789}

	m := &Repo{
		GetByApprovalIDFn: func(_ context.Context, id string) (*domain.Record, error) {
			if id != "APR-3" {
				t.Fatalf("approval id mismatch: got %s", id)
			}
			return want, nil
		},
	}
	got, err := m.GetByApprovalID(ctx, "APR-3")
	if err != nil || got != want {
		t.Fatalf("GetByApprovalID: want %+v, got %+v (%v)", want, got, err)
	}

	m = &Repo{}
	if _, err := m.GetByApprovalID(ctx, "APR-3"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByApprovalID default: want ErrNotFound, got %v", err)
	}
}
