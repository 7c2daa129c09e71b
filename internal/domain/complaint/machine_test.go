package complaint_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relief-fund-backend/internal/domain/complaint"
	"relief-fund-backend/internal/testutil/complaintmock"
)

var clock = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

func TestMachine_File(t *testing.T) {
	var saved *complaint.Complaint
	repo := &complaintmock.Repo{
		CreateFn: func(_ context.Context, c *complaint.Complaint) error {
			saved = c
			return nil
		},
	}
	m := complaint.NewMachine(repo, clock)

	c, err := m.File(context.Background(), "m1", complaint.Details{Title: " Flooded  House ", Severity: "high"})
	require.NoError(t, err)
	assert.Same(t, saved, c)
	assert.Equal(t, complaint.StatusFiled, c.Status)
	assert.Equal(t, complaint.SeverityHigh, c.Severity)
	assert.Equal(t, "Flooded  House", c.Title)
	assert.Equal(t, "flooded house", c.TitleKey)
	assert.Len(t, c.ComplaintID, 32)
	assert.Equal(t, clock(), c.FiledAt)
}

func TestMachine_FileRejectsBadDetails(t *testing.T) {
	repo := &complaintmock.Repo{
		CreateFn: func(context.Context, *complaint.Complaint) error {
			t.Fatalf("Create must not be called")
			return nil
		},
	}
	_, err := complaint.NewMachine(repo, clock).File(context.Background(), "m1", complaint.Details{Severity: "LOW"})
	assert.ErrorIs(t, err, complaint.ErrInvalidDetails)
}

func TestMachine_FileBatchValidatesEverythingFirst(t *testing.T) {
	called := false
	repo := &complaintmock.Repo{
		CreateBatchFn: func(context.Context, []*complaint.Complaint) (int64, error) {
			called = true
			return 0, nil
		},
	}
	m := complaint.NewMachine(repo, clock)

	_, err := m.FileBatch(context.Background(), []complaint.Filing{
		{MemberID: "m1", Details: complaint.Details{Title: "ok", Severity: "LOW"}},
		{MemberID: "m2", Details: complaint.Details{Title: "bad", Severity: "??"}},
	})
	assert.ErrorIs(t, err, complaint.ErrInvalidDetails)
	assert.False(t, called)

	n, err := m.FileBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMachine_FileBatchCollapsesRepeatedEntries(t *testing.T) {
	var got []*complaint.Complaint
	repo := &complaintmock.Repo{
		CreateBatchFn: func(_ context.Context, cs []*complaint.Complaint) (int64, error) {
			got = cs
			return int64(len(cs)), nil
		},
	}
	m := complaint.NewMachine(repo, clock)

	n, err := m.FileBatch(context.Background(), []complaint.Filing{
		{MemberID: "m1", Details: complaint.Details{Title: "Flooded house", Severity: "LOW"}},
		{MemberID: "m1", Details: complaint.Details{Title: " flooded  HOUSE", Severity: "HIGH"}},
		{MemberID: "m2", Details: complaint.Details{Title: "Flooded house", Severity: "LOW"}},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	require.Len(t, got, 2)
	assert.Equal(t, "Flooded house", got[0].Title)
	assert.Equal(t, "m2", got[1].MemberID)
	require.NotNil(t, got[0].ImportKey)
	assert.Equal(t, "flooded house", *got[0].ImportKey)
}

func TestMachine_Approve(t *testing.T) {
	ctx := context.Background()
	filed := func() *complaint.Complaint {
		return &complaint.Complaint{ID: 7, ComplaintID: "c1", MemberID: "m1", Status: complaint.StatusFiled}
	}

	tests := []struct {
		name    string
		repo    *complaintmock.Repo
		wantErr error
	}{
		{
			name: "filed -> approved",
			repo: &complaintmock.Repo{
				GetByComplaintIDForUpdateFn: func(context.Context, string) (*complaint.Complaint, error) { return filed(), nil },
				TransitionStatusFn: func(_ context.Context, id uint64, from, to complaint.Status, _ time.Time) (bool, error) {
					if id != 7 || from != complaint.StatusFiled || to != complaint.StatusApproved {
						t.Fatalf("unexpected transition %d %s -> %s", id, from, to)
					}
					return true, nil
				},
			},
		},
		{
			name:    "not found",
			repo:    &complaintmock.Repo{},
			wantErr: complaint.ErrNotFound,
		},
		{
			name: "already approved",
			repo: &complaintmock.Repo{
				GetByComplaintIDForUpdateFn: func(context.Context, string) (*complaint.Complaint, error) {
					c := filed()
					c.Status = complaint.StatusApproved
					return c, nil
				},
			},
			wantErr: complaint.ErrInvalidTransition,
		},
		{
			name: "lost race on conditional update",
			repo: &complaintmock.Repo{
				GetByComplaintIDForUpdateFn: func(context.Context, string) (*complaint.Complaint, error) { return filed(), nil },
				TransitionStatusFn: func(context.Context, uint64, complaint.Status, complaint.Status, time.Time) (bool, error) {
					return false, nil
				},
			},
			wantErr: complaint.ErrInvalidTransition,
		},
		{
			name: "store error",
			repo: &complaintmock.Repo{
				GetByComplaintIDForUpdateFn: func(context.Context, string) (*complaint.Complaint, error) { return filed(), nil },
				TransitionStatusFn: func(context.Context, uint64, complaint.Status, complaint.Status, time.Time) (bool, error) {
					return false, errors.New("disk full")
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := complaint.NewMachine(tt.repo, clock).Approve(ctx, "c1")
			switch {
			case tt.name == "store error":
				assert.EqualError(t, err, "disk full")
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, c)
			default:
				require.NoError(t, err)
				assert.Equal(t, complaint.StatusApproved, c.Status)
				assert.Equal(t, clock(), c.StatusUpdatedAt)
			}
		})
	}
}
