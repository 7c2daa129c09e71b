package complaint

import (
	"context"
	"strings"
	"time"

	"relief-fund-backend/pkg/id"
)

// Filing is one entry of a bulk registration.
type Filing struct {
	MemberID string
	Details  Details
}

// Machine drives the FILED -> APPROVED lifecycle. It never commits on its own;
// the repository it wraps is bound to the caller's unit of work.
type Machine struct {
	repo Repository
	now  func() time.Time
}

func NewMachine(repo Repository, now func() time.Time) *Machine {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Machine{repo: repo, now: now}
}

func newFiled(memberID string, d Details, at time.Time) (*Complaint, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	sev, _ := ParseSeverity(string(d.Severity))
	return &Complaint{
		ComplaintID:     id.NewID32(),
		MemberID:        memberID,
		Title:           strings.TrimSpace(d.Title),
		TitleKey:        NormalizeTitle(d.Title),
		Description:     d.Description,
		Location:        d.Location,
		Severity:        sev,
		Status:          StatusFiled,
		FiledAt:         at,
		StatusUpdatedAt: at,
	}, nil
}

// File creates a complaint in FILED. Member validity is checked by the caller.
func (m *Machine) File(ctx context.Context, memberID string, d Details) (*Complaint, error) {
	c, err := newFiled(memberID, d, m.now())
	if err != nil {
		return nil, err
	}
	if err := m.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// FileBatch validates every entry before writing anything, then inserts the
// batch with duplicate skipping.
func (m *Machine) FileBatch(ctx context.Context, filings []Filing) (int64, error) {
	if len(filings) == 0 {
		return 0, nil
	}
	at := m.now()
	batch := make([]*Complaint, 0, len(filings))
	seen := make(map[[2]string]struct{}, len(filings))
	for _, f := range filings {
		c, err := newFiled(f.MemberID, f.Details, at)
		if err != nil {
			return 0, err
		}
		key := [2]string{c.MemberID, c.TitleKey}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		importKey := c.TitleKey
		c.ImportKey = &importKey
		batch = append(batch, c)
	}
	return m.repo.CreateBatch(ctx, batch)
}

// Approve is not idempotent: approving an APPROVED complaint fails with
// ErrInvalidTransition.
func (m *Machine) Approve(ctx context.Context, complaintID string) (*Complaint, error) {
	c, err := m.repo.GetByComplaintIDForUpdate(ctx, complaintID)
	if err != nil {
		return nil, err
	}
	from := c.Status
	if err := c.Approve(m.now()); err != nil {
		return nil, err
	}
	ok, err := m.repo.TransitionStatus(ctx, c.ID, from, c.Status, c.StatusUpdatedAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		// lost the race against a concurrent approval
		return nil, &TransitionError{From: StatusApproved, To: StatusApproved}
	}
	return c, nil
}

func (m *Machine) Get(ctx context.Context, complaintID string) (*Complaint, error) {
	return m.repo.GetByComplaintID(ctx, complaintID)
}
