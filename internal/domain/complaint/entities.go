package complaint

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("complaint not found")
	ErrInvalidTransition = errors.New("invalid complaint state transition")
	ErrInvalidDetails    = errors.New("invalid complaint details")
)

type Status string

const (
	StatusFiled    Status = "FILED"
	StatusApproved Status = "APPROVED"
)

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// ParseSeverity accepts any letter case and surrounding spaces.
func ParseSeverity(raw string) (Severity, error) {
	s := Severity(strings.ToUpper(strings.TrimSpace(raw)))
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return s, nil
	}
	return "", fmt.Errorf("%w: unknown severity %q", ErrInvalidDetails, raw)
}

// TransitionError reports a rejected status change. It matches ErrInvalidTransition.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid state transition: complaint is %s, cannot move to %s", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool { return target == ErrInvalidTransition }

// Table: complaints
type Complaint struct {
	ID          uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ComplaintID string `gorm:"column:complaint_id;size:32;not null;uniqueIndex:ux_complaints_complaint_id" json:"complaint_id"`
	MemberID    string `gorm:"column:member_id;size:32;not null;uniqueIndex:ux_complaints_member_import,priority:1;index:idx_complaints_member" json:"member_id"`
	Title       string `gorm:"column:title;size:255;not null" json:"title"`
	TitleKey    string `gorm:"column:title_key;size:255;not null" json:"-"`
	// ImportKey is set only by bulk registration; (member_id, import_key) is its
	// natural key. Single filings leave it NULL and may repeat a title.
	ImportKey       *string   `gorm:"column:import_key;size:255;uniqueIndex:ux_complaints_member_import,priority:2" json:"-"`
	Description     string    `gorm:"column:description;type:text" json:"description"`
	Location        string    `gorm:"column:location;size:255" json:"location"`
	Severity        Severity  `gorm:"column:severity;size:16;not null" json:"severity"`
	Status          Status    `gorm:"column:status;size:16;not null;default:'FILED'" json:"status"`
	FiledAt         time.Time `gorm:"column:filed_at;not null" json:"filed_at"`
	StatusUpdatedAt time.Time `gorm:"column:status_updated_at;not null" json:"status_updated_at"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Complaint) TableName() string { return "complaints" }

// Details are the caller supplied fields of a grievance.
type Details struct {
	Title       string
	Description string
	Location    string
	Severity    Severity
}

func (d Details) validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidDetails)
	}
	if _, err := ParseSeverity(string(d.Severity)); err != nil {
		return err
	}
	return nil
}

// NormalizeTitle lowercases the title and collapses inner whitespace.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

// Approve moves a FILED complaint to APPROVED. Any other starting state is rejected.
func (c *Complaint) Approve(at time.Time) error {
	if c.Status != StatusFiled {
		return &TransitionError{From: c.Status, To: StatusApproved}
	}
	c.Status = StatusApproved
	c.StatusUpdatedAt = at
	return nil
}
