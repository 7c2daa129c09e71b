package member

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("member not found")
	ErrInactive = errors.New("member is inactive")
)

// Member is owned by the identity subsystem; this service only reads it.
type Member struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	MemberID  string    `gorm:"column:member_id;size:32;not null;uniqueIndex:ux_members_member_id" json:"member_id"`
	Name      string    `gorm:"column:name;size:255" json:"name"`
	Active    bool      `gorm:"column:active;not null" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Member) TableName() string { return "members" }

// CheckActive returns ErrInactive for a deactivated member.
func (m *Member) CheckActive() error {
	if !m.Active {
		return ErrInactive
	}
	return nil
}
