package model

import "time"

// InviteStatus is pending until the invitee resolves it; resolved invites
// are immutable.
type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteRejected InviteStatus = "rejected"
)

// Invite records one invited address on a shared event.
type Invite struct {
	ID            uint   `gorm:"primaryKey"`
	SharedEventID string `gorm:"index:idx_invite_event_email,unique"`
	Email         string `gorm:"index:idx_invite_event_email,unique"`
	Status        InviteStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Resolved reports whether the invite has been accepted or rejected.
func (i *Invite) Resolved() bool {
	return i.Status != InvitePending
}
