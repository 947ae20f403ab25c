// Package notify delivers lifecycle notifications to users. Delivery is
// best-effort and decoupled from the transactions that trigger it: a failed
// or dropped notification never rolls back a committed state change.
package notify

import (
	"context"
	"time"
)

// Kind classifies a notification.
type Kind string

const (
	KindInviteCreated  Kind = "invite_created"
	KindInviteAccepted Kind = "invite_accepted"
	KindInviteRejected Kind = "invite_rejected"
	KindEventArranged  Kind = "event_arranged"
	KindEventDeleted   Kind = "event_deleted"
	KindReminder       Kind = "reminder"
)

// Recipient addresses one delivery target. UserID and ChatID are zero for
// invitees who have no account yet.
type Recipient struct {
	UserID uint
	Email  string
	ChatID int64
}

// Payload carries the notification content.
type Payload struct {
	EventID string
	Title   string
	Body    string
	StartAt *time.Time
}

// Notifier is the boundary the lifecycle service talks to.
type Notifier interface {
	Notify(ctx context.Context, recipients []Recipient, kind Kind, payload Payload)
}
