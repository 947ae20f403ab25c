package model

import "time"

// SharedEventStatus tracks a shared event through its lifecycle.
type SharedEventStatus string

const (
	SharedEventPending  SharedEventStatus = "pending"
	SharedEventArranged SharedEventStatus = "arranged"
	SharedEventSaved    SharedEventStatus = "saved"
	SharedEventDeleted  SharedEventStatus = "deleted"
)

// Repeat cadence for a shared event's arranged occurrences.
const (
	RepeatNone    = ""
	RepeatWeekly  = "week"
	RepeatMonthly = "month"
)

// SharedEvent is a group commitment being negotiated between an owner and
// invited members. Members accumulate only through accepted invites; the
// owner is a member from creation and never holds an invite.
type SharedEvent struct {
	ID              string `gorm:"primaryKey"`
	OwnerID         uint   `gorm:"index"`
	Title           string
	DurationMinutes int
	// IdealDays are acceptable weekdays, 0=Sunday..6=Saturday. Empty means any.
	IdealDays []int `gorm:"serializer:json"`
	StartDate time.Time
	EndDate   time.Time
	// Daily window in minutes from local midnight, inclusive both ends.
	DailyStartMin   int
	DailyEndMin     int
	RepeatType      string
	RepeatCount     int
	ReminderOffsets []int             `gorm:"serializer:json"`
	Status          SharedEventStatus `gorm:"index"`
	// Version guards lifecycle transitions against concurrent writers.
	Version   int
	Members   []User   `gorm:"many2many:shared_event_members"`
	Invites   []Invite `gorm:"foreignKey:SharedEventID"`
	Events    []Event  `gorm:"foreignKey:SharedEventID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FindInvite returns the invite addressed to email, if any.
func (e *SharedEvent) FindInvite(email string) *Invite {
	for i := range e.Invites {
		if e.Invites[i].Email == email {
			return &e.Invites[i]
		}
	}
	return nil
}
