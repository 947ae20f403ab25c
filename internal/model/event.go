package model

import "time"

// Event is a single entry in a user's calendar. Entries produced by arranging
// a shared event carry the shared event's ID; personal entries don't.
type Event struct {
	ID            uint    `gorm:"primaryKey"`
	UserID        uint    `gorm:"index"`
	SharedEventID *string `gorm:"index"`
	Title         string
	Description   string
	StartTime     time.Time
	EndTime       time.Time
	// RecurrenceRule is an RFC 5545 RRULE string, empty for one-off entries.
	RecurrenceRule string
	// ReminderOffsets are minutes before StartTime at which to remind the owner.
	ReminderOffsets []int `gorm:"serializer:json"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
