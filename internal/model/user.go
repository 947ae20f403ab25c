package model

import "time"

// User is an account that owns calendar events and can join shared events.
type User struct {
	ID             uint   `gorm:"primaryKey"`
	Email          string `gorm:"uniqueIndex"`
	FirstName      string
	LastName       string
	TelegramChatID int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
