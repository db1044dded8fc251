package models

import "time"

// Attendee marks that a user is attending an event. The pair (event, user)
// is unique; the store rejects a second row for the same pair.
type Attendee struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_attendee_event_user" json:"event_id"`
	UserID    string    `gorm:"not null;type:varchar(64);uniqueIndex:idx_attendee_event_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

// AttendeeCount is the per-event row count of the attendees table.
type AttendeeCount struct {
	EventID uint
	Count   int64
}
