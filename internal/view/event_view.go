// Package view turns stored events into display-ready records.
package view

import (
	"time"

	"github.com/campusmap/campus-events/internal/models"
)

const (
	DefaultTitle     = "Untitled Event"
	DefaultLocation  = "Location TBD"
	PlaceholderImage = "https://images.unsplash.com/photo-1511632765486-a01980e01a18?w=400"

	DateLayout = "Jan 2"
	TimeLayout = "3:04 PM"
)

// EventView is the list/map projection of an event. It is rebuilt on every
// fetch and never written back to the store.
type EventView struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	ImageURL      string          `json:"imageUrl"`
	Date          string          `json:"date"`
	Time          string          `json:"time"`
	Location      string          `json:"location"`
	Latitude      float64         `json:"latitude"`
	Longitude     float64         `json:"longitude"`
	Attendees     int             `json:"attendees"`
	Tags          []string        `json:"tags"`
	EventType     models.Category `json:"eventType"`
	IsHighlighted bool            `json:"isHighlighted,omitempty"`

	// Day is local midnight of the scheduled date. Zero when the view was
	// built outside Transform; the filter then falls back to parsing Date.
	Day time.Time `json:"-"`
}

// Detail is the single-event projection shown when an event is opened.
type Detail struct {
	EventView
	Description string    `json:"description"`
	Capacity    *int      `json:"capacity,omitempty"`
	ClubName    string    `json:"clubName,omitempty"`
	ClubURL     string    `json:"clubUrl,omitempty"`
	OwnerUser   string    `json:"ownerUser,omitempty"`
	StartsAt    time.Time `json:"startsAt"`
}
