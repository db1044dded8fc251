package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/campusmap/campus-events/internal/models"
)

const (
	FormDateLayout = "2006-01-02"
	FormTimeLayout = "15:04"
)

var ErrInvalidEvent = errors.New("invalid event")

// EventRequest is the create/edit form. Date and time are entered
// separately and combined in the campus time zone.
type EventRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Type         string   `json:"type"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	LocationName string   `json:"location_name"`
	LocationLat  *float64 `json:"location_lat"`
	LocationLong *float64 `json:"location_long"`
	Capacity     *int     `json:"capacity"`
	ClubName     string   `json:"club_name"`
	ClubURL      string   `json:"club_url"`
	ImageURL     string   `json:"image_url"`
}

// ToModel validates the form and builds the stored record. The owner is
// set by the caller.
func (r EventRequest) ToModel(loc *time.Location) (*models.Event, error) {
	if loc == nil {
		loc = time.Local
	}

	name := strings.TrimSpace(r.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidEvent)
	}
	location := strings.TrimSpace(r.LocationName)
	if location == "" {
		return nil, fmt.Errorf("%w: location_name is required", ErrInvalidEvent)
	}

	day, err := time.ParseInLocation(FormDateLayout, strings.TrimSpace(r.Date), loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidEvent)
	}
	clock, err := time.Parse(FormTimeLayout, strings.TrimSpace(r.Time))
	if err != nil {
		return nil, fmt.Errorf("%w: time must be HH:MM", ErrInvalidEvent)
	}
	at := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)

	category := models.CategorySocial
	if t := strings.ToLower(strings.TrimSpace(r.Type)); t != "" {
		category = models.Category(t)
	}
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidEvent, r.Type)
	}

	var capacity *int
	if r.Capacity != nil {
		if *r.Capacity < 0 {
			return nil, fmt.Errorf("%w: capacity must not be negative", ErrInvalidEvent)
		}
		if *r.Capacity > 0 {
			c := *r.Capacity
			capacity = &c
		}
	}

	typ := string(category)
	return &models.Event{
		Name:         &name,
		Description:  optional(r.Description),
		Type:         &typ,
		LocationLat:  r.LocationLat,
		LocationLong: r.LocationLong,
		LocationName: &location,
		Time:         &at,
		Capacity:     capacity,
		ClubName:     optional(r.ClubName),
		ClubURL:      optional(r.ClubURL),
		ImageURL:     optional(r.ImageURL),
	}, nil
}

type AttendanceRequest struct {
	Attending *bool `json:"attending"`
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
