package dto

import (
	"time"

	"github.com/campusmap/campus-events/internal/models"
	"github.com/campusmap/campus-events/internal/view"
)

type BrowseResponse struct {
	Events    []view.EventView `json:"events"`
	Locations []string         `json:"locations"`
	Total     int              `json:"total"`
}

type EventListResponse struct {
	Events []view.EventView `json:"events"`
}

type CountResponse struct {
	EventID uint  `json:"event_id"`
	Count   int64 `json:"count"`
}

type AttendanceResponse struct {
	EventID   uint   `json:"event_id"`
	Attending bool   `json:"attending"`
	Count     *int64 `json:"count,omitempty"`
}

type EventResponse struct {
	ID           uint       `json:"id"`
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	Type         *string    `json:"type"`
	LocationLat  *float64   `json:"location_lat"`
	LocationLong *float64   `json:"location_long"`
	LocationName *string    `json:"location_name"`
	Time         *time.Time `json:"time"`
	Capacity     *int       `json:"capacity"`
	ClubName     *string    `json:"club_name"`
	ClubURL      *string    `json:"club_url"`
	OwnerUser    *string    `json:"owner_user"`
	ImageURL     *string    `json:"image_url"`
	CreatedAt    time.Time  `json:"created_at"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:           e.ID,
		Name:         e.Name,
		Description:  e.Description,
		Type:         e.Type,
		LocationLat:  e.LocationLat,
		LocationLong: e.LocationLong,
		LocationName: e.LocationName,
		Time:         e.Time,
		Capacity:     e.Capacity,
		ClubName:     e.ClubName,
		ClubURL:      e.ClubURL,
		OwnerUser:    e.OwnerUser,
		ImageURL:     e.ImageURL,
		CreatedAt:    e.CreatedAt,
	}
}
