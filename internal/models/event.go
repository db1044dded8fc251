package models

import "time"

type Category string

const (
	CategorySocial        Category = "social"
	CategoryStudy         Category = "study"
	CategorySports        Category = "sports"
	CategoryClub          Category = "club"
	CategoryEntertainment Category = "entertainment"
)

// Categories lists every valid event category in display order.
var Categories = []Category{
	CategorySocial,
	CategoryStudy,
	CategorySports,
	CategoryClub,
	CategoryEntertainment,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Event is a stored campus event. Every column except the id is nullable;
// missing values are resolved to defaults when the event is rendered.
type Event struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         *string    `json:"name"`
	Description  *string    `json:"description"`
	Type         *string    `gorm:"type:varchar(32)" json:"type"`
	LocationLat  *float64   `json:"location_lat"`
	LocationLong *float64   `json:"location_long"`
	LocationName *string    `json:"location_name"`
	Time         *time.Time `gorm:"column:time;index" json:"time"`
	Capacity     *int       `json:"capacity"`
	ClubName     *string    `json:"club_name"`
	ClubURL      *string    `json:"club_url"`
	OwnerUser    *string    `gorm:"index" json:"owner_user"`
	ImageURL     *string    `json:"image_url"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
