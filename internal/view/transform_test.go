package view

import (
	"testing"
	"time"

	"github.com/campusmap/campus-events/internal/models"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestTransform_FullRecord(t *testing.T) {
	loc := time.UTC
	at := time.Date(2026, 11, 18, 14, 0, 0, 0, loc)
	lat, lng := 49.2606, -123.2460
	ev := models.Event{
		ID:           42,
		Name:         strPtr("Study Group - Computer Science"),
		Type:         strPtr("Study"),
		LocationLat:  &lat,
		LocationLong: &lng,
		LocationName: strPtr("Library Room 204"),
		Time:         &at,
		ClubName:     strPtr("CS Study Group"),
		ImageURL:     strPtr("https://example.com/cs.png"),
	}

	v := Transform(ev, 7, time.Now(), loc)

	assert.Equal(t, "42", v.ID)
	assert.Equal(t, "Study Group - Computer Science", v.Title)
	assert.Equal(t, "https://example.com/cs.png", v.ImageURL)
	assert.Equal(t, "Nov 18", v.Date)
	assert.Equal(t, "2:00 PM", v.Time)
	assert.Equal(t, "Library Room 204", v.Location)
	assert.Equal(t, lat, v.Latitude)
	assert.Equal(t, lng, v.Longitude)
	assert.Equal(t, 7, v.Attendees)
	assert.Equal(t, []string{"CS Study Group", "Study"}, v.Tags)
	assert.Equal(t, models.CategoryStudy, v.EventType)
	assert.Equal(t, time.Date(2026, 11, 18, 0, 0, 0, 0, loc), v.Day)
	assert.False(t, v.IsHighlighted)
}

func TestTransform_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 5, 9, 7, 0, 0, time.UTC)

	v := Transform(models.Event{ID: 1}, 0, now, time.UTC)

	assert.Equal(t, DefaultTitle, v.Title)
	assert.Equal(t, DefaultLocation, v.Location)
	assert.Equal(t, PlaceholderImage, v.ImageURL)
	assert.Equal(t, models.CategorySocial, v.EventType)
	assert.Equal(t, "Mar 5", v.Date)
	assert.Equal(t, "9:07 AM", v.Time)
	assert.Zero(t, v.Latitude)
	assert.Zero(t, v.Longitude)
	assert.Empty(t, v.Tags)
	assert.NotNil(t, v.Tags)
}

func TestTransform_EmptyStringsDropFromTags(t *testing.T) {
	ev := models.Event{ID: 3, ClubName: strPtr(""), Type: strPtr("sports")}

	v := Transform(ev, 0, time.Now(), time.UTC)

	assert.Equal(t, []string{"sports"}, v.Tags)
	assert.Equal(t, models.CategorySports, v.EventType)
}

func TestTransform_TagsKeepOrderAndDuplicates(t *testing.T) {
	ev := models.Event{ID: 4, ClubName: strPtr("club"), Type: strPtr("club")}

	v := Transform(ev, 0, time.Now(), time.UTC)

	assert.Equal(t, []string{"club", "club"}, v.Tags)
}

func TestTransform_ConvertsToLocation(t *testing.T) {
	vancouver, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		t.Skip("tzdata not available")
	}
	at := time.Date(2026, 11, 19, 1, 30, 0, 0, time.UTC)

	v := Transform(models.Event{ID: 5, Time: &at}, 0, time.Now(), vancouver)

	assert.Equal(t, "Nov 18", v.Date)
	assert.Equal(t, "5:30 PM", v.Time)
}

func TestTransform_NegativeCountClamped(t *testing.T) {
	v := Transform(models.Event{ID: 6}, -3, time.Now(), time.UTC)
	assert.Equal(t, 0, v.Attendees)
}

func TestTransformAll_PreservesOrderAndCounts(t *testing.T) {
	events := []models.Event{{ID: 9}, {ID: 2}, {ID: 5}}
	counts := map[uint]int{2: 30, 9: 1}

	views := TransformAll(events, counts, time.Now(), time.UTC)

	if assert.Len(t, views, 3) {
		assert.Equal(t, "9", views[0].ID)
		assert.Equal(t, 1, views[0].Attendees)
		assert.Equal(t, "2", views[1].ID)
		assert.Equal(t, 30, views[1].Attendees)
		assert.Equal(t, "5", views[2].ID)
		assert.Equal(t, 0, views[2].Attendees)
	}
}

func TestToDetail(t *testing.T) {
	at := time.Date(2026, 11, 20, 18, 0, 0, 0, time.UTC)
	capacity := 40
	ev := models.Event{
		ID:          8,
		Name:        strPtr("Engineering Club Meeting"),
		Description: strPtr("Monthly meeting"),
		Capacity:    &capacity,
		ClubURL:     strPtr("https://eng.example.com"),
		OwnerUser:   strPtr("owner-1"),
		Time:        &at,
	}

	d := ToDetail(ev, 12, time.Now(), time.UTC)

	assert.Equal(t, "Engineering Club Meeting", d.Title)
	assert.Equal(t, "Monthly meeting", d.Description)
	assert.Equal(t, &capacity, d.Capacity)
	assert.Equal(t, "https://eng.example.com", d.ClubURL)
	assert.Equal(t, "owner-1", d.OwnerUser)
	assert.Equal(t, at, d.StartsAt)
	assert.Equal(t, 12, d.Attendees)
}
