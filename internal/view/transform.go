package view

import (
	"strconv"
	"strings"
	"time"

	"github.com/campusmap/campus-events/internal/models"
)

// Transform maps a stored event and its attendee count to an EventView.
// Missing fields resolve to defaults; it never fails. A missing timestamp
// is replaced by now, so callers cannot use Date to detect absence.
func Transform(ev models.Event, attendees int, now time.Time, loc *time.Location) EventView {
	if loc == nil {
		loc = time.Local
	}
	if attendees < 0 {
		attendees = 0
	}

	at := now
	if ev.Time != nil {
		at = *ev.Time
	}
	at = at.In(loc)

	return EventView{
		ID:        strconv.FormatUint(uint64(ev.ID), 10),
		Title:     orDefault(ev.Name, DefaultTitle),
		ImageURL:  orDefault(ev.ImageURL, PlaceholderImage),
		Date:      at.Format(DateLayout),
		Time:      at.Format(TimeLayout),
		Location:  orDefault(ev.LocationName, DefaultLocation),
		Latitude:  floatOrZero(ev.LocationLat),
		Longitude: floatOrZero(ev.LocationLong),
		Attendees: attendees,
		Tags:      tags(ev.ClubName, ev.Type),
		EventType: ResolveCategory(ev.Type),
		Day:       StartOfDay(at),
	}
}

// TransformAll transforms records in order. Events missing from counts
// have no attendees.
func TransformAll(events []models.Event, counts map[uint]int, now time.Time, loc *time.Location) []EventView {
	out := make([]EventView, len(events))
	for i, ev := range events {
		out[i] = Transform(ev, counts[ev.ID], now, loc)
	}
	return out
}

// ToDetail builds the opened-event projection.
func ToDetail(ev models.Event, attendees int, now time.Time, loc *time.Location) Detail {
	v := Transform(ev, attendees, now, loc)
	startsAt := now
	if ev.Time != nil {
		startsAt = *ev.Time
	}
	return Detail{
		EventView:   v,
		Description: orDefault(ev.Description, ""),
		Capacity:    ev.Capacity,
		ClubName:    orDefault(ev.ClubName, ""),
		ClubURL:     orDefault(ev.ClubURL, ""),
		OwnerUser:   orDefault(ev.OwnerUser, ""),
		StartsAt:    startsAt,
	}
}

// ResolveCategory lower-cases the stored type, defaulting to social.
func ResolveCategory(stored *string) models.Category {
	if stored == nil || *stored == "" {
		return models.CategorySocial
	}
	return models.Category(strings.ToLower(*stored))
}

// StartOfDay returns midnight of t in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func tags(values ...*string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != nil && *v != "" {
			out = append(out, *v)
		}
	}
	return out
}

func orDefault(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
