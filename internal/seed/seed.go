// Package seed fills an empty store with demo events.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/campusmap/campus-events/internal/models"
)

type EventStore interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, event *models.Event) error
}

type demoEvent struct {
	name        string
	description string
	lat, long   float64
	location    string
	category    models.Category
	club        string
	dayOffset   int
	hour, min   int
	capacity    int
	image       string
}

var demoEvents = []demoEvent{
	{"Campus Coffee Meetup", "Join us for a casual coffee meetup at the Student Center. Great opportunity to meet new people and make friends!",
		37.8015, -122.4015, "Student Center Cafe", models.CategorySocial, "Social Club", 1, 10, 0, 20,
		"https://images.unsplash.com/photo-1511632765486-a01980e01a18?w=400"},
	{"Study Group - Computer Science", "Weekly CS study group covering data structures and algorithms. All levels welcome!",
		37.8025, -122.4025, "Library Room 204", models.CategoryStudy, "CS Study Group", 1, 14, 0, 15,
		"https://images.unsplash.com/photo-1522202176988-66273c2fd55f?w=400"},
	{"Basketball Pickup Game", "Pickup basketball game every Monday and Wednesday. All skill levels welcome!",
		37.7995, -122.4005, "Recreation Center", models.CategorySports, "Intramural Sports", 2, 17, 0, 30,
		"https://images.unsplash.com/photo-1546519638-68e109498ffc?w=400"},
	{"Engineering Club Meeting", "Monthly engineering club meeting. We will discuss upcoming projects and competitions.",
		37.8005, -122.3995, "Engineering Building 301", models.CategoryClub, "Engineering Society", 3, 18, 0, 40,
		"https://images.unsplash.com/photo-1581092795360-fd1ca04f0952?w=400"},
	{"Open Mic Night", "Showcase your talent! Poetry, music, comedy - all performers welcome. Sign up at the door.",
		37.8035, -122.4035, "Campus Auditorium", models.CategoryEntertainment, "Arts & Culture", 4, 19, 30, 100,
		"https://images.unsplash.com/photo-1516450360452-9312f5e86fc7?w=400"},
	{"Yoga in the Park", "Free outdoor yoga session. Bring your own mat and water bottle.",
		37.8020, -122.4010, "University Park", models.CategorySports, "Wellness Club", 5, 8, 0, 25,
		"https://images.unsplash.com/photo-1544367567-0f2fcb009e0b?w=400"},
	{"Hackathon Kickoff", "24-hour hackathon! Build something amazing with your team. Prizes and food provided.",
		37.8030, -122.4020, "Computer Science Building", models.CategoryClub, "Tech Society", 6, 9, 0, 60,
		"https://images.unsplash.com/photo-1504384308090-c894fdcc538d?w=400"},
	{"Board Game Night", "Casual board game night with snacks. We have classics and modern games available!",
		37.8010, -122.4000, "Student Lounge", models.CategorySocial, "Games Club", 6, 18, 0, 30,
		"https://images.unsplash.com/photo-1610890716171-6b1bb98ffd09?w=400"},
}

// Events returns the demo events scheduled over the week after now, in loc.
func Events(now time.Time, loc *time.Location) []models.Event {
	if loc == nil {
		loc = time.Local
	}
	base := now.In(loc)

	out := make([]models.Event, len(demoEvents))
	for i, d := range demoEvents {
		d := d
		at := time.Date(base.Year(), base.Month(), base.Day()+d.dayOffset, d.hour, d.min, 0, 0, loc)
		typ := string(d.category)
		out[i] = models.Event{
			Name:         &d.name,
			Description:  &d.description,
			Type:         &typ,
			LocationLat:  &d.lat,
			LocationLong: &d.long,
			LocationName: &d.location,
			Time:         &at,
			Capacity:     &d.capacity,
			ClubName:     &d.club,
			ImageURL:     &d.image,
		}
	}
	return out
}

// IfEmpty inserts the demo events when the store has none and reports how
// many were inserted.
func IfEmpty(ctx context.Context, store EventStore, now time.Time, loc *time.Location) (int, error) {
	n, err := store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	events := Events(now, loc)
	for i := range events {
		if err := store.Create(ctx, &events[i]); err != nil {
			return i, fmt.Errorf("seed %q: %w", *events[i].Name, err)
		}
	}
	return len(events), nil
}
