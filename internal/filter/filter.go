// Package filter reduces the full event list to what a user asked to see.
//
// Every function here is pure: inputs are never mutated and every input
// combination, including empty lists and all-sentinel filters, yields a
// well-formed (possibly empty) result.
package filter

import (
	"sort"
	"strings"
	"time"

	"github.com/campusmap/campus-events/internal/view"
)

// All is the sentinel that disables the location, category and capacity
// dimensions.
const All = "all"

type TimeWindow string

const (
	TimeAny   TimeWindow = "any"
	TimeToday TimeWindow = "today"
	TimeWeek  TimeWindow = "week"
	TimeMonth TimeWindow = "month"
)

type Bucket string

const (
	BucketAll    Bucket = All
	BucketSmall  Bucket = "small"
	BucketMedium Bucket = "medium"
	BucketLarge  Bucket = "large"
)

const (
	smallMax  = 20
	mediumMax = 50
)

// SearchFilters is the five-dimensional filter state. The zero value shows
// everything: empty fields behave like their any/all sentinel.
type SearchFilters struct {
	SearchTerm      string     `json:"searchTerm" query:"search"`
	TimeFilter      TimeWindow `json:"timeFilter" query:"time"`
	LocationFilter  string     `json:"locationFilter" query:"location"`
	EventTypeFilter string     `json:"eventTypeFilter" query:"type"`
	CapacityFilter  Bucket     `json:"capacityFilter" query:"capacity"`
}

// Default returns filters with every dimension set to its sentinel.
func Default() SearchFilters {
	return SearchFilters{
		TimeFilter:      TimeAny,
		LocationFilter:  All,
		EventTypeFilter: All,
		CapacityFilter:  BucketAll,
	}
}

// Clean trims the search term, lower-cases the enumerated dimensions and
// fills empty ones with their sentinels. Location is matched exactly and
// left as given.
func (f SearchFilters) Clean() SearchFilters {
	f.SearchTerm = strings.TrimSpace(f.SearchTerm)
	f.TimeFilter = TimeWindow(strings.ToLower(string(f.TimeFilter)))
	f.EventTypeFilter = strings.ToLower(f.EventTypeFilter)
	f.CapacityFilter = Bucket(strings.ToLower(string(f.CapacityFilter)))
	return f.Normalize()
}

// Normalize fills empty dimensions with their sentinels.
func (f SearchFilters) Normalize() SearchFilters {
	if f.TimeFilter == "" {
		f.TimeFilter = TimeAny
	}
	if f.LocationFilter == "" {
		f.LocationFilter = All
	}
	if f.EventTypeFilter == "" {
		f.EventTypeFilter = All
	}
	if f.CapacityFilter == "" {
		f.CapacityFilter = BucketAll
	}
	return f
}

// Apply returns the events that pass every active predicate, in input order.
// now fixes "today" for the time window; its location decides local midnight.
func Apply(events []view.EventView, f SearchFilters, now time.Time) []view.EventView {
	p := compile(f, now)
	out := make([]view.EventView, 0, len(events))
	for _, ev := range events {
		if p.match(ev) {
			out = append(out, ev)
		}
	}
	return out
}

// UniqueLocations returns the sorted distinct locations of events. Callers
// pass the unfiltered list so an active location filter never hides its own
// option.
func UniqueLocations(events []view.EventView) []string {
	seen := make(map[string]struct{}, len(events))
	out := make([]string, 0, len(events))
	for _, ev := range events {
		if _, ok := seen[ev.Location]; ok {
			continue
		}
		seen[ev.Location] = struct{}{}
		out = append(out, ev.Location)
	}
	sort.Strings(out)
	return out
}

// BucketOf maps an attendee count to exactly one size bucket.
func BucketOf(attendees int) Bucket {
	switch {
	case attendees <= smallMax:
		return BucketSmall
	case attendees <= mediumMax:
		return BucketMedium
	default:
		return BucketLarge
	}
}

// SearchTerms splits a comma separated search string into lower-cased,
// trimmed, non-empty terms.
func SearchTerms(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(strings.ToLower(raw), ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			terms = append(terms, p)
		}
	}
	return terms
}

type predicate struct {
	terms    []string
	window   TimeWindow
	today    time.Time
	until    time.Time
	location string
	category string
	bucket   Bucket
}

func compile(f SearchFilters, now time.Time) predicate {
	p := predicate{
		terms:    SearchTerms(f.SearchTerm),
		window:   f.TimeFilter,
		location: f.LocationFilter,
		category: f.EventTypeFilter,
		bucket:   f.CapacityFilter,
		today:    view.StartOfDay(now),
	}
	switch p.window {
	case TimeWeek:
		p.until = p.today.AddDate(0, 0, 7)
	case TimeMonth:
		p.until = p.today.AddDate(0, 1, 0)
	}
	return p
}

func (p predicate) match(ev view.EventView) bool {
	return p.matchSearch(ev) &&
		p.matchWindow(ev) &&
		(p.location == "" || p.location == All || ev.Location == p.location) &&
		(p.category == "" || p.category == All || string(ev.EventType) == p.category) &&
		p.matchBucket(ev.Attendees)
}

func (p predicate) matchSearch(ev view.EventView) bool {
	if len(p.terms) == 0 {
		return true
	}
	haystack := strings.ToLower(ev.Title + " " + ev.Location + " " + strings.Join(ev.Tags, " "))
	for _, term := range p.terms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}

func (p predicate) matchWindow(ev view.EventView) bool {
	switch p.window {
	case TimeToday, TimeWeek, TimeMonth:
	default:
		return true
	}

	day, ok := eventDay(ev, p.today)
	if !ok {
		return true
	}
	if day.Before(p.today) {
		return false
	}
	if p.window == TimeToday {
		return true
	}
	return !day.After(p.until)
}

func (p predicate) matchBucket(attendees int) bool {
	switch p.bucket {
	case BucketSmall, BucketMedium, BucketLarge:
		return BucketOf(attendees) == p.bucket
	default:
		return true
	}
}

// eventDay resolves the start of the event's day. Views built without Day
// are parsed from their formatted date in today's year; an unparseable date
// is never excluded.
func eventDay(ev view.EventView, today time.Time) (time.Time, bool) {
	if !ev.Day.IsZero() {
		return view.StartOfDay(ev.Day.In(today.Location())), true
	}
	parsed, err := time.ParseInLocation(view.DateLayout, ev.Date, today.Location())
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(today.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, today.Location()), true
}
