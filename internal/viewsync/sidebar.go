// Package viewsync links the map and the list: activating a marker scrolls
// to and briefly highlights its list entry, and activating a list entry
// opens the event's detail view.
package viewsync

import (
	"sync"
	"time"

	"github.com/campusmap/campus-events/internal/view"
)

// HighlightDuration is how long a focused list entry stays highlighted.
const HighlightDuration = 2 * time.Second

// Handle is the rendered list entry of one event.
type Handle interface {
	// ScrollIntoView brings the entry to the vertical center of the list.
	ScrollIntoView()
	SetHighlighted(on bool)
	Release()
}

// HandleFactory renders the list entry for a newly listed event.
type HandleFactory func(ev view.EventView) Handle

// Timer is the part of *time.Timer the sidebar needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules fn after d, like time.AfterFunc.
type AfterFunc func(d time.Duration, fn func()) Timer

type Option func(*Sidebar)

// WithAfterFunc replaces the clock used for highlight expiry.
func WithAfterFunc(after AfterFunc) Option {
	return func(s *Sidebar) { s.after = after }
}

// Sidebar owns the id→entry mapping, the single transient highlight and the
// open detail view. It never returns errors; unknown ids are ignored.
type Sidebar struct {
	factory HandleFactory
	after   AfterFunc

	mu          sync.Mutex
	events      []view.EventView
	handles     map[string]Handle
	highlighted string
	generation  uint64
	timer       Timer
	detail      *view.EventView
}

func NewSidebar(factory HandleFactory, opts ...Option) *Sidebar {
	s := &Sidebar{
		factory: factory,
		after: func(d time.Duration, fn func()) Timer {
			return time.AfterFunc(d, fn)
		},
		handles: make(map[string]Handle),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync makes the list reflect events. Entries for ids no longer listed are
// released, new ids are rendered through the factory. An open detail view
// only picks up the refreshed fields of its own event; it is never
// replaced or closed here.
func (s *Sidebar) Sync(events []view.EventView) {
	s.mu.Lock()
	listed := make(map[string]struct{}, len(events))
	for _, ev := range events {
		listed[ev.ID] = struct{}{}
	}

	var released []Handle
	for id, h := range s.handles {
		if _, ok := listed[id]; ok {
			continue
		}
		if id == s.highlighted {
			s.stopHighlightLocked()
		}
		released = append(released, h)
		delete(s.handles, id)
	}

	var missing []view.EventView
	for _, ev := range events {
		if _, ok := s.handles[ev.ID]; !ok {
			missing = append(missing, ev)
		}
	}

	s.events = append(s.events[:0:0], events...)

	if s.detail != nil {
		for _, ev := range events {
			if ev.ID == s.detail.ID {
				updated := ev
				s.detail = &updated
				break
			}
		}
	}
	s.mu.Unlock()

	// Handles and the factory may call back into the sidebar.
	for _, h := range released {
		h.Release()
	}
	for _, ev := range missing {
		h := s.factory(ev)
		if h == nil {
			continue
		}
		if !s.adopt(ev.ID, h) {
			h.Release()
		}
	}
}

// adopt records h for id unless id was delisted or rendered concurrently.
func (s *Sidebar) adopt(id string, h Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.handles[id]; ok {
		return false
	}
	for _, ev := range s.events {
		if ev.ID == id {
			s.handles[id] = h
			return true
		}
	}
	return false
}

// Focus handles a marker activation. It returns false when id has no list
// entry.
func (s *Sidebar) Focus(id string) bool {
	s.mu.Lock()
	h, ok := s.handles[id]
	if !ok {
		s.mu.Unlock()
		return false
	}

	var prev Handle
	if s.highlighted != "" && s.highlighted != id {
		prev = s.handles[s.highlighted]
	}
	if s.timer != nil {
		s.timer.Stop()
	}

	s.highlighted = id
	s.generation++
	gen := s.generation
	s.timer = s.after(HighlightDuration, func() { s.expire(gen) })
	s.mu.Unlock()

	if prev != nil {
		prev.SetHighlighted(false)
	}
	h.ScrollIntoView()
	h.SetHighlighted(true)
	return true
}

func (s *Sidebar) expire(gen uint64) {
	s.mu.Lock()
	// A newer focus owns the highlight.
	if gen != s.generation || s.highlighted == "" {
		s.mu.Unlock()
		return
	}
	h := s.handles[s.highlighted]
	s.highlighted = ""
	s.timer = nil
	s.mu.Unlock()

	if h != nil {
		h.SetHighlighted(false)
	}
}

func (s *Sidebar) stopHighlightLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
	s.highlighted = ""
}

// Highlighted returns the id of the highlighted entry, or "" when none is.
func (s *Sidebar) Highlighted() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highlighted
}

// Events returns the listed events with IsHighlighted set on the focused one.
func (s *Sidebar) Events() []view.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]view.EventView, len(s.events))
	for i, ev := range s.events {
		ev.IsHighlighted = ev.ID == s.highlighted
		out[i] = ev
	}
	return out
}

// Open handles a list activation by opening the event's detail view.
func (s *Sidebar) Open(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ev := range s.events {
		if ev.ID == id {
			opened := ev
			s.detail = &opened
			return true
		}
	}
	return false
}

// Close leaves the detail view.
func (s *Sidebar) Close() {
	s.mu.Lock()
	s.detail = nil
	s.mu.Unlock()
}

// Detail returns the open event, if any.
func (s *Sidebar) Detail() (view.EventView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail == nil {
		return view.EventView{}, false
	}
	return *s.detail, true
}

// IsOpen reports whether id is the event in the detail view.
func (s *Sidebar) IsOpen(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detail != nil && s.detail.ID == id
}

// SetDetailAttendees updates the attendee count shown by the open detail
// view. It is a no-op when id is not the open event.
func (s *Sidebar) SetDetailAttendees(id string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail != nil && s.detail.ID == id {
		s.detail.Attendees = count
	}
}
