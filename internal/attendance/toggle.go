// Package attendance implements the optimistic RSVP control shown in an
// event's detail view.
package attendance

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/campusmap/campus-events/internal/service"
	"github.com/campusmap/campus-events/internal/session"
	"github.com/rs/zerolog"
)

var (
	ErrSignInRequired = errors.New("sign in required")
	// ErrAlreadyAttending is the store's duplicate-attendance error.
	ErrAlreadyAttending = service.ErrAlreadyAttending
)

// Store is satisfied by service.AttendanceService.
type Store interface {
	IsAttending(ctx context.Context, eventID uint, userID string) (bool, error)
	SetAttendance(ctx context.Context, eventID uint, userID string, attending bool) error
	CountAttendees(ctx context.Context, eventID uint) (int64, error)
}

// State is what the control renders.
type State struct {
	EventID   uint
	Attending bool
	Count     int
	Pending   bool
}

type Option func(*Toggle)

// WithOpenCheck restricts reconciliation to while isOpen reports the event
// is still shown.
func WithOpenCheck(isOpen func(eventID uint) bool) Option {
	return func(t *Toggle) { t.isOpen = isOpen }
}

func WithLogger(log zerolog.Logger) Option {
	return func(t *Toggle) { t.log = log }
}

// Toggle tracks one user's attendance of one event. A click applies the
// change locally first, writes it, then reconciles the count with the
// store. Responses that arrive after a newer click are discarded.
type Toggle struct {
	store    Store
	sessions *session.Source
	isOpen   func(eventID uint) bool
	log      zerolog.Logger

	mu         sync.Mutex
	state      State
	generation uint64
}

func New(store Store, sessions *session.Source, eventID uint, opts ...Option) *Toggle {
	t := &Toggle{
		store:    store,
		sessions: sessions,
		isOpen:   func(uint) bool { return true },
		log:      zerolog.Nop(),
		state:    State{EventID: eventID},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Toggle) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Load reads the authoritative count and, for a signed-in user, whether
// they attend.
func (t *Toggle) Load(ctx context.Context) error {
	t.mu.Lock()
	t.generation++
	gen := t.generation
	eventID := t.state.EventID
	t.mu.Unlock()

	count, err := t.store.CountAttendees(ctx, eventID)
	if err != nil {
		return fmt.Errorf("load attendee count: %w", err)
	}

	attending := false
	if s := t.sessions.Current(); s.Authenticated() {
		attending, err = t.store.IsAttending(ctx, eventID, s.UserID)
		if err != nil {
			return fmt.Errorf("load attendance: %w", err)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen == t.generation {
		t.state.Count = int(count)
		t.state.Attending = attending
		t.state.Pending = false
	}
	return nil
}

// Toggle flips attendance for the current session's user.
func (t *Toggle) Toggle(ctx context.Context) error {
	s := t.sessions.Current()
	if !s.Authenticated() {
		return ErrSignInRequired
	}

	t.mu.Lock()
	prev := t.state
	next := prev
	next.Attending = !prev.Attending
	if next.Attending {
		next.Count++
	} else if next.Count > 0 {
		next.Count--
	}
	next.Pending = true
	t.state = next
	t.generation++
	gen := t.generation
	t.mu.Unlock()

	if err := t.store.SetAttendance(ctx, prev.EventID, s.UserID, next.Attending); err != nil {
		if errors.Is(err, ErrAlreadyAttending) {
			// The stored row stands, so the control shows attending.
			t.mu.Lock()
			if gen == t.generation {
				t.state.Attending = true
			}
			t.mu.Unlock()
			t.reconcile(ctx, gen, prev.EventID)
			return ErrAlreadyAttending
		}

		t.mu.Lock()
		if gen == t.generation {
			prev.Pending = false
			t.state = prev
		}
		t.mu.Unlock()
		return fmt.Errorf("set attendance: %w", err)
	}

	t.reconcile(ctx, gen, prev.EventID)
	return nil
}

// reconcile replaces the optimistic count with the store's while gen is
// still the latest operation.
func (t *Toggle) reconcile(ctx context.Context, gen uint64, eventID uint) {
	count, err := t.store.CountAttendees(ctx, eventID)

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.generation {
		return
	}
	t.state.Pending = false
	if err != nil {
		t.log.Warn().Err(err).Uint("event_id", eventID).Msg("reconcile attendee count")
		return
	}
	if t.isOpen(eventID) {
		t.state.Count = int(count)
	}
}

// Watch reloads the control whenever the session changes, until ctx is
// done. The subscription is in place when Watch returns.
func (t *Toggle) Watch(ctx context.Context) {
	updates, cancel := t.sessions.Subscribe()

	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-updates:
				if !ok {
					return
				}
				if err := t.Load(ctx); err != nil {
					t.log.Warn().Err(err).Msg("reload attendance after session change")
				}
			}
		}
	}()
}
