// Package catalog keeps the transformed snapshot of every event that the
// filter engine runs over.
package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/campusmap/campus-events/internal/models"
	"github.com/campusmap/campus-events/internal/view"
	"github.com/rs/zerolog"
)

type EventLister interface {
	FindAll(ctx context.Context) ([]models.Event, error)
}

type CountLister interface {
	CountsByEvents(ctx context.Context, eventIDs []uint) (map[uint]int, error)
}

// Catalog caches the full EventView list for a TTL. Writes and broker
// notifications call Invalidate; a load that started before an
// invalidation is returned to its caller but not cached.
type Catalog struct {
	events EventLister
	counts CountLister
	ttl    time.Duration
	loc    *time.Location
	now    func() time.Time
	log    zerolog.Logger

	mu       sync.Mutex
	snapshot []view.EventView
	loadedAt time.Time
	valid    bool
	version  uint64
}

type Option func(*Catalog)

func WithClock(now func() time.Time) Option {
	return func(c *Catalog) { c.now = now }
}

func WithLogger(log zerolog.Logger) Option {
	return func(c *Catalog) { c.log = log }
}

func New(events EventLister, counts CountLister, ttl time.Duration, loc *time.Location, opts ...Option) *Catalog {
	c := &Catalog{
		events: events,
		counts: counts,
		ttl:    ttl,
		loc:    loc,
		now:    time.Now,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns every event in store order. The returned slice is shared
// and must not be modified.
func (c *Catalog) Snapshot(ctx context.Context) ([]view.EventView, error) {
	c.mu.Lock()
	if c.valid && c.now().Sub(c.loadedAt) < c.ttl {
		out := c.snapshot
		c.mu.Unlock()
		return out, nil
	}
	version := c.version
	c.mu.Unlock()

	events, err := c.load(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.version == version {
		c.snapshot = events
		c.loadedAt = c.now()
		c.valid = true
	}
	c.mu.Unlock()

	c.log.Debug().Int("events", len(events)).Msg("catalog loaded")
	return events, nil
}

func (c *Catalog) load(ctx context.Context) ([]view.EventView, error) {
	records, err := c.events.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}

	ids := make([]uint, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	counts, err := c.counts.CountsByEvents(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count attendees: %w", err)
	}

	return view.TransformAll(records, counts, c.now(), c.loc), nil
}

// Invalidate drops the cached snapshot.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.version++
	c.mu.Unlock()
}

// Location is the zone event dates are rendered in.
func (c *Catalog) Location() *time.Location {
	return c.loc
}
