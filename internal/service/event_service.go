package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campusmap/campus-events/internal/filter"
	"github.com/campusmap/campus-events/internal/models"
	"github.com/campusmap/campus-events/internal/repository"
	"github.com/campusmap/campus-events/internal/view"
	"github.com/campusmap/campus-events/pkg/logging"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotOwner      = errors.New("only the host can change this event")
	ErrInvalidUser   = errors.New("invalid user id")
)

const (
	RoutingEventCreated      = "event.created"
	RoutingEventUpdated      = "event.updated"
	RoutingEventDeleted      = "event.deleted"
	RoutingAttendanceChanged = "attendance.changed"
)

// Publisher sends change notifications to other replicas.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

type Catalog interface {
	Snapshot(ctx context.Context) ([]view.EventView, error)
	Invalidate()
	Location() *time.Location
}

// Notification is the body of every published change.
type Notification struct {
	EventID   uint   `json:"event_id"`
	UserID    string `json:"user_id,omitempty"`
	Attending *bool  `json:"attending,omitempty"`
}

type BrowseResult struct {
	Events    []view.EventView
	Locations []string
	Total     int
}

type EventService interface {
	Browse(ctx context.Context, f filter.SearchFilters) (*BrowseResult, error)
	GetEvent(ctx context.Context, id uint) (*view.Detail, error)
	CreateEvent(ctx context.Context, owner string, event *models.Event) error
	UpdateEvent(ctx context.Context, owner string, id uint, event *models.Event) error
	DeleteEvent(ctx context.Context, owner string, id uint) error
	Hosting(ctx context.Context, owner string) ([]view.EventView, error)
	Attending(ctx context.Context, userID string) ([]view.EventView, error)
}

type eventService struct {
	events    repository.EventRepository
	attendees repository.AttendeeRepository
	catalog   Catalog
	publisher Publisher
	loc       *time.Location
	now       func() time.Time
	log       zerolog.Logger
}

// NewEventService wires the event use cases. publisher may be nil.
func NewEventService(
	events repository.EventRepository,
	attendees repository.AttendeeRepository,
	catalog Catalog,
	publisher Publisher,
) EventService {
	loc := catalog.Location()
	if loc == nil {
		loc = time.Local
	}
	return &eventService{
		events:    events,
		attendees: attendees,
		catalog:   catalog,
		publisher: publisher,
		loc:       loc,
		now:       time.Now,
		log:       logging.Component("event-service"),
	}
}

// Browse filters the full catalog. Locations are the facets of the
// unfiltered list and Total is its size.
func (s *eventService) Browse(ctx context.Context, f filter.SearchFilters) (*BrowseResult, error) {
	all, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("browse events: %w", err)
	}

	return &BrowseResult{
		Events:    filter.Apply(all, f.Normalize(), s.now().In(s.loc)),
		Locations: filter.UniqueLocations(all),
		Total:     len(all),
	}, nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*view.Detail, error) {
	event, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.attendees.CountByEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count attendees: %w", err)
	}

	detail := view.ToDetail(*event, int(count), s.now(), s.loc)
	return &detail, nil
}

func (s *eventService) CreateEvent(ctx context.Context, owner string, event *models.Event) error {
	if err := validateUserID(owner); err != nil {
		return err
	}
	event.ID = 0
	event.OwnerUser = &owner

	if err := s.events.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	s.changed(RoutingEventCreated, Notification{EventID: event.ID, UserID: owner})
	return nil
}

func (s *eventService) UpdateEvent(ctx context.Context, owner string, id uint, event *models.Event) error {
	existing, err := s.owned(ctx, owner, id)
	if err != nil {
		return err
	}

	event.ID = existing.ID
	event.OwnerUser = existing.OwnerUser
	event.CreatedAt = existing.CreatedAt

	if err := s.events.Update(ctx, event); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("update event: %w", err)
	}

	s.changed(RoutingEventUpdated, Notification{EventID: id, UserID: owner})
	return nil
}

// DeleteEvent removes the event and its attendance rows together.
func (s *eventService) DeleteEvent(ctx context.Context, owner string, id uint) error {
	if _, err := s.owned(ctx, owner, id); err != nil {
		return err
	}

	err := s.events.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.attendees.DeleteByEvent(ctx, tx, id); err != nil {
			return err
		}
		return s.events.Delete(ctx, tx, id)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEventNotFound
	}
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}

	s.changed(RoutingEventDeleted, Notification{EventID: id, UserID: owner})
	return nil
}

func (s *eventService) Hosting(ctx context.Context, owner string) ([]view.EventView, error) {
	if err := validateUserID(owner); err != nil {
		return nil, err
	}
	events, err := s.events.FindByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list hosted events: %w", err)
	}
	return s.transform(ctx, events)
}

func (s *eventService) Attending(ctx context.Context, userID string) ([]view.EventView, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	ids, err := s.attendees.EventIDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list attended events: %w", err)
	}
	events, err := s.events.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list attended events: %w", err)
	}
	return s.transform(ctx, events)
}

func (s *eventService) transform(ctx context.Context, events []models.Event) ([]view.EventView, error) {
	ids := make([]uint, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	counts, err := s.attendees.CountsByEvents(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count attendees: %w", err)
	}
	return view.TransformAll(events, counts, s.now(), s.loc), nil
}

func (s *eventService) find(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	return event, nil
}

func (s *eventService) owned(ctx context.Context, owner string, id uint) (*models.Event, error) {
	if err := validateUserID(owner); err != nil {
		return nil, err
	}
	event, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.OwnerUser == nil || *event.OwnerUser != owner {
		return nil, ErrNotOwner
	}
	return event, nil
}

// changed drops the cached catalog and tells other replicas to do the same.
func (s *eventService) changed(routingKey string, n Notification) {
	if s.catalog != nil {
		s.catalog.Invalidate()
	}
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, n); err != nil {
		s.log.Warn().Err(err).Str("routing_key", routingKey).Uint("event_id", n.EventID).Msg("publish failed")
	}
}

func validateUserID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidUser
	}
	return nil
}
