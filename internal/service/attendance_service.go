package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/campusmap/campus-events/internal/models"
	"github.com/campusmap/campus-events/internal/repository"
	"github.com/campusmap/campus-events/pkg/logging"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var ErrAlreadyAttending = errors.New("already attending")

type AttendanceService interface {
	IsAttending(ctx context.Context, eventID uint, userID string) (bool, error)
	SetAttendance(ctx context.Context, eventID uint, userID string, attending bool) error
	CountAttendees(ctx context.Context, eventID uint) (int64, error)
}

type attendanceService struct {
	events    repository.EventRepository
	attendees repository.AttendeeRepository
	catalog   Catalog
	publisher Publisher
	log       zerolog.Logger
}

func NewAttendanceService(
	events repository.EventRepository,
	attendees repository.AttendeeRepository,
	catalog Catalog,
	publisher Publisher,
) AttendanceService {
	return &attendanceService{
		events:    events,
		attendees: attendees,
		catalog:   catalog,
		publisher: publisher,
		log:       logging.Component("attendance-service"),
	}
}

func (s *attendanceService) IsAttending(ctx context.Context, eventID uint, userID string) (bool, error) {
	if err := validateUserID(userID); err != nil {
		return false, err
	}
	ok, err := s.attendees.Exists(ctx, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("check attendance: %w", err)
	}
	return ok, nil
}

// SetAttendance inserts or removes the user's attendance row. Removing a
// row that does not exist succeeds.
func (s *attendanceService) SetAttendance(ctx context.Context, eventID uint, userID string, attending bool) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("find event: %w", err)
	}

	if attending {
		err := s.attendees.Create(ctx, &models.Attendee{EventID: eventID, UserID: userID})
		if errors.Is(err, repository.ErrDuplicateAttendee) {
			return ErrAlreadyAttending
		}
		if err != nil {
			return fmt.Errorf("add attendee: %w", err)
		}
	} else if err := s.attendees.Delete(ctx, eventID, userID); err != nil {
		return fmt.Errorf("remove attendee: %w", err)
	}

	if s.catalog != nil {
		s.catalog.Invalidate()
	}
	if s.publisher != nil {
		n := Notification{EventID: eventID, UserID: userID, Attending: &attending}
		if err := s.publisher.Publish(RoutingAttendanceChanged, n); err != nil {
			s.log.Warn().Err(err).Uint("event_id", eventID).Msg("publish failed")
		}
	}
	return nil
}

func (s *attendanceService) CountAttendees(ctx context.Context, eventID uint) (int64, error) {
	n, err := s.attendees.CountByEvent(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("count attendees: %w", err)
	}
	return n, nil
}
