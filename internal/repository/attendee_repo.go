package repository

import (
	"context"
	"errors"

	"github.com/campusmap/campus-events/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateAttendee is returned when the (event, user) pair already has
// an attendance row.
var ErrDuplicateAttendee = errors.New("attendee already exists")

type AttendeeRepository interface {
	Create(ctx context.Context, attendee *models.Attendee) error
	Delete(ctx context.Context, eventID uint, userID string) error
	DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uint) error
	Exists(ctx context.Context, eventID uint, userID string) (bool, error)
	CountByEvent(ctx context.Context, eventID uint) (int64, error)
	CountsByEvents(ctx context.Context, eventIDs []uint) (map[uint]int, error)
	EventIDsByUser(ctx context.Context, userID string) ([]uint, error)
}

type attendeeRepository struct {
	db *gorm.DB
}

func NewAttendeeRepository(db *gorm.DB) AttendeeRepository {
	return &attendeeRepository{db: db}
}

func (r *attendeeRepository) Create(ctx context.Context, attendee *models.Attendee) error {
	err := r.db.WithContext(ctx).Create(attendee).Error
	if isUniqueViolation(err) {
		return ErrDuplicateAttendee
	}
	return err
}

// Delete removes the user's attendance row. A missing row is not an error.
func (r *attendeeRepository) Delete(ctx context.Context, eventID uint, userID string) error {
	return r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&models.Attendee{}).Error
}

func (r *attendeeRepository) DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uint) error {
	return tx.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&models.Attendee{}).Error
}

func (r *attendeeRepository) Exists(ctx context.Context, eventID uint, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Attendee{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *attendeeRepository) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Attendee{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

// CountsByEvents groups attendee rows by event. Events without attendees
// are absent from the map. A nil slice counts every event.
func (r *attendeeRepository) CountsByEvents(ctx context.Context, eventIDs []uint) (map[uint]int, error) {
	if eventIDs != nil && len(eventIDs) == 0 {
		return map[uint]int{}, nil
	}

	q := r.db.WithContext(ctx).
		Model(&models.Attendee{}).
		Select("event_id, COUNT(*) AS count")
	if eventIDs != nil {
		q = q.Where("event_id IN ?", eventIDs)
	}

	var rows []models.AttendeeCount
	if err := q.Group("event_id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.EventID] = int(row.Count)
	}
	return counts, nil
}

func (r *attendeeRepository) EventIDsByUser(ctx context.Context, userID string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Attendee{}).
		Where("user_id = ?", userID).
		Order("event_id ASC").
		Pluck("event_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
