package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/campusmap/campus-events/internal/models"
	"github.com/campusmap/campus-events/internal/view"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- Mock EventRepository ---

type mockEventRepo struct {
	createFn      func(ctx context.Context, event *models.Event) error
	updateFn      func(ctx context.Context, event *models.Event) error
	deleteFn      func(ctx context.Context, tx *gorm.DB, id uint) error
	findByIDFn    func(ctx context.Context, id uint) (*models.Event, error)
	findAllFn     func(ctx context.Context) ([]models.Event, error)
	findByOwnerFn func(ctx context.Context, owner string) ([]models.Event, error)
	findByIDsFn   func(ctx context.Context, ids []uint) ([]models.Event, error)
	countFn       func(ctx context.Context) (int64, error)
	db            *gorm.DB
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	return m.createFn(ctx, event)
}
func (m *mockEventRepo) Update(ctx context.Context, event *models.Event) error {
	return m.updateFn(ctx, event)
}
func (m *mockEventRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return m.deleteFn(ctx, tx, id)
}
func (m *mockEventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) FindAll(ctx context.Context) ([]models.Event, error) {
	return m.findAllFn(ctx)
}
func (m *mockEventRepo) FindByOwner(ctx context.Context, owner string) ([]models.Event, error) {
	return m.findByOwnerFn(ctx, owner)
}
func (m *mockEventRepo) FindByIDs(ctx context.Context, ids []uint) ([]models.Event, error) {
	return m.findByIDsFn(ctx, ids)
}
func (m *mockEventRepo) Count(ctx context.Context) (int64, error) {
	return m.countFn(ctx)
}
func (m *mockEventRepo) GetDB() *gorm.DB {
	return m.db
}

// --- Mock AttendeeRepository ---

type mockAttendeeRepo struct {
	createFn         func(ctx context.Context, a *models.Attendee) error
	deleteFn         func(ctx context.Context, eventID uint, userID string) error
	deleteByEventFn  func(ctx context.Context, tx *gorm.DB, eventID uint) error
	existsFn         func(ctx context.Context, eventID uint, userID string) (bool, error)
	countByEventFn   func(ctx context.Context, eventID uint) (int64, error)
	countsByEventsFn func(ctx context.Context, ids []uint) (map[uint]int, error)
	eventIDsByUserFn func(ctx context.Context, userID string) ([]uint, error)
}

func (m *mockAttendeeRepo) Create(ctx context.Context, a *models.Attendee) error {
	return m.createFn(ctx, a)
}
func (m *mockAttendeeRepo) Delete(ctx context.Context, eventID uint, userID string) error {
	return m.deleteFn(ctx, eventID, userID)
}
func (m *mockAttendeeRepo) DeleteByEvent(ctx context.Context, tx *gorm.DB, eventID uint) error {
	return m.deleteByEventFn(ctx, tx, eventID)
}
func (m *mockAttendeeRepo) Exists(ctx context.Context, eventID uint, userID string) (bool, error) {
	return m.existsFn(ctx, eventID, userID)
}
func (m *mockAttendeeRepo) CountByEvent(ctx context.Context, eventID uint) (int64, error) {
	return m.countByEventFn(ctx, eventID)
}
func (m *mockAttendeeRepo) CountsByEvents(ctx context.Context, ids []uint) (map[uint]int, error) {
	return m.countsByEventsFn(ctx, ids)
}
func (m *mockAttendeeRepo) EventIDsByUser(ctx context.Context, userID string) ([]uint, error) {
	return m.eventIDsByUserFn(ctx, userID)
}

// --- Mock Catalog / Publisher ---

type mockCatalog struct {
	events      []view.EventView
	err         error
	invalidated int
	loc         *time.Location
}

func (m *mockCatalog) Snapshot(ctx context.Context) ([]view.EventView, error) {
	return m.events, m.err
}
func (m *mockCatalog) Invalidate() { m.invalidated++ }
func (m *mockCatalog) Location() *time.Location {
	if m.loc == nil {
		return time.UTC
	}
	return m.loc
}

type published struct {
	key     string
	payload any
}

type mockPublisher struct {
	sent []published
	err  error
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	m.sent = append(m.sent, published{key: routingKey, payload: payload})
	return m.err
}

func newTxDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, PreferSimpleProtocol: true}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func strPtr(s string) *string { return &s }
