package handler

import (
	"context"

	"github.com/campusmap/campus-events/internal/filter"
	"github.com/campusmap/campus-events/internal/models"
	"github.com/campusmap/campus-events/internal/service"
	"github.com/campusmap/campus-events/internal/view"
)

// --- Mock EventService ---

type mockEventService struct {
	browseFn    func(ctx context.Context, f filter.SearchFilters) (*service.BrowseResult, error)
	getFn       func(ctx context.Context, id uint) (*view.Detail, error)
	createFn    func(ctx context.Context, owner string, event *models.Event) error
	updateFn    func(ctx context.Context, owner string, id uint, event *models.Event) error
	deleteFn    func(ctx context.Context, owner string, id uint) error
	hostingFn   func(ctx context.Context, owner string) ([]view.EventView, error)
	attendingFn func(ctx context.Context, userID string) ([]view.EventView, error)
}

func (m *mockEventService) Browse(ctx context.Context, f filter.SearchFilters) (*service.BrowseResult, error) {
	return m.browseFn(ctx, f)
}
func (m *mockEventService) GetEvent(ctx context.Context, id uint) (*view.Detail, error) {
	return m.getFn(ctx, id)
}
func (m *mockEventService) CreateEvent(ctx context.Context, owner string, event *models.Event) error {
	return m.createFn(ctx, owner, event)
}
func (m *mockEventService) UpdateEvent(ctx context.Context, owner string, id uint, event *models.Event) error {
	return m.updateFn(ctx, owner, id, event)
}
func (m *mockEventService) DeleteEvent(ctx context.Context, owner string, id uint) error {
	return m.deleteFn(ctx, owner, id)
}
func (m *mockEventService) Hosting(ctx context.Context, owner string) ([]view.EventView, error) {
	return m.hostingFn(ctx, owner)
}
func (m *mockEventService) Attending(ctx context.Context, userID string) ([]view.EventView, error) {
	return m.attendingFn(ctx, userID)
}

// --- Mock AttendanceService ---

type mockAttendanceService struct {
	isAttendingFn func(ctx context.Context, eventID uint, userID string) (bool, error)
	setFn         func(ctx context.Context, eventID uint, userID string, attending bool) error
	countFn       func(ctx context.Context, eventID uint) (int64, error)
}

func (m *mockAttendanceService) IsAttending(ctx context.Context, eventID uint, userID string) (bool, error) {
	return m.isAttendingFn(ctx, eventID, userID)
}
func (m *mockAttendanceService) SetAttendance(ctx context.Context, eventID uint, userID string, attending bool) error {
	return m.setFn(ctx, eventID, userID, attending)
}
func (m *mockAttendanceService) CountAttendees(ctx context.Context, eventID uint) (int64, error) {
	return m.countFn(ctx, eventID)
}
