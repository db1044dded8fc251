package handler

import (
	"net/http"

	"github.com/campusmap/campus-events/internal/dto"
	"github.com/campusmap/campus-events/internal/service"
	"github.com/campusmap/campus-events/internal/session"
	"github.com/labstack/echo/v4"
)

type AttendanceHandler struct {
	svc service.AttendanceService
}

func NewAttendanceHandler(svc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

func (h *AttendanceHandler) RegisterRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/events/:id/attendees/count", h.CountAttendees)
	g.GET("/events/:id/attendance", h.GetAttendance, requireAuth)
	g.PUT("/events/:id/attendance", h.SetAttendance, requireAuth)
}

func (h *AttendanceHandler) CountAttendees(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	n, err := h.svc.CountAttendees(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.CountResponse{EventID: id, Count: n})
}

func (h *AttendanceHandler) GetAttendance(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	ok, err := h.svc.IsAttending(c.Request().Context(), id, session.From(c).UserID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.AttendanceResponse{EventID: id, Attending: ok})
}

// SetAttendance writes the requested state and answers with the
// recomputed attendee count.
func (h *AttendanceHandler) SetAttendance(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.AttendanceRequest
	if err := c.Bind(&req); err != nil || req.Attending == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "attending (bool) is required")
	}

	ctx := c.Request().Context()
	if err := h.svc.SetAttendance(ctx, id, session.From(c).UserID, *req.Attending); err != nil {
		return toHTTPError(err)
	}

	n, err := h.svc.CountAttendees(ctx, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.AttendanceResponse{EventID: id, Attending: *req.Attending, Count: &n})
}
