package handler

import (
	"net/http"
	"time"

	"github.com/campusmap/campus-events/internal/dto"
	"github.com/campusmap/campus-events/internal/filter"
	"github.com/campusmap/campus-events/internal/service"
	"github.com/campusmap/campus-events/internal/session"
	"github.com/campusmap/campus-events/internal/view"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	svc service.EventService
	loc *time.Location
}

func NewEventHandler(svc service.EventService, loc *time.Location) *EventHandler {
	return &EventHandler{svc: svc, loc: loc}
}

func (h *EventHandler) RegisterRoutes(g *echo.Group, requireAuth echo.MiddlewareFunc) {
	g.GET("/events", h.ListEvents)
	g.GET("/events/:id", h.GetEvent)
	g.POST("/events", h.CreateEvent, requireAuth)
	g.PUT("/events/:id", h.UpdateEvent, requireAuth)
	g.DELETE("/events/:id", h.DeleteEvent, requireAuth)
	g.GET("/me/hosting", h.Hosting, requireAuth)
	g.GET("/me/attending", h.Attending, requireAuth)
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	var f filter.SearchFilters
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid filter parameters")
	}
	f = f.Clean()

	res, err := h.svc.Browse(c.Request().Context(), f)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, dto.BrowseResponse{
		Events:    nonNil(res.Events),
		Locations: res.Locations,
		Total:     res.Total,
	})
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	detail, err := h.svc.GetEvent(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, detail)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.EventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	event, err := req.ToModel(h.loc)
	if err != nil {
		return toHTTPError(err)
	}

	if err := h.svc.CreateEvent(c.Request().Context(), session.From(c).UserID, event); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req dto.EventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	event, err := req.ToModel(h.loc)
	if err != nil {
		return toHTTPError(err)
	}

	if err := h.svc.UpdateEvent(c.Request().Context(), session.From(c).UserID, id, event); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.svc.DeleteEvent(c.Request().Context(), session.From(c).UserID, id); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *EventHandler) Hosting(c echo.Context) error {
	events, err := h.svc.Hosting(c.Request().Context(), session.From(c).UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.EventListResponse{Events: nonNil(events)})
}

func (h *EventHandler) Attending(c echo.Context) error {
	events, err := h.svc.Attending(c.Request().Context(), session.From(c).UserID)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, dto.EventListResponse{Events: nonNil(events)})
}

func nonNil(events []view.EventView) []view.EventView {
	if events == nil {
		return []view.EventView{}
	}
	return events
}
