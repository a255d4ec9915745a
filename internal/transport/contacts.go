package transport

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/casaflow/casaflow/internal/auth"
	"github.com/casaflow/casaflow/internal/domain/activity"
	"github.com/casaflow/casaflow/internal/domain/contact"
	"github.com/casaflow/casaflow/internal/domain/timeline"
)

// ContactsHandler serves the contact lifecycle and timeline endpoints.
type ContactsHandler struct {
	contacts   *contact.Service
	timeline   *timeline.Service
	activities *activity.Service
}

// NewContactsHandler creates a new ContactsHandler.
func NewContactsHandler(contacts *contact.Service, tl *timeline.Service, activities *activity.Service) *ContactsHandler {
	return &ContactsHandler{
		contacts:   contacts,
		timeline:   tl,
		activities: activities,
	}
}

// Register wires the contact routes.
func (h *ContactsHandler) Register(e *echo.Echo) {
	group := e.Group("/contacts")
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.GET("/:id/timeline", h.Timeline)
	group.GET("/:id/status/history", h.StatusHistory)
	group.PUT("/:id/status/mode", h.SetMode)
	group.PUT("/:id/status/manual", h.SetManualStatus)
	group.POST("/:id/activities", h.LogActivity)
	group.POST("/:id/files", h.UploadFile)
}

func (h *ContactsHandler) Create(c echo.Context) error {
	var req contact.CreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.contacts.Create(c.Request().Context(), req)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *ContactsHandler) Get(c echo.Context) error {
	id, err := contactID(c)
	if err != nil {
		return err
	}
	item, err := h.contacts.Get(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ContactsHandler) Timeline(c echo.Context) error {
	id, err := contactID(c)
	if err != nil {
		return err
	}
	items, err := h.timeline.GetTimeline(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

func (h *ContactsHandler) StatusHistory(c echo.Context) error {
	id, err := contactID(c)
	if err != nil {
		return err
	}
	changes, err := h.contacts.StatusHistory(c.Request().Context(), id)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": changes})
}

type setModeRequest struct {
	Mode contact.StatusMode `json:"mode"`
}

func (h *ContactsHandler) SetMode(c echo.Context) error {
	id, err := contactID(c)
	if err != nil {
		return err
	}
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	var req setModeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.contacts.SetMode(c.Request().Context(), actor, id, req.Mode)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, item)
}

type setManualStatusRequest struct {
	Status contact.Status `json:"status"`
}

func (h *ContactsHandler) SetManualStatus(c echo.Context) error {
	id, err := contactID(c)
	if err != nil {
		return err
	}
	actor, err := auth.ActorFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	var req setManualStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.contacts.SetManualStatus(c.Request().Context(), actor, id, req.Status)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ContactsHandler) LogActivity(c echo.Context) error {
	id, err := contactID(c)
	if err != nil {
		return err
	}
	var a activity.Activity
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.activities.LogActivity(c.Request().Context(), id, &a)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *ContactsHandler) UploadFile(c echo.Context) error {
	id, err := contactID(c)
	if err != nil {
		return err
	}
	var req contact.UploadFileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	item, err := h.contacts.UploadFile(c.Request().Context(), id, req)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

func contactID(c echo.Context) (string, error) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "contact id is required")
	}
	return id, nil
}

// mapError translates domain errors into HTTP responses. Authorization and
// validation problems render a specific message; upstream failures render a
// generic retryable one, never internal error detail.
func mapError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, contact.ErrNotAuthorized):
		return echo.NewHTTPError(http.StatusForbidden, "admin role required")
	case errors.Is(err, contact.ErrContactNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "contact not found")
	case errors.Is(err, contact.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, "contact status is not in manual mode")
	case errors.Is(err, contact.ErrInvalidStatus),
		errors.Is(err, contact.ErrInvalidMode),
		errors.Is(err, contact.ErrInvalidInput),
		errors.Is(err, activity.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, timeline.ErrSourceUnavailable):
		return echo.NewHTTPError(http.StatusBadGateway, "timeline temporarily unavailable, please try again")
	default:
		return echo.NewHTTPError(http.StatusBadGateway, "temporary error, please try again")
	}
}
