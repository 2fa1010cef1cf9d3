package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"eventagenda/internal/delivery/http/helpers"
	"eventagenda/internal/domain"
)

// CreateEventRequest is the request body for POST /events. Only name is accepted.
type CreateEventRequest struct {
	Name string `json:"name"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// EventSuccessResponse is the success response envelope for event endpoints.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Gate    domain.AdminGate
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, gate domain.AdminGate, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Gate:    gate,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create the event an agenda belongs to. Organizer only. The caller becomes the event owner.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data (name only)"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	now := time.Now().UTC()
	event := domain.NewEvent(strings.TrimSpace(req.Name), p.UserID, now, now)
	if err := c.Gate.CreateEvent(r.Context(), p, event); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Returns the event with its live item pointer and agenda timestamp.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
