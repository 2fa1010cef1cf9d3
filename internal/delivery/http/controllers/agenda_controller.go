package controllers

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"eventagenda/internal/delivery/http/helpers"
	"eventagenda/internal/domain"
)

// AgendaExporter renders an agenda snapshot in a calendar format.
type AgendaExporter interface {
	Export(w io.Writer, event *domain.Event, snap *domain.AgendaSnapshot) (int, error)
}

// CreateItemRequest is the request body for POST /events/{eventID}/agenda.
type CreateItemRequest struct {
	Title               string   `json:"title"`
	Description         *string  `json:"description"`
	Date                string   `json:"date"`
	StartTime           string   `json:"start_time"`
	EndTime             string   `json:"end_time"`
	Speaker             *string  `json:"speaker"`
	SpeakerBio          *string  `json:"speaker_bio"`
	SpeakerImages       []string `json:"speaker_images"`
	Location            *string  `json:"location"`
	Category            string   `json:"category"`
	IsBreak             bool     `json:"is_break"`
	Order               int      `json:"order"`
	SimultaneousGroupID *string  `json:"simultaneous_group_id"`
	MaxAttendees        *int     `json:"max_attendees"`
}

// Validate implements Validator.
func (c CreateItemRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	}
	if strings.TrimSpace(c.Date) == "" {
		errs = append(errs, "date is required")
	}
	if strings.TrimSpace(c.StartTime) == "" {
		errs = append(errs, "start_time is required")
	}
	if strings.TrimSpace(c.EndTime) == "" {
		errs = append(errs, "end_time is required")
	}
	if _, ok := domain.ParseCategory(c.Category); !ok {
		errs = append(errs, "category must be one of keynote, presentation, panel, workshop, networking, break, other")
	}
	if c.MaxAttendees != nil && *c.MaxAttendees <= 0 {
		errs = append(errs, "max_attendees must be positive")
	}
	return errs
}

// nonEmpty drops blank optional strings.
func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func (c CreateItemRequest) toItem() *domain.AgendaItem {
	item := &domain.AgendaItem{
		Title:               strings.TrimSpace(c.Title),
		Description:         nonEmpty(c.Description),
		Date:                strings.TrimSpace(c.Date),
		StartTime:           strings.TrimSpace(c.StartTime),
		EndTime:             strings.TrimSpace(c.EndTime),
		Speaker:             nonEmpty(c.Speaker),
		SpeakerBio:          nonEmpty(c.SpeakerBio),
		SpeakerImages:       c.SpeakerImages,
		Location:            nonEmpty(c.Location),
		Category:            domain.Category(c.Category),
		IsBreak:             c.IsBreak,
		Order:               c.Order,
		SimultaneousGroupID: nonEmpty(c.SimultaneousGroupID),
		MaxAttendees:        c.MaxAttendees,
	}
	if item.SpeakerImages == nil {
		item.SpeakerImages = []string{}
	}
	return item
}

// UpdateItemRequest is the request body for PATCH /agenda/{itemID}. Omitted fields are unchanged.
// An empty string clears an optional text field; max_attendees 0 removes the ceiling.
type UpdateItemRequest struct {
	Title               *string   `json:"title"`
	Description         *string   `json:"description"`
	Date                *string   `json:"date"`
	StartTime           *string   `json:"start_time"`
	EndTime             *string   `json:"end_time"`
	Speaker             *string   `json:"speaker"`
	SpeakerBio          *string   `json:"speaker_bio"`
	SpeakerImages       *[]string `json:"speaker_images"`
	Location            *string   `json:"location"`
	Category            *string   `json:"category"`
	IsBreak             *bool     `json:"is_break"`
	Order               *int      `json:"order"`
	SimultaneousGroupID *string   `json:"simultaneous_group_id"`
	MaxAttendees        *int      `json:"max_attendees"`
	ExpectedVersion     *int      `json:"expected_version"`
}

// Validate implements Validator.
func (u UpdateItemRequest) Validate() []string {
	var errs []string
	if u.Category != nil {
		if c, ok := domain.ParseCategory(*u.Category); !ok || strings.TrimSpace(*u.Category) == "" {
			errs = append(errs, fmt.Sprintf("category %q is not a known category", c))
		}
	}
	if u.MaxAttendees != nil && *u.MaxAttendees < 0 {
		errs = append(errs, "max_attendees must not be negative")
	}
	patch := u.toPatch()
	if patch.Empty() {
		errs = append(errs, "no fields to update")
	}
	return errs
}

func (u UpdateItemRequest) toPatch() *domain.AgendaItemPatch {
	p := &domain.AgendaItemPatch{
		Title:               u.Title,
		Description:         u.Description,
		Date:                u.Date,
		StartTime:           u.StartTime,
		EndTime:             u.EndTime,
		Speaker:             u.Speaker,
		SpeakerBio:          u.SpeakerBio,
		SpeakerImages:       u.SpeakerImages,
		Location:            u.Location,
		IsBreak:             u.IsBreak,
		Order:               u.Order,
		SimultaneousGroupID: u.SimultaneousGroupID,
		MaxAttendees:        u.MaxAttendees,
		ExpectedVersion:     u.ExpectedVersion,
	}
	if u.Category != nil {
		c, _ := domain.ParseCategory(*u.Category)
		p.Category = &c
	}
	return p
}

// AgendaItemSuccessResponse is the success response envelope for single-item endpoints.
type AgendaItemSuccessResponse struct {
	Data  *domain.AgendaItem `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// AgendaSnapshotSuccessResponse is the success response envelope for GET /events/{eventID}/agenda.
type AgendaSnapshotSuccessResponse struct {
	Data  *domain.AgendaSnapshot `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type AgendaController struct {
	Logger   *slog.Logger
	Gate     domain.AdminGate
	Service  domain.AgendaService
	Events   domain.EventService
	Exporter AgendaExporter
}

func NewAgendaController(logger *slog.Logger, gate domain.AdminGate, svc domain.AgendaService, events domain.EventService, exporter AgendaExporter) *AgendaController {
	return &AgendaController{
		Logger:   logger,
		Gate:     gate,
		Service:  svc,
		Events:   events,
		Exporter: exporter,
	}
}

// CreateItem godoc
// @Summary Add an agenda item
// @Description Creates an agenda item for the event. Organizer only. Category defaults to "other", or "break" when is_break is set.
// @Tags agenda
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param item body CreateItemRequest true "Agenda item"
// @Success 201 {object} controllers.AgendaItemSuccessResponse "data contains the created item"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /events/{eventID}/agenda [post]
func (c *AgendaController) CreateItem(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	var req CreateItemRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	item := req.toItem()
	if err := c.Gate.CreateItem(r.Context(), p, eventID, item); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, item)
}

// UpdateItem godoc
// @Summary Update an agenda item
// @Description Applies a partial update. Organizer only. Pass expected_version to reject the update when the item changed since it was read.
// @Tags agenda
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param itemID path string true "Agenda item ID"
// @Param patch body UpdateItemRequest true "Fields to change"
// @Success 200 {object} controllers.AgendaItemSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: version_conflict"
// @Router /agenda/{itemID} [patch]
func (c *AgendaController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathParam(w, r, "itemID")
	if !ok {
		return
	}
	var req UpdateItemRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	item, err := c.Gate.UpdateItem(r.Context(), p, itemID, req.toPatch())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, item)
}

// DeleteItem godoc
// @Summary Delete an agenda item
// @Description Removes the item and its selections. Clears the live pointer if it referenced the item. Organizer only.
// @Tags agenda
// @Security BearerAuth
// @Param itemID path string true "Agenda item ID"
// @Success 204 "No Content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /agenda/{itemID} [delete]
func (c *AgendaController) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathParam(w, r, "itemID")
	if !ok {
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	if err := c.Gate.DeleteItem(r.Context(), p, itemID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetItem godoc
// @Summary Get an agenda item
// @Description Returns one item with its current attendee selections.
// @Tags agenda
// @Produce json
// @Security BearerAuth
// @Param itemID path string true "Agenda item ID"
// @Success 200 {object} controllers.AgendaItemSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /agenda/{itemID} [get]
func (c *AgendaController) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathParam(w, r, "itemID")
	if !ok {
		return
	}
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}
	item, err := c.Service.GetItem(r.Context(), itemID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, item)
}

// GetAgenda godoc
// @Summary Get the agenda of an event
// @Description Returns the ordered agenda: items grouped by date and sorted by start time, the live item and per-group selection counts.
// @Tags agenda
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.AgendaSnapshotSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/agenda [get]
func (c *AgendaController) GetAgenda(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}
	snap, err := c.Service.GetAgenda(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, snap)
}

// ExportICS godoc
// @Summary Export the agenda as iCalendar
// @Description Returns the agenda as a text/calendar feed with floating times. Items whose date or start time cannot be parsed are left out. No authentication, so calendar clients can subscribe.
// @Tags agenda
// @Produce text/calendar
// @Param eventID path string true "Event ID"
// @Success 200 {string} string "iCalendar feed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/agenda.ics [get]
func (c *AgendaController) ExportICS(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	event, err := c.Events.GetEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	snap, err := c.Service.GetAgenda(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	var buf bytes.Buffer
	if _, err := c.Exporter.Export(&buf, event, snap); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "agenda-"+eventID+".ics"))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
