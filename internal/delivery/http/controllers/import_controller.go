package controllers

import (
	"fmt"
	"log/slog"
	"net/http"

	"eventagenda/internal/delivery/http/helpers"
	"eventagenda/internal/domain"
)

// ImportResponse is the data payload for the import endpoints.
type ImportResponse struct {
	Created int `json:"created"`
}

// ImportSuccessResponse is the success response envelope for the import endpoints (200).
type ImportSuccessResponse struct {
	Data  ImportResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ImportItemsRequest is the request body for POST /events/{eventID}/import/items.
type ImportItemsRequest struct {
	Items []CreateItemRequest `json:"items"`
}

// Validate implements Validator.
func (req ImportItemsRequest) Validate() []string {
	if len(req.Items) == 0 {
		return []string{"items must not be empty"}
	}
	var errs []string
	for i, item := range req.Items {
		for _, e := range item.Validate() {
			errs = append(errs, fmt.Sprintf("items[%d]: %s", i, e))
		}
	}
	return errs
}

type ImportController struct {
	Logger *slog.Logger
	Gate   domain.AdminGate
}

func NewImportController(logger *slog.Logger, gate domain.AdminGate) *ImportController {
	return &ImportController{
		Logger: logger,
		Gate:   gate,
	}
}

// ImportSessionize godoc
// @Summary Import agenda from Sessionize
// @Description Fetches the Sessionize schedule and appends its sessions as agenda items. Sessions starting together in different rooms share a simultaneous group. Items already on the agenda (same date, start time and title) are skipped. Organizer only.
// @Tags import
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param sessionizeID path string true "Sessionize ID"
// @Success 200 {object} controllers.ImportSuccessResponse "data contains the number of created items"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/import/sessionize/{sessionizeID} [post]
func (c *ImportController) ImportSessionize(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	sessionizeID := r.PathValue("sessionizeID")
	if eventID == "" || sessionizeID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or sessionizeID")
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	n, err := c.Gate.ImportSessionize(r.Context(), p, eventID, sessionizeID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	c.Logger.InfoContext(r.Context(), "sessionize import finished", "event_id", eventID, "sessionize_id", sessionizeID, "created", n)
	helpers.WriteJSONSuccess(w, http.StatusOK, ImportResponse{Created: n})
}

// ImportItems godoc
// @Summary Bulk import agenda items
// @Description Validates every item, then appends the ones not already on the agenda. Organizer only.
// @Tags import
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body ImportItemsRequest true "Items to import"
// @Success 200 {object} controllers.ImportSuccessResponse "data contains the number of created items"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/import/items [post]
func (c *ImportController) ImportItems(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	var req ImportItemsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	items := make([]*domain.AgendaItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = it.toItem()
	}
	n, err := c.Gate.ImportItems(r.Context(), p, eventID, items)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ImportResponse{Created: n})
}
