package controllers

import (
	"log/slog"
	"net/http"

	"eventagenda/internal/delivery/http/helpers"
	"eventagenda/internal/domain"
)

// SetCurrentRequest is the request body for PUT /events/{eventID}/current.
// A null item_id clears the live item.
type SetCurrentRequest struct {
	ItemID *string `json:"item_id"`
}

// Validate implements Validator.
func (s SetCurrentRequest) Validate() []string {
	if s.ItemID != nil && *s.ItemID == "" {
		return []string{"item_id must be null or a non-empty id"}
	}
	return nil
}

// CurrentItemResponse is the response body for the live item endpoints.
type CurrentItemResponse struct {
	EventID string  `json:"event_id"`
	ItemID  *string `json:"item_id"`
}

// CurrentItemSuccessResponse is the success response envelope for the live item endpoints.
type CurrentItemSuccessResponse struct {
	Data  CurrentItemResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type LiveItemController struct {
	Logger  *slog.Logger
	Gate    domain.AdminGate
	Service domain.LiveItemService
}

func NewLiveItemController(logger *slog.Logger, gate domain.AdminGate, svc domain.LiveItemService) *LiveItemController {
	return &LiveItemController{
		Logger:  logger,
		Gate:    gate,
		Service: svc,
	}
}

// SetCurrent godoc
// @Summary Set the item happening now
// @Description Points the event's live marker at an agenda item of the same event, or clears it with a null item_id. Organizer only.
// @Tags live
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body SetCurrentRequest true "Item to mark as current"
// @Success 200 {object} controllers.CurrentItemSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request, validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/current [put]
func (c *LiveItemController) SetCurrent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	var req SetCurrentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	if err := c.Gate.SetCurrent(r.Context(), p, eventID, req.ItemID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, CurrentItemResponse{EventID: eventID, ItemID: req.ItemID})
}

// GetCurrent godoc
// @Summary Get the item happening now
// @Description Returns the live item id of the event, or null when none is set.
// @Tags live
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.CurrentItemSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/current [get]
func (c *LiveItemController) GetCurrent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	if _, ok := requirePrincipal(w, r); !ok {
		return
	}
	itemID, err := c.Service.GetCurrent(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, CurrentItemResponse{EventID: eventID, ItemID: itemID})
}
