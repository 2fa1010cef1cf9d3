package controllers

import (
	"log/slog"
	"net/http"

	"eventagenda/internal/delivery/http/helpers"
	"eventagenda/internal/domain"
)

// SelectRequest is the request body for POST /agenda/{itemID}/selection.
// group_id is the item's simultaneous group; leave it empty for an ungrouped item.
type SelectRequest struct {
	GroupID string `json:"group_id"`
}

// SelectionResponse reports the caller's pick within a group.
type SelectionResponse struct {
	GroupID string  `json:"group_id"`
	ItemID  *string `json:"item_id"`
}

// SelectionSuccessResponse is the success response envelope for GET /groups/{groupID}/selection.
type SelectionSuccessResponse struct {
	Data  SelectionResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type SelectionController struct {
	Logger  *slog.Logger
	Service domain.SelectionService
}

func NewSelectionController(logger *slog.Logger, svc domain.SelectionService) *SelectionController {
	return &SelectionController{
		Logger:  logger,
		Service: svc,
	}
}

// Select godoc
// @Summary Pick an agenda item within its group
// @Description Records the caller's choice of this item. Any earlier pick in the same simultaneous group is released in the same step. Repeating the call is a no-op.
// @Tags selection
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param itemID path string true "Agenda item ID"
// @Param body body SelectRequest true "Group the item belongs to"
// @Success 200 {object} controllers.AgendaItemSuccessResponse "data contains the item with refreshed selections"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: group_mismatch, capacity_exceeded"
// @Failure 503 {object} helpers.APIResponse "error.code: unavailable"
// @Router /agenda/{itemID}/selection [post]
func (c *SelectionController) Select(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathParam(w, r, "itemID")
	if !ok {
		return
	}
	var req SelectRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	item, err := c.Service.Select(r.Context(), itemID, p.UserID, req.GroupID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, item)
}

// Deselect godoc
// @Summary Drop a pick
// @Description Removes the caller's selection of this item. No-op when the caller had not picked it.
// @Tags selection
// @Security BearerAuth
// @Param itemID path string true "Agenda item ID"
// @Param group_id query string false "Group the item belongs to"
// @Success 204 "No Content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: group_mismatch"
// @Router /agenda/{itemID}/selection [delete]
func (c *SelectionController) Deselect(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathParam(w, r, "itemID")
	if !ok {
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	if err := c.Service.Deselect(r.Context(), itemID, p.UserID, r.URL.Query().Get("group_id")); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSelection godoc
// @Summary Get the caller's pick in a group
// @Description Returns the item the caller selected in the simultaneous group, or null.
// @Tags selection
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param groupID path string true "Simultaneous group ID"
// @Success 200 {object} controllers.SelectionSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /events/{eventID}/groups/{groupID}/selection [get]
func (c *SelectionController) GetSelection(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	groupID, ok := pathParam(w, r, "groupID")
	if !ok {
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	itemID, found, err := c.Service.GetSelection(r.Context(), eventID, groupID, p.UserID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	resp := SelectionResponse{GroupID: groupID}
	if found {
		resp.ItemID = &itemID
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}
