package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"eventagenda/internal/delivery/http/helpers"
	"eventagenda/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionController_Select(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"selected", nil, http.StatusOK, ""},
		{"wrong group", domain.ErrGroupMismatch, http.StatusConflict, helpers.ErrCodeGroupMismatch},
		{"full", domain.ErrCapacityExceeded, http.StatusConflict, helpers.ErrCodeCapacityExceeded},
		{"deleted item", domain.ErrNotFound, http.StatusNotFound, helpers.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeSelectionService{err: tt.err}
			ctrl := NewSelectionController(testLogger, svc)
			rr := httptest.NewRecorder()
			ctrl.Select(rr, newRequest(http.MethodPost, "/agenda/a/selection", `{"group_id":"slot-11"}`, &attendee, "itemID", "a"))

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "a", svc.lastItemID)
			assert.Equal(t, attendee.UserID, svc.lastUserID, "user comes from the token, not the body")
			assert.Equal(t, "slot-11", svc.lastGroup)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeErrorCode(t, rr))
				return
			}
			item := decodeData[domain.AgendaItem](t, rr)
			assert.Equal(t, []string{attendee.UserID}, item.AttendeeSelections)
		})
	}
}

func TestSelectionController_SelectRejectsUserIDInBody(t *testing.T) {
	ctrl := NewSelectionController(testLogger, &fakeSelectionService{})
	rr := httptest.NewRecorder()
	ctrl.Select(rr, newRequest(http.MethodPost, "/agenda/a/selection", `{"group_id":"g","user_id":"someone-else"}`, &attendee, "itemID", "a"))
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSelectionController_Deselect(t *testing.T) {
	svc := &fakeSelectionService{}
	ctrl := NewSelectionController(testLogger, svc)
	rr := httptest.NewRecorder()
	ctrl.Deselect(rr, newRequest(http.MethodDelete, "/agenda/a/selection?group_id=slot-11", "", &attendee, "itemID", "a"))
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "slot-11", svc.lastGroup)

	rr = httptest.NewRecorder()
	ctrl.Deselect(rr, newRequest(http.MethodDelete, "/agenda/a/selection", "", nil, "itemID", "a"))
	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSelectionController_GetSelection(t *testing.T) {
	svc := &fakeSelectionService{picks: map[string]string{"slot-11": "b"}}
	ctrl := NewSelectionController(testLogger, svc)

	rr := httptest.NewRecorder()
	ctrl.GetSelection(rr, newRequest(http.MethodGet, "/events/ev-1/groups/slot-11/selection", "", &attendee, "eventID", "ev-1", "groupID", "slot-11"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ev-1", svc.lastEvent)
	resp := decodeData[SelectionResponse](t, rr)
	require.NotNil(t, resp.ItemID)
	assert.Equal(t, "b", *resp.ItemID)

	rr = httptest.NewRecorder()
	ctrl.GetSelection(rr, newRequest(http.MethodGet, "/events/ev-1/groups/slot-14/selection", "", &attendee, "eventID", "ev-1", "groupID", "slot-14"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, decodeData[SelectionResponse](t, rr).ItemID)
}
