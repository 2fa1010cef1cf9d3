package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventagenda/internal/adapters/auth"
	"eventagenda/internal/delivery/http/controllers"
	"eventagenda/internal/delivery/http/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := Controllers{
		Events:    &controllers.EventController{Logger: logger},
		Agenda:    &controllers.AgendaController{Logger: logger},
		Live:      &controllers.LiveItemController{Logger: logger},
		Selection: &controllers.SelectionController{Logger: logger},
		Import:    &controllers.ImportController{Logger: logger},
		Stream:    &controllers.StreamController{Logger: logger},
	}
	return NewRouter(c, middleware.RequireAuth(auth.NewJWTVerifier("router-secret"), logger))
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter()
	routes := []struct{ method, path string }{
		{http.MethodPost, "/events"},
		{http.MethodGet, "/events/ev-1"},
		{http.MethodPost, "/events/ev-1/agenda"},
		{http.MethodGet, "/events/ev-1/agenda"},
		{http.MethodGet, "/events/ev-1/agenda/stream"},
		{http.MethodGet, "/agenda/item-1"},
		{http.MethodPatch, "/agenda/item-1"},
		{http.MethodDelete, "/agenda/item-1"},
		{http.MethodPut, "/events/ev-1/current"},
		{http.MethodGet, "/events/ev-1/current"},
		{http.MethodPost, "/agenda/item-1/selection"},
		{http.MethodDelete, "/agenda/item-1/selection"},
		{http.MethodGet, "/events/ev-1/groups/slot-1/selection"},
		{http.MethodPost, "/events/ev-1/import/sessionize/abc"},
		{http.MethodPost, "/events/ev-1/import/items"},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(rt.method, rt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestRouter_ExpiredTokenRejected(t *testing.T) {
	router := newTestRouter()
	token, err := auth.NewJWTIssuer("router-secret").Issue("org-1", []string{"organizer"}, -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/events", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRouter_Health(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"},"error":null}`, rr.Body.String())
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/events", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
