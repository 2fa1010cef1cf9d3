package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventagenda/internal/delivery/http/controllers"
	"eventagenda/internal/delivery/http/helpers"
)

// Controllers bundles the handlers mounted by NewRouter.
type Controllers struct {
	Events    *controllers.EventController
	Agenda    *controllers.AgendaController
	Live      *controllers.LiveItemController
	Selection *controllers.SelectionController
	Import    *controllers.ImportController
	Stream    *controllers.StreamController
}

// NewRouter initializes the HTTP router with all application routes.
// requireAuth guards every route except the iCalendar feed, health and Swagger.
func NewRouter(c Controllers, requireAuth func(http.HandlerFunc) http.HandlerFunc) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("POST /events", requireAuth(c.Events.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", requireAuth(c.Events.GetEvent))

	// Agenda
	mux.HandleFunc("POST /events/{eventID}/agenda", requireAuth(c.Agenda.CreateItem))
	mux.HandleFunc("GET /events/{eventID}/agenda", requireAuth(c.Agenda.GetAgenda))
	mux.HandleFunc("GET /events/{eventID}/agenda.ics", c.Agenda.ExportICS)
	mux.HandleFunc("GET /events/{eventID}/agenda/stream", requireAuth(c.Stream.Stream))
	mux.HandleFunc("GET /agenda/{itemID}", requireAuth(c.Agenda.GetItem))
	mux.HandleFunc("PATCH /agenda/{itemID}", requireAuth(c.Agenda.UpdateItem))
	mux.HandleFunc("DELETE /agenda/{itemID}", requireAuth(c.Agenda.DeleteItem))

	// Live item
	mux.HandleFunc("PUT /events/{eventID}/current", requireAuth(c.Live.SetCurrent))
	mux.HandleFunc("GET /events/{eventID}/current", requireAuth(c.Live.GetCurrent))

	// Selection
	mux.HandleFunc("POST /agenda/{itemID}/selection", requireAuth(c.Selection.Select))
	mux.HandleFunc("DELETE /agenda/{itemID}/selection", requireAuth(c.Selection.Deselect))
	mux.HandleFunc("GET /events/{eventID}/groups/{groupID}/selection", requireAuth(c.Selection.GetSelection))

	// Import
	mux.HandleFunc("POST /events/{eventID}/import/sessionize/{sessionizeID}", requireAuth(c.Import.ImportSessionize))
	mux.HandleFunc("POST /events/{eventID}/import/items", requireAuth(c.Import.ImportItems))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
