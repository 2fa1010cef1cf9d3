package controllers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"eventagenda/internal/delivery/http/helpers"
	"eventagenda/internal/domain"
	"eventagenda/internal/realtime"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = (streamPongWait * 9) / 10
	streamReadLimit  = 512
)

// AgendaSubscriber registers snapshot callbacks for an event.
type AgendaSubscriber interface {
	Subscribe(ctx context.Context, eventID string, onSnapshot func(*domain.AgendaSnapshot)) (*realtime.Subscription, error)
}

// StreamFrame is one websocket message: the full agenda plus the receiving
// user's own pick per simultaneous group.
type StreamFrame struct {
	Type         string                 `json:"type"`
	Agenda       *domain.AgendaSnapshot `json:"agenda"`
	MySelections map[string]string      `json:"my_selections"`
}

type StreamController struct {
	Logger   *slog.Logger
	Hub      AgendaSubscriber
	Upgrader websocket.Upgrader
}

// NewStreamController returns the live agenda websocket endpoint. Browsers may
// connect from allowedOrigins or from the API's own origin.
func NewStreamController(logger *slog.Logger, hub AgendaSubscriber, allowedOrigins []string) *StreamController {
	return &StreamController{
		Logger: logger,
		Hub:    hub,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowedOrigins []string) func(*http.Request) bool {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		o = strings.TrimSuffix(strings.TrimSpace(o), "/")
		if o != "" {
			allowed[o] = struct{}{}
		}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := allowed[origin]; ok {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && strings.EqualFold(u.Host, r.Host)
	}
}

// Stream godoc
// @Summary Live agenda stream
// @Description Upgrades to a websocket. The first frame carries the current agenda, and each later change to items, selections or the live item pushes a fresh one. Intermediate states may be skipped, never reordered. The token may be passed as access_token query parameter.
// @Tags agenda
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param access_token query string false "Bearer token for clients that cannot set headers"
// @Success 101 {object} controllers.StreamFrame "websocket frames"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /events/{eventID}/agenda/stream [get]
func (c *StreamController) Stream(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathParam(w, r, "eventID")
	if !ok {
		return
	}
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	stop := make(chan struct{})
	var stopOnce sync.Once
	halt := func() { stopOnce.Do(func() { close(stop) }) }

	// Subscribe delivers the first snapshot synchronously; one slot holds it until the upgrade completes.
	frames := make(chan []byte, 1)
	sub, err := c.Hub.Subscribe(r.Context(), eventID, func(snap *domain.AgendaSnapshot) {
		frame, err := json.Marshal(StreamFrame{
			Type:         "snapshot",
			Agenda:       snap,
			MySelections: snap.SelectionsOf(p.UserID),
		})
		if err != nil {
			c.Logger.Error("encode agenda frame", "event_id", eventID, "err", err)
			return
		}
		select {
		case frames <- frame:
		case <-stop:
		}
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	defer sub.Close()
	defer halt()

	conn, err := c.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.Logger.WarnContext(r.Context(), "websocket upgrade failed", "event_id", eventID, "err", err)
		return
	}
	defer conn.Close()

	c.Logger.DebugContext(r.Context(), "agenda stream opened", "event_id", eventID, "user_id", p.UserID, "subscription", sub.ID)
	go readUntilClosed(conn, halt)
	c.writeFrames(conn, frames, stop, sub.Done())
	c.Logger.DebugContext(r.Context(), "agenda stream closed", "event_id", eventID, "subscription", sub.ID)
}

// readUntilClosed drains client messages so control frames are processed, and
// calls halt once the peer goes away or stops answering pings.
func readUntilClosed(conn *websocket.Conn, halt func()) {
	defer halt()
	conn.SetReadLimit(streamReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *StreamController) writeFrames(conn *websocket.Conn, frames <-chan []byte, stop, closed <-chan struct{}) {
	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case frame := <-frames:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "stream closed")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(streamWriteWait))
			return
		case <-stop:
			return
		}
	}
}
