package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/cbity-backend/internal/session"
	ws "github.com/stemsi/cbity-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams session state changes over WebSocket.
type WSHandler struct {
	sessions *session.Manager
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(sessions *session.Manager, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		sessions: sessions,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// SessionStream godoc
// WS /ws/v1/session
// Pushes a snapshot on connect and after every login, logout, restore or mode
// switch. Clients may send {"action":"ping"} or {"action":"sync"}.
func (h *WSHandler) SessionStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	wsLog := h.log.With().Str("remote_addr", c.ClientIP()).Logger()
	wsLog.Info().Msg("Session stream connected")

	// Only this goroutine reads; the writer loop below owns all writes.
	requests := make(chan ws.Action, 4)
	go func() {
		defer cancel()
		defer close(requests)
		ws.KeepAlive(conn)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				}
				return
			}
			select {
			case requests <- msg.Action:
			case <-ctx.Done():
				return
			}
		}
	}()

	updates := h.sessions.Watch(ctx)
	ping := time.NewTicker(ws.PingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			wsLog.Debug().Msg("Session stream closed")
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := ws.WriteTyped(conn, ws.SnapshotResponse{Event: ws.EventSnapshot, Snapshot: snap}); err != nil {
				return
			}
		case action, ok := <-requests:
			if !ok {
				return
			}
			if err := h.handleAction(conn, action); err != nil {
				return
			}
		case <-ping.C:
			if err := ws.WritePing(conn); err != nil {
				return
			}
		}
	}
}

func (h *WSHandler) handleAction(conn *websocket.Conn, action ws.Action) error {
	switch action {
	case ws.ActionPing:
		return ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
	case ws.ActionSync:
		return ws.WriteTyped(conn, ws.SnapshotResponse{Event: ws.EventSnapshot, Snapshot: h.sessions.Current()})
	default:
		return ws.WriteError(conn, "unknown action: "+string(action))
	}
}
