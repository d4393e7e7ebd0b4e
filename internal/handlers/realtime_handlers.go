package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"tablemate/internal/middleware"
	"tablemate/internal/realtime"
)

// RealtimeHandlers upgrades authenticated clients onto the push hub.
type RealtimeHandlers struct {
	hub       *realtime.Hub
	jwtSecret string
	upgrader  websocket.Upgrader
}

func NewRealtimeHandlers(hub *realtime.Hub, jwtSecret string) *RealtimeHandlers {
	return &RealtimeHandlers{
		hub:       hub,
		jwtSecret: jwtSecret,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross-origin clients are expected; the token is the gate.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Connect handles GET /ws?token=... . Browsers cannot set headers on a
// websocket handshake, so the token rides in the query string.
func (h *RealtimeHandlers) Connect(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
	}
	principal, err := middleware.ParseToken(token, h.jwtSecret)
	if err != nil {
		return err
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	h.hub.Register(principal.UserID, conn)
	defer h.hub.Unregister(principal.UserID, conn)

	// The connection is push-only. Reading drains control frames and
	// returns when the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	return nil
}
