package handlers

import (
	"net/http"

	"durak_server/internal/logger"
	"durak_server/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WS upgrades the request and serves the connection. The connection's
// identity is a fresh id; there is no authentication.
func (h *Handler) WS() gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if h.AllowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == h.AllowedOrigin
		},
	}

	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade error", "error", err)
			return
		}

		client := ws.NewClient(conn, h.Hub)
		logger.Debug("connection opened", "conn", client.ID, "remote", c.ClientIP())
		go client.Run()
	}
}
