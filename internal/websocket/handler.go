package websocket

import (
	"net/http"

	"rideshare-backend/internal/middleware"
	"rideshare-backend/pkg/utils"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin policy is enforced by the CORS layer on the REST routes
		return true
	},
}

// HandleWebSocket upgrades the connection and subscribes it to the acting
// user's booking events
func HandleWebSocket(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r)
		if !ok {
			utils.Error(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.logger.Warn("❌ websocket upgrade failed", "error", err)
			return
		}

		client := NewClient(userID, conn, hub)

		select {
		case hub.register <- client:
		case <-hub.done:
			conn.Close()
			return
		case <-r.Context().Done():
			conn.Close()
			return
		}

		go client.WritePump()
		go client.ReadPump()
	}
}
