package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/taskforge/task-tracker/services"
)

// WSHandler upgrades browser connections for change-event push.
type WSHandler struct {
	hub *services.Hub
}

func NewWSHandler(hub *services.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

func (h *WSHandler) Connect(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // same policy as the CORS config
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("failed to upgrade to websocket")
		return
	}

	client := &services.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
