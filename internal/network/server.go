package network

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// Server upgrades HTTP requests to websocket connections and hands them
// to the Hub. The game logic is injected through the EventHandler.
type Server struct {
	hub    *Hub
	logger *slog.Logger
}

var upgrader = websocket.Upgrader{
	// Anonymous play from a browser page on any origin.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// NewServer builds a Server around handler and starts the Hub goroutine.
func NewServer(handler EventHandler, logger *slog.Logger) *Server {
	s := &Server{
		hub:    NewHub(handler),
		logger: logger,
	}
	go s.hub.Run()
	return s
}

// HandleWS is the entry point for client connections; mount it on the
// /ws route of an http mux.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	client := &Client{
		conn:   conn,
		hub:    s.hub,
		send:   make(chan Message, 256),
		logger: s.logger,
	}

	client.hub.register <- client

	go client.writeLoop()
	go client.readLoop()
}
