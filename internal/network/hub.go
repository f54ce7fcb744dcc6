package network

// clientMessage pairs an inbound message with the client that sent it,
// so the Hub can hand both to the EventHandler.
type clientMessage struct {
	client *Client
	msg    Message
}

// Hub owns the set of live clients and routes every transport event to
// the EventHandler. The clients map is touched only by the Hub goroutine;
// that single goroutine is what serializes all game-logic callbacks.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client

	// The readLoop of every client funnels messages here.
	incoming chan clientMessage

	handler EventHandler
}

// NewHub creates a Hub that dispatches to handler.
func NewHub(handler EventHandler) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan clientMessage),
		handler:    handler,
	}
}

// Run processes register/unregister/message events until the process
// exits. Call it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.handler.OnConnect(client)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				// Closing send is the stop signal for the client's
				// writeLoop.
				close(client.send)
				h.handler.OnDisconnect(client)
			}

		case clientMsg := <-h.incoming:
			h.handler.OnMessage(clientMsg.client, clientMsg.msg)
		}
	}
}
