package network

// EventHandler is the seam between the transport and the game logic. The
// session layer implements it; the Hub calls it from its own goroutine,
// so implementations receive connect, message and disconnect events one
// at a time, in the order the Hub saw them.
type EventHandler interface {
	// OnConnect is called once a client connection is established.
	OnConnect(c *Client)

	// OnDisconnect is called when a client goes away, for any reason.
	OnDisconnect(c *Client)

	// OnMessage is called for every message received from a client.
	OnMessage(c *Client, msg Message)
}
