package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/gorilla/websocket"

	"oantuti/internal/game"
	"oantuti/internal/network"
	"oantuti/internal/session/message"
)

// Terminal client for the match server. It walks the whole protocol:
// profile, matchmaking, one hidden move per round, then the rematch
// handshake.

type client struct {
	conn *websocket.Conn

	mu     sync.Mutex
	roomID string
}

func (c *client) setRoom(roomID string) {
	c.mu.Lock()
	c.roomID = roomID
	c.mu.Unlock()
}

func (c *client) room() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomID
}

func (c *client) send(msgType string, payload any) {
	msg := network.Message{Type: msgType}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			log.Fatalf("could not encode payload: %v", err)
		}
		msg.Payload = raw
	}
	if err := c.conn.WriteJSON(msg); err != nil {
		log.Fatalf("could not send %s: %v", msgType, err)
	}
}

func main() {
	addr := os.Getenv("SERVER_ADDR")
	if addr == "" {
		addr = "localhost:8080"
	}

	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("could not connect to %s: %v", u.String(), err)
	}
	defer conn.Close()

	c := &client{conn: conn}
	stdin := bufio.NewReader(os.Stdin)

	fmt.Print("Your name: ")
	name, _ := stdin.ReadString('\n')
	fmt.Print("Your avatar (emoji): ")
	avatar, _ := stdin.ReadString('\n')

	c.send("set_player_info", message.PlayerInfoPayload{
		Name:   strings.TrimSpace(name),
		Avatar: strings.TrimSpace(avatar),
	})
	c.send("find_match", nil)
	fmt.Println("Looking for an opponent...")

	// The read loop drives the whole game; stdin is only consulted when
	// the server asks for something.
	for {
		var msg network.Message
		if err := conn.ReadJSON(&msg); err != nil {
			log.Fatalf("connection lost: %v", err)
		}

		switch msg.Type {
		case "connected":
			// Acknowledgment only; nothing to do.

		case "waiting":
			fmt.Println("No opponent yet, you are in the queue.")

		case "match_found":
			var p struct {
				RoomID         string `json:"room_id"`
				OpponentName   string `json:"opponent_name"`
				OpponentAvatar string `json:"opponent_avatar"`
			}
			json.Unmarshal(msg.Payload, &p)
			c.setRoom(p.RoomID)
			fmt.Printf("Matched against %s %s!\n", p.OpponentAvatar, p.OpponentName)
			c.send("send_move", message.MovePayload{Move: promptMove(stdin)})

		case "game_result":
			var p message.GameResultPayload
			json.Unmarshal(msg.Payload, &p)
			fmt.Printf("You played %s, %s played %s.\n",
				game.DisplayName(p.YourMove), p.OpponentName, game.DisplayName(p.OpponentMove))
			fmt.Println(game.FormatResultMessage(p.Result))

			if promptYesNo(stdin, "Rematch? [y/n] ") {
				c.send("request_rematch", message.RoomPayload{RoomID: c.room()})
				fmt.Println("Waiting for your opponent to accept...")
			} else {
				c.send("find_new_match", message.RoomPayload{RoomID: c.room()})
				c.send("find_match", nil)
				fmt.Println("Looking for a new opponent...")
			}

		case "rematch_accepted":
			fmt.Println("Rematch on!")
			c.send("send_move", message.MovePayload{Move: promptMove(stdin)})

		case "rematch_declined":
			var p struct {
				Message string `json:"message"`
			}
			json.Unmarshal(msg.Payload, &p)
			fmt.Println("No rematch:", p.Message)
			c.send("find_match", nil)
			fmt.Println("Looking for a new opponent...")

		case "opponent_disconnected":
			fmt.Println("Your opponent disconnected.")
			c.send("find_match", nil)
			fmt.Println("Looking for a new opponent...")

		case "error":
			var p struct {
				Message string `json:"message"`
			}
			json.Unmarshal(msg.Payload, &p)
			fmt.Println(game.ErrorPrefix+":", p.Message)

		default:
			fmt.Println("Unhandled message:", msg.Type)
		}
	}
}

// promptMove reads moves from stdin until one parses, returning the
// prefixed wire form ("MOVE:ROCK").
func promptMove(stdin *bufio.Reader) string {
	for {
		fmt.Print("Your move (rock/paper/scissors): ")
		line, _ := stdin.ReadString('\n')
		mv, ok := game.NormalizeMove(strings.ToUpper(strings.TrimSpace(line)))
		if ok {
			return game.EncodeMoveMessage(mv)
		}
		fmt.Println("That is not a move.")
	}
}

func promptYesNo(stdin *bufio.Reader, prompt string) bool {
	for {
		fmt.Print(prompt)
		line, _ := stdin.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
	}
}
