package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"oantuti/internal/game"
	"oantuti/internal/network"
	"oantuti/internal/session/message"
)

// simple-bot plays forever: find a match, throw a random move, flip a
// coin on rematch. Run a few of them against a server to soak-test the
// matchmaking and rematch paths.

const rematchChance = 0.5

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

	send := func(msgType string, payload any) {
		msg := network.Message{Type: msgType}
		if payload != nil {
			raw, _ := json.Marshal(payload)
			msg.Payload = raw
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Fatalf("could not send %s: %v", msgType, err)
		}
	}

	send("set_player_info", message.PlayerInfoPayload{
		Name:   fmt.Sprintf("Bot-%04d", rand.Intn(10000)),
		Avatar: "🤖",
	})
	send("find_match", nil)

	var roomID string
	for {
		var msg network.Message
		if err := conn.ReadJSON(&msg); err != nil {
			log.Fatalf("connection lost: %v", err)
		}

		switch msg.Type {
		case "match_found":
			var p struct {
				RoomID string `json:"room_id"`
			}
			json.Unmarshal(msg.Payload, &p)
			roomID = p.RoomID
			think()
			send("send_move", message.MovePayload{Move: string(randomMove())})

		case "rematch_accepted":
			think()
			send("send_move", message.MovePayload{Move: string(randomMove())})

		case "game_result":
			var p message.GameResultPayload
			json.Unmarshal(msg.Payload, &p)
			log.Printf("played %s vs %s: %s", p.YourMove, p.OpponentMove, p.Result)

			think()
			if rand.Float64() < rematchChance {
				send("request_rematch", message.RoomPayload{RoomID: roomID})
			} else {
				send("find_new_match", message.RoomPayload{RoomID: roomID})
				send("find_match", nil)
			}

		case "rematch_declined", "opponent_disconnected":
			send("find_match", nil)

		case "error":
			var p struct {
				Message string `json:"message"`
			}
			json.Unmarshal(msg.Payload, &p)
			log.Printf("server error: %s", p.Message)
		}
	}
}

func randomMove() game.Move {
	return game.Moves[rand.Intn(len(game.Moves))]
}

// think waits a beat so bot traffic looks like a human clicking.
func think() {
	time.Sleep(time.Duration(200+rand.Intn(800)) * time.Millisecond)
}
