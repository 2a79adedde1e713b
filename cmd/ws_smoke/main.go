package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type roomView struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Players []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Hand []struct {
			ID   string `json:"id"`
			Suit string `json:"suit"`
			Rank string `json:"rank"`
		} `json:"hand"`
	} `json:"players"`
	Field []struct {
		Card struct {
			ID string `json:"id"`
		} `json:"card"`
		Player string `json:"player"`
	} `json:"field"`
	TurnIndex int `json:"turnIndex"`
}

func main() {
	addr := flag.String("addr", "127.0.0.1:3001", "server host:port")
	flag.Parse()

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	url := fmt.Sprintf("ws://%s/ws", *addr)

	connA, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		log.Fatalf("dial A: %v", err)
	}
	defer connA.Close()

	connB, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		log.Fatalf("dial B: %v", err)
	}
	defer connB.Close()

	send(connA, "create-room", "smokeA")
	var roomID string
	if err := json.Unmarshal(waitFor(connA, "room-created"), &roomID); err != nil {
		log.Fatalf("room-created payload: %v", err)
	}
	log.Printf("room %s created", roomID)

	send(connB, "join-room", map[string]string{"roomId": roomID, "playerName": "smokeB"})
	waitFor(connA, "room-updated")
	waitFor(connB, "room-updated")

	send(connA, "player-ready", roomID)
	send(connB, "player-ready", roomID)

	var view roomView
	if err := json.Unmarshal(waitFor(connA, "game-started"), &view); err != nil {
		log.Fatalf("game-started payload: %v", err)
	}
	waitFor(connB, "game-started")
	log.Printf("game started, %d players, turn %d", len(view.Players), view.TurnIndex)

	first := view.Players[0]
	if len(first.Hand) == 0 {
		log.Fatalf("first player has no cards")
	}
	send(connA, "play-card", map[string]any{"roomId": roomID, "card": first.Hand[0]})

	if err := json.Unmarshal(waitFor(connB, "game-updated"), &view); err != nil {
		log.Fatalf("game-updated payload: %v", err)
	}
	log.Printf("field: %d card(s), next turn %d", len(view.Field), view.TurnIndex)

	log.Println("smoke test finished")
}

func send(conn *websocket.Conn, event string, payload any) {
	b, err := json.Marshal(map[string]any{"type": event, "payload": payload})
	if err != nil {
		log.Fatalf("marshal %s: %v", event, err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		log.Fatalf("write %s: %v", event, err)
	}
}

// waitFor reads frames until one of the given type arrives.
func waitFor(conn *websocket.Conn, event string) json.RawMessage {
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		conn.SetReadDeadline(deadline)
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Fatalf("waiting for %s: %v", event, err)
		}
		var env envelope
		if err := json.Unmarshal(msg, &env); err != nil {
			continue
		}
		if env.Type == "error" {
			log.Fatalf("server error while waiting for %s: %s", event, env.Payload)
		}
		if env.Type == event {
			return env.Payload
		}
	}
	log.Fatalf("timed out waiting for %s", event)
	return nil
}
