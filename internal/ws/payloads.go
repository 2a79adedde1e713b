package ws

import (
	"encoding/json"

	"durak_server/internal/game"
)

// Message is the envelope of every frame sent to a client.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// inbound is the envelope of every frame received from a client.
type inbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// client → server
type JoinRoomPayload struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type PlayCardPayload struct {
	RoomID string    `json:"roomId"`
	Card   game.Card `json:"card"`
}

// RoomStats is the registry summary.
type RoomStats struct {
	Rooms       int `json:"rooms"`
	Waiting     int `json:"waiting"`
	Playing     int `json:"playing"`
	Connections int `json:"connections"`
}
