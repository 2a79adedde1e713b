package domain

import "time"

// RoomEventKind - lifecycle step of a room
type RoomEventKind string

const (
	RoomEventCreated RoomEventKind = "created"
	RoomEventStarted RoomEventKind = "started"
	RoomEventClosed  RoomEventKind = "closed"
)

// RoomEvent - one row of the room lifecycle log
type RoomEvent struct {
	ID        int64                  `db:"id" json:"id"`
	RoomID    string                 `db:"room_id" json:"room_id"`
	Kind      RoomEventKind          `db:"kind" json:"kind"`
	Players   int                    `db:"players" json:"players"`
	Details   map[string]interface{} `db:"details" json:"details,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}
