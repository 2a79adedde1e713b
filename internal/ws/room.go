package ws

import (
	"encoding/json"
	"sync"
	"time"

	"durak_server/internal/game"
	"durak_server/internal/logger"
	"durak_server/internal/metrics"
)

// Room pairs a game room with the group of connections watching it.
// mu serializes every handler touching the room, so each mutation and the
// broadcast that follows it run to completion before the next one starts.
type Room struct {
	ID string

	mu         sync.Mutex
	state      *game.Room
	members    map[string]*Client
	createdAt  time.Time
	emptySince time.Time
	closed     bool
	hub        *Hub
}

func newRoom(state *game.Room, hub *Hub) *Room {
	now := hub.now()
	return &Room{
		ID:         state.ID,
		state:      state,
		members:    make(map[string]*Client),
		createdAt:  now,
		emptySince: now,
		hub:        hub,
	}
}

func (r *Room) attach(c *Client) {
	r.members[c.ID] = c
	c.setRoom(r)
}

func (r *Room) detach(c *Client) {
	delete(r.members, c.ID)
	c.clearRoom(r)
	if len(r.members) == 0 {
		r.emptySince = r.hub.now()
	}
}

// closure is what a room looked like when it was closed.
type closure struct {
	players int
	status  game.Status
	age     time.Duration
}

// markClosed flags the room and detaches every member. Caller holds mu.
func (r *Room) markClosed() closure {
	r.closed = true
	cl := closure{
		players: len(r.state.Players),
		status:  r.state.Status,
		age:     r.hub.now().Sub(r.createdAt).Round(time.Second),
	}
	for _, c := range r.members {
		r.detach(c)
	}
	return cl
}

func (r *Room) view(viewerID string) game.View {
	return r.state.Snapshot(viewerID, r.hub.opts.RedactHands)
}

// broadcast pushes the full room snapshot to every member. Without
// redaction the payload is encoded once and shared.
func (r *Room) broadcast(event string) {
	metrics.Broadcasts.WithLabelValues(event).Inc()

	if r.hub.opts.RedactHands {
		for _, c := range r.members {
			r.send(c, Message{Type: event, Payload: r.view(c.ID)})
		}
		return
	}

	data, err := json.Marshal(Message{Type: event, Payload: r.view("")})
	if err != nil {
		logger.Error("room broadcast marshal failed", "room", r.ID, "error", err)
		return
	}
	for _, c := range r.members {
		c.enqueue(data)
	}
}

func (r *Room) send(c *Client, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Error("room send marshal failed", "room", r.ID, "type", msg.Type, "error", err)
		return
	}
	c.enqueue(data)
}
