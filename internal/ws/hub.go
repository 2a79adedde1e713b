package ws

import (
	"context"
	"strings"
	"sync"
	"time"

	"durak_server/internal/domain"
	"durak_server/internal/game"
	"durak_server/internal/logger"
	"durak_server/internal/metrics"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const roomCodeLen = 6

// RoomEventStore records room lifecycle events. May be nil.
type RoomEventStore interface {
	Create(ctx context.Context, ev *domain.RoomEvent) error
}

type Options struct {
	Rules           game.Rules
	RedactHands     bool
	IdleTTL         time.Duration
	CleanupInterval time.Duration
	EventRate       rate.Limit
	EventBurst      int
}

// Hub is the room registry. It owns every live room and the mapping from
// room code to room.
type Hub struct {
	Rooms map[string]*Room
	mu    sync.RWMutex

	opts   Options
	events RoomEventStore

	connections int
	newCode     func() string
	now         func() time.Time
}

func NewHub(opts Options, events RoomEventStore) *Hub {
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = time.Hour
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = 10 * time.Minute
	}
	if opts.EventRate <= 0 {
		opts.EventRate = 20
	}
	if opts.EventBurst <= 0 {
		opts.EventBurst = 40
	}
	return &Hub{
		Rooms:   make(map[string]*Room),
		opts:    opts,
		events:  events,
		newCode: randomRoomCode,
		now:     time.Now,
	}
}

// randomRoomCode takes the leading hex digits of a fresh v4 UUID.
func randomRoomCode() string {
	return strings.ToUpper(uuid.NewString()[:roomCodeLen])
}

// CreateRoom registers a new waiting room with c as its only player and
// returns the room code.
func (h *Hub) CreateRoom(c *Client, playerName string) string {
	h.Leave(c)

	h.mu.Lock()
	id := h.newCode()
	for h.Rooms[id] != nil {
		id = h.newCode()
	}
	room := newRoom(game.NewRoom(id, c.ID, playerName, h.opts.Rules), h)
	h.Rooms[id] = room
	h.mu.Unlock()

	room.mu.Lock()
	room.attach(c)
	room.send(c, Message{Type: MsgRoomCreated, Payload: id})
	room.broadcast(MsgRoomUpdated)
	players := len(room.state.Players)
	room.mu.Unlock()

	logger.Info("room created", "room", id, "conn", c.ID, "name", playerName)
	h.record(id, domain.RoomEventCreated, players, map[string]interface{}{"creator": playerName})
	h.refreshGauges()
	return id
}

// JoinRoom seats c in a waiting room. Every failure wraps game.ErrRoomNotJoinable.
func (h *Hub) JoinRoom(c *Client, roomID, playerName string) error {
	room, ok := h.Lookup(roomID)
	if !ok {
		return game.ErrRoomNotFound
	}
	prev := c.Room()

	room.mu.Lock()
	if room.closed {
		room.mu.Unlock()
		return game.ErrRoomNotFound
	}
	if err := room.state.AddPlayer(c.ID, playerName); err != nil {
		room.mu.Unlock()
		return err
	}
	room.attach(c)
	room.broadcast(MsgRoomUpdated)
	room.mu.Unlock()

	if prev != nil && prev != room {
		h.leaveRoom(c, prev)
	}
	logger.Info("player joined", "room", roomID, "conn", c.ID, "name", playerName)
	return nil
}

// Lookup returns a live room by code.
func (h *Hub) Lookup(roomID string) (*Room, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.Rooms[roomID]
	return room, ok
}

// SetReady toggles the ready flag of c's player. Unknown rooms and
// players are ignored.
func (h *Hub) SetReady(c *Client, roomID string) error {
	room, ok := h.Lookup(roomID)
	if !ok {
		return game.ErrRoomNotFound
	}

	room.mu.Lock()
	if room.closed {
		room.mu.Unlock()
		return game.ErrRoomNotFound
	}
	started, err := room.state.ToggleReady(c.ID)
	if err != nil {
		room.mu.Unlock()
		return err
	}
	players := len(room.state.Players)
	if !started {
		p, _ := room.state.Player(c.ID)
		room.broadcast(MsgRoomUpdated)
		room.mu.Unlock()
		logger.Debug("ready toggled", "room", roomID, "conn", c.ID, "ready", p.Ready)
		return nil
	}
	details := map[string]interface{}{"trump": room.state.Trump.ID, "deck": len(room.state.Deck)}
	room.broadcast(MsgGameStarted)
	room.mu.Unlock()

	logger.Info("game started", "room", roomID, "players", players)
	h.record(roomID, domain.RoomEventStarted, players, details)
	h.refreshGauges()
	return nil
}

// PlayCard applies a card move for c's player.
func (h *Hub) PlayCard(c *Client, roomID, cardID string) error {
	room, ok := h.Lookup(roomID)
	if !ok {
		return game.ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	if room.closed {
		return game.ErrRoomNotFound
	}
	if err := room.state.PlayCard(c.ID, cardID); err != nil {
		return err
	}
	room.broadcast(MsgGameUpdated)
	logger.Debug("card played", "room", roomID, "conn", c.ID, "card", cardID, "turn", room.state.TurnIndex)
	return nil
}

// SendState pushes the current snapshot to c alone. A seated player whose
// connection left the group is attached again.
func (h *Hub) SendState(c *Client, roomID string) error {
	room, ok := h.Lookup(roomID)
	if !ok {
		return game.ErrRoomNotFound
	}

	room.mu.Lock()
	defer room.mu.Unlock()
	if room.closed {
		return game.ErrRoomNotFound
	}
	if p, _ := room.state.Player(c.ID); p == nil {
		return game.ErrPlayerNotFound
	}
	if cur := c.Room(); cur != room {
		if cur != nil {
			return game.ErrAlreadyInRoom
		}
		room.attach(c)
	}
	room.send(c, Message{Type: MsgRoomUpdated, Payload: room.view(c.ID)})
	return nil
}

// Leave detaches c from its room. In the lobby the player is removed as
// well; once playing the seat and hand stay.
func (h *Hub) Leave(c *Client) {
	if room := c.Room(); room != nil {
		h.leaveRoom(c, room)
	}
}

func (h *Hub) leaveRoom(c *Client, room *Room) {
	if cl, ok := h.detachMember(c, room); ok {
		h.unregister(room, cl)
	}
}

// detachMember removes c from room. A lobby left without players is
// closed in the same critical section, so no join can slip in before it
// is unregistered; ok reports that case.
func (h *Hub) detachMember(c *Client, room *Room) (closure, bool) {
	room.mu.Lock()
	defer room.mu.Unlock()
	if room.closed {
		return closure{}, false
	}
	room.detach(c)
	logger.Info("player left", "room", room.ID, "conn", c.ID)

	if room.state.Status != game.StatusWaiting {
		return closure{}, false
	}
	if err := room.state.RemovePlayer(c.ID); err != nil {
		return closure{}, false
	}
	if len(room.state.Players) > 0 {
		room.broadcast(MsgRoomUpdated)
		return closure{}, false
	}
	return room.markClosed(), true
}

// OnConnect and OnDisconnect bracket the life of a connection.
func (h *Hub) OnConnect(c *Client) {
	h.mu.Lock()
	h.connections++
	h.mu.Unlock()
	metrics.Connections.Inc()
}

func (h *Hub) OnDisconnect(c *Client) {
	h.Leave(c)
	h.mu.Lock()
	h.connections--
	h.mu.Unlock()
	metrics.Connections.Dec()
	logger.Debug("connection closed", "conn", c.ID)
}

// CloseRoom unregisters a room and detaches every member. It reports
// whether the room was live.
func (h *Hub) CloseRoom(roomID string) bool {
	return h.closeRoom(roomID, nil)
}

// closeRoom closes a live room. When canClose is set it is checked under
// the room lock and may keep the room open.
func (h *Hub) closeRoom(roomID string, canClose func(*Room) bool) bool {
	room, ok := h.Lookup(roomID)
	if !ok {
		return false
	}

	room.mu.Lock()
	if room.closed || (canClose != nil && !canClose(room)) {
		room.mu.Unlock()
		return false
	}
	cl := room.markClosed()
	room.mu.Unlock()

	h.unregister(room, cl)
	return true
}

// unregister drops a room already marked closed from the registry.
func (h *Hub) unregister(room *Room, cl closure) {
	h.mu.Lock()
	if h.Rooms[room.ID] == room {
		delete(h.Rooms, room.ID)
	}
	h.mu.Unlock()

	logger.Info("room closed", "room", room.ID, "age", cl.age)
	h.record(room.ID, domain.RoomEventClosed, cl.players, map[string]interface{}{
		"status":      string(cl.status),
		"age_seconds": int64(cl.age / time.Second),
	})
	h.refreshGauges()
}

func (h *Hub) StartCleanup(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(h.opts.CleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.cleanupStaleRooms()
			}
		}
	}()
}

// cleanupStaleRooms closes rooms nobody has been connected to for IdleTTL.
// A room re-attached between the scan and the close stays open.
func (h *Hub) cleanupStaleRooms() int {
	idle := h.idleAt(h.now())

	h.mu.RLock()
	var stale []string
	for id, room := range h.Rooms {
		room.mu.Lock()
		if idle(room) {
			stale = append(stale, id)
		}
		room.mu.Unlock()
	}
	h.mu.RUnlock()

	closed := 0
	for _, id := range stale {
		if h.closeRoom(id, idle) {
			logger.Info("cleaned up stale room", "room", id)
			closed++
		}
	}
	return closed
}

// idleAt reports whether a room has had no member for longer than IdleTTL
// at now. Caller holds the room lock.
func (h *Hub) idleAt(now time.Time) func(*Room) bool {
	return func(room *Room) bool {
		return len(room.members) == 0 && now.Sub(room.emptySince) > h.opts.IdleTTL
	}
}

func (h *Hub) Stats() RoomStats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := RoomStats{Rooms: len(h.Rooms), Connections: h.connections}
	for _, room := range h.Rooms {
		room.mu.Lock()
		status := room.state.Status
		room.mu.Unlock()
		switch status {
		case game.StatusWaiting:
			stats.Waiting++
		case game.StatusPlaying:
			stats.Playing++
		}
	}
	return stats
}

// PublicView is the room with every hand hidden.
func (h *Hub) PublicView(roomID string) (game.View, bool) {
	room, ok := h.Lookup(roomID)
	if !ok {
		return game.View{}, false
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	return room.state.Snapshot("", true), true
}

func (h *Hub) refreshGauges() {
	stats := h.Stats()
	metrics.Rooms.WithLabelValues(string(game.StatusWaiting)).Set(float64(stats.Waiting))
	metrics.Rooms.WithLabelValues(string(game.StatusPlaying)).Set(float64(stats.Playing))
}

func (h *Hub) record(roomID string, kind domain.RoomEventKind, players int, details map[string]interface{}) {
	if h.events == nil {
		return
	}
	ev := &domain.RoomEvent{RoomID: roomID, Kind: kind, Players: players, Details: details}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.events.Create(ctx, ev); err != nil {
			logger.Warn("room event store failed", "room", roomID, "kind", kind, "error", err)
		}
	}()
}
