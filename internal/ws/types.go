package ws

const (
	// client - server
	MsgCreateRoom = "create-room"
	MsgJoinRoom   = "join-room"
	MsgReady      = "player-ready"
	MsgPlayCard   = "play-card"
	MsgLeaveRoom  = "leave-room"
	MsgRoomState  = "room-state"

	// server - client
	MsgRoomCreated = "room-created"
	MsgRoomUpdated = "room-updated"
	MsgGameStarted = "game-started"
	MsgGameUpdated = "game-updated"
	MsgError       = "error"
)

// aliases accepted for the underscore spelling used by older clients
var eventAliases = map[string]string{
	"create_room":  MsgCreateRoom,
	"join_room":    MsgJoinRoom,
	"player_ready": MsgReady,
	"play_card":    MsgPlayCard,
	"leave_room":   MsgLeaveRoom,
	"room_state":   MsgRoomState,
}

func normalizeEvent(t string) string {
	if canonical, ok := eventAliases[t]; ok {
		return canonical
	}
	return t
}
