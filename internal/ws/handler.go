package ws

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"durak_server/internal/game"
	"durak_server/internal/logger"
	"durak_server/internal/metrics"
)

const (
	maxNameLen  = 32
	defaultName = "Player"
)

// HandleMessage decodes one client frame and routes it. Admission failures
// are reported to the sender; every other rejection is silent.
func (h *Hub) HandleMessage(c *Client, raw []byte) {
	var msg inbound
	if err := json.Unmarshal(raw, &msg); err != nil {
		metrics.Event("invalid", metrics.OutcomeIgnored)
		logger.Debug("malformed frame", "conn", c.ID, "error", err)
		return
	}
	event := normalizeEvent(msg.Type)

	var err error
	switch event {
	case MsgCreateRoom:
		var name string
		if err = json.Unmarshal(msg.Payload, &name); err == nil {
			h.CreateRoom(c, cleanName(name))
		}

	case MsgJoinRoom:
		var p JoinRoomPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = h.JoinRoom(c, normalizeCode(p.RoomID), cleanName(p.PlayerName))
		}
		if errors.Is(err, game.ErrRoomNotJoinable) {
			metrics.Event(event, metrics.OutcomeRejected)
			logger.Debug("join rejected", "conn", c.ID, "room", p.RoomID, "error", err)
			h.sendError(c, err.Error())
			return
		}

	case MsgReady:
		var roomID string
		if err = json.Unmarshal(msg.Payload, &roomID); err == nil {
			err = h.SetReady(c, normalizeCode(roomID))
		}

	case MsgPlayCard:
		var p PlayCardPayload
		if err = json.Unmarshal(msg.Payload, &p); err == nil {
			err = h.PlayCard(c, normalizeCode(p.RoomID), p.Card.ID)
		}

	case MsgLeaveRoom:
		var roomID string
		if err = json.Unmarshal(msg.Payload, &roomID); err == nil {
			if room := c.Room(); room != nil && room.ID == normalizeCode(roomID) {
				h.Leave(c)
			} else {
				err = game.ErrPlayerNotFound
			}
		}

	case MsgRoomState:
		var roomID string
		if err = json.Unmarshal(msg.Payload, &roomID); err == nil {
			err = h.SendState(c, normalizeCode(roomID))
		}

	default:
		metrics.Event("unknown", metrics.OutcomeIgnored)
		logger.Debug("unknown event", "conn", c.ID, "type", msg.Type)
		return
	}

	if err != nil {
		metrics.Event(event, metrics.OutcomeIgnored)
		logger.Debug("event ignored", "conn", c.ID, "type", event, "error", err)
		return
	}
	metrics.Event(event, metrics.OutcomeAccepted)
}

func (h *Hub) sendError(c *Client, reason string) {
	data, err := json.Marshal(Message{Type: MsgError, Payload: reason})
	if err != nil {
		return
	}
	c.enqueue(data)
}

func cleanName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultName
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		name = string([]rune(name)[:maxNameLen])
	}
	return name
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
