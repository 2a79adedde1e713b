package handlers

import (
	"context"

	"durak_server/internal/domain"
	"durak_server/internal/ws"
)

// RoomEventLister reads the room lifecycle log.
type RoomEventLister interface {
	ListByRoom(ctx context.Context, roomID string, limit int) ([]*domain.RoomEvent, error)
}

type Handler struct {
	Hub           *ws.Hub
	Events        RoomEventLister
	AllowedOrigin string
}

// NewHandler creates a handler. events may be nil when no database is configured.
func NewHandler(hub *ws.Hub, events RoomEventLister, allowedOrigin string) *Handler {
	return &Handler{
		Hub:           hub,
		Events:        events,
		AllowedOrigin: allowedOrigin,
	}
}
