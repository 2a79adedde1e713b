package repository

import (
	"context"
	"encoding/json"

	"durak_server/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomEventRepository struct {
	db *pgxpool.Pool
}

func NewRoomEventRepository(db *pgxpool.Pool) *RoomEventRepository {
	return &RoomEventRepository{db: db}
}

// Create appends a lifecycle event and fills ID and CreatedAt.
func (r *RoomEventRepository) Create(ctx context.Context, ev *domain.RoomEvent) error {
	detailsJSON, err := json.Marshal(ev.Details)
	if err != nil || ev.Details == nil {
		detailsJSON = []byte("{}")
	}

	return r.db.QueryRow(ctx,
		`INSERT INTO room_events (room_id, kind, players, details)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		ev.RoomID,
		ev.Kind,
		ev.Players,
		detailsJSON,
	).Scan(&ev.ID, &ev.CreatedAt)
}

// ListByRoom returns the room's events, oldest first.
func (r *RoomEventRepository) ListByRoom(ctx context.Context, roomID string, limit int) ([]*domain.RoomEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, room_id, kind, players, details, created_at
		 FROM room_events
		 WHERE room_id = $1
		 ORDER BY created_at, id
		 LIMIT $2`,
		roomID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanRoomEvents(rows)
}

func scanRoomEvents(rows pgx.Rows) ([]*domain.RoomEvent, error) {
	var events []*domain.RoomEvent
	for rows.Next() {
		ev := &domain.RoomEvent{}
		var detailsJSON []byte
		if err := rows.Scan(&ev.ID, &ev.RoomID, &ev.Kind, &ev.Players, &detailsJSON, &ev.CreatedAt); err != nil {
			return nil, err
		}
		if len(detailsJSON) > 0 {
			_ = json.Unmarshal(detailsJSON, &ev.Details)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
