package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"durak_server/internal/domain"
	"durak_server/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	events []*domain.RoomEvent
	err    error

	roomID string
	limit  int
}

func (f *fakeLister) ListByRoom(_ context.Context, roomID string, limit int) ([]*domain.RoomEvent, error) {
	f.roomID, f.limit = roomID, limit
	return f.events, f.err
}

func newRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/rooms", h.ListRooms)
	r.GET("/rooms/:id", h.GetRoom)
	r.GET("/rooms/:id/events", h.RoomEvents)
	return r
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRoomEventsDisabled(t *testing.T) {
	r := newRouter(NewHandler(ws.NewHub(ws.Options{}, nil), nil, ""))

	w := get(r, "/rooms/ABC123/events")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRoomEvents(t *testing.T) {
	lister := &fakeLister{events: []*domain.RoomEvent{
		{ID: 1, RoomID: "ABC123", Kind: domain.RoomEventCreated, Players: 1},
		{ID: 2, RoomID: "ABC123", Kind: domain.RoomEventStarted, Players: 2},
	}}
	r := newRouter(NewHandler(ws.NewHub(ws.Options{}, nil), lister, ""))

	w := get(r, "/rooms/abc123/events?limit=5")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ABC123", lister.roomID)
	assert.Equal(t, 5, lister.limit)

	var body struct {
		Events []domain.RoomEvent `json:"events"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Events, 2)
	assert.Equal(t, domain.RoomEventStarted, body.Events[1].Kind)
}

func TestRoomEventsLimitAndEmpty(t *testing.T) {
	tests := []struct {
		name  string
		query string
		limit int
	}{
		{"default", "", 100},
		{"not a number", "?limit=abc", 100},
		{"too large", "?limit=10000", 100},
		{"in range", "?limit=500", 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := &fakeLister{}
			r := newRouter(NewHandler(ws.NewHub(ws.Options{}, nil), lister, ""))

			w := get(r, "/rooms/ABC123/events"+tt.query)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.limit, lister.limit)
			assert.JSONEq(t, `{"events":[]}`, w.Body.String())
		})
	}
}

func TestRoomEventsStoreError(t *testing.T) {
	lister := &fakeLister{err: errors.New("connection refused")}
	r := newRouter(NewHandler(ws.NewHub(ws.Options{}, nil), lister, ""))

	w := get(r, "/rooms/ABC123/events")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetRoomNotFound(t *testing.T) {
	r := newRouter(NewHandler(ws.NewHub(ws.Options{}, nil), nil, ""))

	w := get(r, "/rooms/ZZZZZZ")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRoomsEmpty(t *testing.T) {
	r := newRouter(NewHandler(ws.NewHub(ws.Options{}, nil), nil, ""))

	w := get(r, "/rooms")
	require.Equal(t, http.StatusOK, w.Code)
	var stats ws.RoomStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, ws.RoomStats{}, stats)
}
