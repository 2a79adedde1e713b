package ws

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"durak_server/internal/domain"
	"durak_server/internal/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func noShuffle(int, func(i, j int)) {}

func newTestHub(opts Options) *Hub {
	if opts.Rules.Shuffle == nil {
		opts.Rules.Shuffle = noShuffle
	}
	return NewHub(opts, nil)
}

func newTestClient(h *Hub, id string) *Client {
	return &Client{
		ID:      id,
		Send:    make(chan []byte, 64),
		Hub:     h,
		limiter: rate.NewLimiter(rate.Inf, 1),
		done:    make(chan struct{}),
	}
}

type frame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func recv(t *testing.T, c *Client) frame {
	t.Helper()
	select {
	case data := <-c.Send:
		var f frame
		require.NoError(t, json.Unmarshal(data, &f))
		return f
	default:
		t.Fatalf("no frame queued for %s", c.ID)
		return frame{}
	}
}

func recvView(t *testing.T, c *Client, wantType string) game.View {
	t.Helper()
	f := recv(t, c)
	require.Equal(t, wantType, f.Type)
	var v game.View
	require.NoError(t, json.Unmarshal(f.Payload, &v))
	return v
}

func requireNoFrame(t *testing.T, clients ...*Client) {
	t.Helper()
	for _, c := range clients {
		require.Empty(t, c.Send, "unexpected frame for %s", c.ID)
	}
}

func drain(clients ...*Client) {
	for _, c := range clients {
		for len(c.Send) > 0 {
			<-c.Send
		}
	}
}

func send(t *testing.T, h *Hub, c *Client, event string, payload any) {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"type": event, "payload": payload})
	require.NoError(t, err)
	h.HandleMessage(c, raw)
}

// startGame creates a room for a, seats b and readies both.
func startGame(t *testing.T, h *Hub, a, b *Client) string {
	t.Helper()
	id := h.CreateRoom(a, "Ali")
	require.NoError(t, h.JoinRoom(b, id, "Leyla"))
	require.NoError(t, h.SetReady(a, id))
	require.NoError(t, h.SetReady(b, id))
	drain(a, b)
	return id
}

type fakeEventStore struct {
	mu     sync.Mutex
	events []domain.RoomEvent
}

func (s *fakeEventStore) Create(_ context.Context, ev *domain.RoomEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *ev)
	return nil
}

func (s *fakeEventStore) kinds() []domain.RoomEventKind {
	s.mu.Lock()
	defer s.mu.Unlock()
	kinds := make([]domain.RoomEventKind, len(s.events))
	for i, ev := range s.events {
		kinds[i] = ev.Kind
	}
	return kinds
}

func (s *fakeEventStore) find(kind domain.RoomEventKind) (domain.RoomEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range s.events {
		if ev.Kind == kind {
			return ev, true
		}
	}
	return domain.RoomEvent{}, false
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
