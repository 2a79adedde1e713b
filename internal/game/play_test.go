package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayCard(t *testing.T) {
	r := newStartedRoom(t, 2, Rules{})
	p := r.Players[0]
	card := p.Hand[2]
	deckBefore := len(r.Deck)

	require.NoError(t, r.PlayCard("p0", card.ID))

	require.Len(t, r.Field, 1)
	assert.Equal(t, FieldCard{Card: card, Player: "Ali"}, r.Field[0])
	assert.NotContains(t, p.Hand, card)
	assert.Equal(t, 1, r.TurnIndex)
	assert.Len(t, p.Hand, HandSize, "hand is refilled from the deck")
	assert.Len(t, r.Deck, deckBefore-1)
	requireCardInvariant(t, r)
}

func TestPlayCardTurnWraps(t *testing.T) {
	r := newStartedRoom(t, 3, Rules{})
	for i := 0; i < 4; i++ {
		seat := i % 3
		p := r.Players[seat]
		require.NoError(t, r.PlayCard(p.ID, p.Hand[0].ID))
		assert.Equal(t, (seat+1)%3, r.TurnIndex)
	}
	assert.Len(t, r.Field, 4)
	requireCardInvariant(t, r)
}

func TestPlayCardIgnoresTurnByDefault(t *testing.T) {
	r := newStartedRoom(t, 2, Rules{})
	p := r.Players[1]

	require.NoError(t, r.PlayCard("p1", p.Hand[0].ID))
	assert.Equal(t, 1, r.TurnIndex)
}

func TestPlayCardStrictTurnOrder(t *testing.T) {
	r := newStartedRoom(t, 2, Rules{StrictTurnOrder: true})
	before, err := json.Marshal(r.Snapshot("", false))
	require.NoError(t, err)

	err = r.PlayCard("p1", r.Players[1].Hand[0].ID)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	after, err := json.Marshal(r.Snapshot("", false))
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))

	require.NoError(t, r.PlayCard("p0", r.Players[0].Hand[0].ID))
	require.NoError(t, r.PlayCard("p1", r.Players[1].Hand[0].ID))
	assert.Equal(t, 0, r.TurnIndex)
}

func TestPlayCardNotInHandLeavesRoomUnchanged(t *testing.T) {
	r := newStartedRoom(t, 2, Rules{})
	other := r.Players[1].Hand[0]
	before, err := json.Marshal(r.Snapshot("", false))
	require.NoError(t, err)

	for _, id := range []string{other.ID, "nope", ""} {
		assert.ErrorIs(t, r.PlayCard("p0", id), ErrCardNotInHand)
	}

	after, err := json.Marshal(r.Snapshot("", false))
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestPlayCardRejects(t *testing.T) {
	waiting := NewRoom("ABC123", "p0", "Ali", Rules{})
	assert.ErrorIs(t, waiting.PlayCard("p0", "6♥"), ErrNotPlaying)

	r := newStartedRoom(t, 2, Rules{})
	assert.ErrorIs(t, r.PlayCard("ghost", r.Players[0].Hand[0].ID), ErrPlayerNotFound)
	assert.Empty(t, r.Field)
}

func TestPlayCardUntilDeckEmpty(t *testing.T) {
	r := newStartedRoom(t, 2, Rules{})
	for len(r.Deck) > 0 {
		p := r.Players[r.TurnIndex]
		require.NoError(t, r.PlayCard(p.ID, p.Hand[0].ID))
		requireCardInvariant(t, r)
	}

	// without a deck hands only shrink
	p := r.Players[r.TurnIndex]
	n := len(p.Hand)
	require.NoError(t, r.PlayCard(p.ID, p.Hand[0].ID))
	assert.Len(t, p.Hand, n-1)
	requireCardInvariant(t, r)
}

func TestSnapshotRedaction(t *testing.T) {
	r := newStartedRoom(t, 2, Rules{})

	full := r.Snapshot("p0", false)
	assert.Len(t, full.Players[1].Hand, HandSize)
	assert.Len(t, full.Deck, DeckSize-2*HandSize)

	v := r.Snapshot("p0", true)
	assert.Len(t, v.Players[0].Hand, HandSize)
	assert.Empty(t, v.Players[1].Hand)
	assert.Equal(t, HandSize, v.Players[1].HandCount)
	assert.Empty(t, v.Deck)
	assert.Equal(t, DeckSize-2*HandSize, v.DeckCount)
	assert.Equal(t, r.Trump.ID, v.Trump.ID)

	public := r.Snapshot("", true)
	for _, p := range public.Players {
		assert.Empty(t, p.Hand)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	r := newStartedRoom(t, 2, Rules{})
	v := r.Snapshot("", false)

	require.NoError(t, r.PlayCard("p0", r.Players[0].Hand[0].ID))

	assert.Empty(t, v.Field)
	assert.Equal(t, 0, v.TurnIndex)
	assert.Len(t, v.Deck, DeckSize-2*HandSize)
}

func TestSnapshotWaitingJSON(t *testing.T) {
	r := NewRoom("ABC123", "c1", "Ali", Rules{})
	b, err := json.Marshal(r.Snapshot("", false))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "ABC123",
		"players": [{"id": "c1", "name": "Ali", "hand": [], "handCount": 0, "ready": false}],
		"deck": [],
		"deckCount": 0,
		"field": [],
		"trump": null,
		"status": "waiting",
		"turnIndex": 0
	}`, string(b))
}
