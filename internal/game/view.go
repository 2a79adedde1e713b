package game

// PlayerView is a player as sent over the wire.
type PlayerView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Hand      []Card `json:"hand"`
	HandCount int    `json:"handCount"`
	Ready     bool   `json:"ready"`
}

// View is a detached copy of a Room safe to serialize after the room moves on.
type View struct {
	ID        string       `json:"id"`
	Players   []PlayerView `json:"players"`
	Deck      []Card       `json:"deck"`
	DeckCount int          `json:"deckCount"`
	Field     []FieldCard  `json:"field"`
	Trump     *Card        `json:"trump"`
	Status    Status       `json:"status"`
	TurnIndex int          `json:"turnIndex"`
}

// Snapshot copies the room. With redact set, only viewerID's hand is kept;
// other hands and the deck order are reduced to counts. An empty viewerID
// with redact hides every hand.
func (r *Room) Snapshot(viewerID string, redact bool) View {
	v := View{
		ID:        r.ID,
		Players:   make([]PlayerView, len(r.Players)),
		Deck:      []Card{},
		DeckCount: len(r.Deck),
		Field:     append([]FieldCard{}, r.Field...),
		Status:    r.Status,
		TurnIndex: r.TurnIndex,
	}
	if r.Trump != nil {
		t := *r.Trump
		v.Trump = &t
	}
	if !redact {
		v.Deck = append(v.Deck, r.Deck...)
	}
	for i, p := range r.Players {
		pv := PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			Hand:      []Card{},
			HandCount: len(p.Hand),
			Ready:     p.Ready,
		}
		if !redact || p.ID == viewerID {
			pv.Hand = append(pv.Hand, p.Hand...)
		}
		v.Players[i] = pv
	}
	return v
}
