package game

// PlayCard moves the card with cardID from the player's hand onto the field,
// passes the turn and refills hands from the deck.
//
// Turn order is only enforced under Rules.StrictTurnOrder. Whether the card
// beats what is already on the field is not checked.
func (r *Room) PlayCard(playerID, cardID string) error {
	if r.Status != StatusPlaying {
		return ErrNotPlaying
	}
	p, seat := r.Player(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}
	if r.rules.StrictTurnOrder && seat != r.TurnIndex {
		return ErrNotYourTurn
	}

	idx := -1
	for i, c := range p.Hand {
		if c.ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCardNotInHand
	}

	card := p.Hand[idx]
	p.Hand = append(p.Hand[:idx:idx], p.Hand[idx+1:]...)
	r.Field = append(r.Field, FieldCard{Card: card, Player: p.Name})
	r.TurnIndex = (r.TurnIndex + 1) % len(r.Players)

	if len(r.Deck) > 0 && r.anyHandShort() {
		DealCards(&r.Deck, r.Players)
	}
	return nil
}

func (r *Room) anyHandShort() bool {
	for _, p := range r.Players {
		if len(p.Hand) < HandSize {
			return true
		}
	}
	return false
}
