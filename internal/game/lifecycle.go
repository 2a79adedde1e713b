package game

// AddPlayer admits a new player while the room is still in the lobby.
func (r *Room) AddPlayer(id, name string) error {
	if r.Status != StatusWaiting {
		return ErrNotWaiting
	}
	if len(r.Players) >= MaxPlayers {
		return ErrRoomFull
	}
	if p, _ := r.Player(id); p != nil {
		return ErrAlreadyInRoom
	}
	r.Players = append(r.Players, &Player{ID: id, Name: name, Hand: []Card{}})
	return nil
}

// RemovePlayer drops a player from the lobby. Seats are fixed once play starts.
func (r *Room) RemovePlayer(id string) error {
	if r.Status != StatusWaiting {
		return ErrAlreadyStarted
	}
	_, idx := r.Player(id)
	if idx < 0 {
		return ErrPlayerNotFound
	}
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	if r.TurnIndex >= len(r.Players) {
		r.TurnIndex = 0
	}
	return nil
}

// ToggleReady flips the player's ready flag and starts the game when every
// seated player is ready and there are enough of them. It reports whether
// the game started.
func (r *Room) ToggleReady(id string) (bool, error) {
	if r.Status != StatusWaiting {
		return false, ErrAlreadyStarted
	}
	p, _ := r.Player(id)
	if p == nil {
		return false, ErrPlayerNotFound
	}
	p.Ready = !p.Ready

	if !r.canStart() {
		return false, nil
	}
	r.start()
	return true, nil
}

func (r *Room) canStart() bool {
	if len(r.Players) < MinPlayersToStart {
		return false
	}
	for _, p := range r.Players {
		if !p.Ready {
			return false
		}
	}
	return true
}

func (r *Room) start() {
	r.Deck = NewDeck(r.rules.Shuffle)
	trump, _ := r.Deck.Top()
	r.Trump = &trump
	if r.rules.TrumpPlacement == TrumpBottom {
		r.Deck.PutTopUnder()
	}
	r.Field = []FieldCard{}
	r.TurnIndex = 0
	r.Status = StatusPlaying
	DealCards(&r.Deck, r.Players)
}
