package game

const (
	MaxPlayers        = 6
	MinPlayersToStart = 2
	HandSize          = 6
)

type Status string

const (
	StatusWaiting Status = "waiting"
	StatusPlaying Status = "playing"
)

// TrumpPlacement decides what happens to the card that names the trump suit.
type TrumpPlacement string

const (
	// TrumpBottom moves the trump card under the deck so it is drawn last.
	TrumpBottom TrumpPlacement = "bottom"
	// TrumpTop leaves it on top, where the first deal hands it to the first player.
	TrumpTop TrumpPlacement = "top"
)

type Rules struct {
	StrictTurnOrder bool
	TrumpPlacement  TrumpPlacement
	Shuffle         ShuffleFunc
}

type Player struct {
	ID    string
	Name  string
	Hand  []Card
	Ready bool
}

type FieldCard struct {
	Card   Card   `json:"card"`
	Player string `json:"player"`
}

// Room is the state of one game session. It does no locking of its own;
// the owner must serialize calls.
type Room struct {
	ID        string
	Players   []*Player
	Deck      Deck
	Field     []FieldCard
	Trump     *Card
	Status    Status
	TurnIndex int

	rules Rules
}

// NewRoom builds a waiting room whose only player is the creator.
func NewRoom(id, creatorID, creatorName string, rules Rules) *Room {
	if rules.TrumpPlacement == "" {
		rules.TrumpPlacement = TrumpBottom
	}
	return &Room{
		ID:      id,
		Players: []*Player{{ID: creatorID, Name: creatorName, Hand: []Card{}}},
		Status:  StatusWaiting,
		rules:   rules,
	}
}

// Player returns the player with the given id and its seat index.
func (r *Room) Player(id string) (*Player, int) {
	for i, p := range r.Players {
		if p.ID == id {
			return p, i
		}
	}
	return nil, -1
}

func (r *Room) Rules() Rules { return r.rules }

// cards lists every card the room holds: deck, hands and field.
func (r *Room) cards() []Card {
	all := make([]Card, 0, DeckSize)
	all = append(all, r.Deck...)
	for _, p := range r.Players {
		all = append(all, p.Hand...)
	}
	for _, f := range r.Field {
		all = append(all, f.Card)
	}
	return all
}
