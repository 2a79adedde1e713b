package game

import "math/rand/v2"

type Suit string

const (
	Hearts   Suit = "♥"
	Diamonds Suit = "♦"
	Clubs    Suit = "♣"
	Spades   Suit = "♠"
)

// Suits and Ranks are listed in canonical deck order.
var (
	Suits = []Suit{Hearts, Diamonds, Clubs, Spades}
	Ranks = []string{"6", "7", "8", "9", "10", "J", "Q", "K", "A"}
)

const DeckSize = 36

// Card is immutable once built. ID is rank followed by suit, e.g. "10♥".
type Card struct {
	Suit Suit   `json:"suit"`
	Rank string `json:"rank"`
	ID   string `json:"id"`
}

func NewCard(suit Suit, rank string) Card {
	return Card{Suit: suit, Rank: rank, ID: rank + string(suit)}
}

// ShuffleFunc has the signature of rand.Shuffle and must produce a uniform permutation.
type ShuffleFunc func(n int, swap func(i, j int))

// CanonicalDeck returns the 36 cards in suit-major, rank-minor order.
func CanonicalDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for _, r := range Ranks {
			cards = append(cards, NewCard(s, r))
		}
	}
	return cards
}

// NewDeck returns a freshly shuffled deck. A nil shuffle uses rand.Shuffle (Fisher-Yates).
func NewDeck(shuffle ShuffleFunc) Deck {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}
	cards := CanonicalDeck()
	shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
	return Deck(cards)
}
