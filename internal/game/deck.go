package game

// Deck is a stack of cards. The last element is the top.
type Deck []Card

// Top returns the top card without removing it.
func (d Deck) Top() (Card, bool) {
	if len(d) == 0 {
		return Card{}, false
	}
	return d[len(d)-1], true
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, bool) {
	c, ok := d.Top()
	if !ok {
		return Card{}, false
	}
	*d = (*d)[:len(*d)-1]
	return c, true
}

// PutTopUnder moves the top card underneath the rest of the deck.
func (d Deck) PutTopUnder() {
	if len(d) < 2 {
		return
	}
	top := d[len(d)-1]
	copy(d[1:], d[:len(d)-1])
	d[0] = top
}

// DealCards tops up every player's hand to HandSize in registration order,
// drawing from the top of the deck until it runs out.
func DealCards(deck *Deck, players []*Player) {
	for _, p := range players {
		for len(p.Hand) < HandSize {
			c, ok := deck.Draw()
			if !ok {
				return
			}
			p.Hand = append(p.Hand, c)
		}
	}
}
