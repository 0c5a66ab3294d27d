package engine

// DrawPolicy decides what a deck does when its draw pile runs out.
type DrawPolicy int

const (
	// PolicyHardStop returns nothing once the draw pile is empty.
	PolicyHardStop DrawPolicy = 0
	// PolicyReshuffle shuffles the discard pile back in before drawing.
	PolicyReshuffle DrawPolicy = 1
)

func (p DrawPolicy) String() string {
	if p == PolicyReshuffle {
		return "reshuffle"
	}
	return "hard_stop"
}

// Deck is a draw pile (front is drawn next) plus a discard pile.
type Deck struct {
	cards   []Card
	discard []Card
	policy  DrawPolicy
	src     Source
}

// NewDeck creates an unshuffled deck from the given cards.
func NewDeck(cards []Card, policy DrawPolicy, src Source) *Deck {
	d := &Deck{cards: make([]Card, len(cards)), policy: policy, src: src}
	copy(d.cards, cards)
	return d
}

func (d *Deck) Shuffle() {
	d.src.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Draw removes and returns the top card. ok is false when nothing can be drawn.
func (d *Deck) Draw() (card Card, ok bool) {
	if len(d.cards) == 0 && d.policy == PolicyReshuffle && len(d.discard) > 0 {
		d.cards = append(d.cards, d.discard...)
		d.discard = nil
		d.Shuffle()
	}
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card = d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// Discard puts a card that was drawn from this deck on the discard pile.
func (d *Deck) Discard(card Card) {
	d.discard = append(d.discard, card)
}

// Len returns the number of cards left in the draw pile.
func (d *Deck) Len() int {
	return len(d.cards)
}

func (d *Deck) DiscardLen() int {
	return len(d.discard)
}

func (d *Deck) Policy() DrawPolicy {
	return d.policy
}

// Exhausted reports whether Draw can no longer yield a card.
func (d *Deck) Exhausted() bool {
	if d.policy == PolicyReshuffle {
		return len(d.cards) == 0 && len(d.discard) == 0
	}
	return len(d.cards) == 0
}

// Peek returns top n cards without removing them.
func (d *Deck) Peek(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	out := make([]Card, n)
	copy(out, d.cards[:n])
	return out
}

// Cards returns a copy of the draw pile in draw order.
func (d *Deck) Cards() []Card {
	return d.Peek(len(d.cards))
}

// DiscardCards returns a copy of the discard pile.
func (d *Deck) DiscardCards() []Card {
	out := make([]Card, len(d.discard))
	copy(out, d.discard)
	return out
}

// restoreDeck rebuilds a deck with explicit pile contents.
func restoreDeck(draw, discard []Card, policy DrawPolicy, src Source) *Deck {
	d := NewDeck(draw, policy, src)
	d.discard = append([]Card(nil), discard...)
	return d
}
