package engine

import "slices"

// LocationPile is the stack of one location's cards, lowest tier on top.
type LocationPile struct {
	Name  string
	Color Color
	cards []Card
}

// NewLocationPile stacks copies of every tier, lowest tier on top.
func NewLocationPile(def LocationDef, tiers []int, copies int) *LocationPile {
	p := &LocationPile{Name: def.Name, Color: def.Color}
	sorted := append([]int(nil), tiers...)
	slices.Sort(sorted)
	for _, tier := range sorted {
		for i := 0; i < max(copies, 1); i++ {
			p.cards = append(p.cards, def.Card(tier))
		}
	}
	return p
}

// Top returns the next card without taking it.
func (p *LocationPile) Top() (Card, bool) {
	if len(p.cards) == 0 {
		return Card{}, false
	}
	return p.cards[0], true
}

// Take removes and returns the top card.
func (p *LocationPile) Take() (Card, bool) {
	card, ok := p.Top()
	if ok {
		p.cards = p.cards[1:]
	}
	return card, ok
}

func (p *LocationPile) Len() int {
	return len(p.cards)
}

func (p *LocationPile) Empty() bool {
	return len(p.cards) == 0
}

// Cards returns a copy of the pile, top first.
func (p *LocationPile) Cards() []Card {
	out := make([]Card, len(p.cards))
	copy(out, p.cards)
	return out
}
