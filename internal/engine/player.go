package engine

// Player holds one seat's state.
type Player struct {
	Seat    int    `json:"seat"`
	Name    string `json:"name"`
	Kingdom []Card `json:"kingdom"`

	// Extra rolls granted by recruited habitants, added at the start of
	// this player's next turn.
	BonusRolls int `json:"bonus_rolls"`
}

func NewPlayer(seat int, name string) *Player {
	return &Player{Seat: seat, Name: name}
}

// KingdomHas returns true if the kingdom holds a card with the given name.
func (p *Player) KingdomHas(name string) bool {
	return p.CountNamed(name) > 0
}

// CountNamed counts kingdom cards with the given name.
func (p *Player) CountNamed(name string) int {
	return countNamed(p.Kingdom, name)
}

// KingdomColorCount counts habitants and locations of a given color.
func (p *Player) KingdomColorCount(color Color) int {
	n := 0
	for _, c := range p.Kingdom {
		if c.Kind != KindPenalty && c.Color == color {
			n++
		}
	}
	return n
}

// Count returns how many kingdom cards are of the given kind.
func (p *Player) Count(kind CardKind) int {
	n := 0
	for _, c := range p.Kingdom {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// lastTransferable returns the index of the newest transferable penalty, or -1.
func (p *Player) lastTransferable() int {
	for i := len(p.Kingdom) - 1; i >= 0; i-- {
		c := p.Kingdom[i]
		if c.Kind == KindPenalty && c.Transferable {
			return i
		}
	}
	return -1
}

func (p *Player) removeAt(i int) Card {
	c := p.Kingdom[i]
	p.Kingdom = append(p.Kingdom[:i:i], p.Kingdom[i+1:]...)
	return c
}
