package engine

// Outcome reports what a validation did.
type Outcome struct {
	// Card is the recruited habitant, or the drawn penalty. It is nil when
	// a penalty was due but the penalty deck was empty.
	Card     *Card  `json:"card,omitempty"`
	Penalty  bool   `json:"penalty"`
	Slot     int    `json:"slot"` // window slot recruited from, -1 on penalty
	Location *Card  `json:"location,omitempty"`
	Bonus    *Card  `json:"bonus,omitempty"`
	Effect   Effect `json:"effect"`
}

// RecruitOrPenalize validates the current roll: the leftmost window
// habitant whose combo the dice satisfy is recruited, otherwise the
// current player draws a penalty and the window slides.
func (g *Game) RecruitOrPenalize() (Outcome, error) {
	if err := g.requireRolled(); err != nil {
		return Outcome{}, err
	}
	out, _ := g.resolve()
	return out, nil
}

// MatchingSlot returns the first window slot whose habitant matches the
// dice, or -1.
func (g *Game) MatchingSlot(values []int, colors []Color) int {
	for i, c := range g.Window {
		if c != nil && c.IsComboMet(values, colors) {
			return i
		}
	}
	return -1
}

func (g *Game) resolve() (Outcome, []Event) {
	p := g.CurrentPlayer()
	slot := g.MatchingSlot(g.Dice.Values(), g.Dice.Colors())

	var out Outcome
	var events []Event
	if slot >= 0 {
		out, events = g.recruit(p, slot)
	} else {
		out, events = g.penalize(p)
	}

	if g.IsGameOver() {
		return out, g.endGame(events)
	}
	if g.Pending.TransferPenalty && len(g.TransferTargets()) > 0 {
		g.Phase = PhaseResolved
	} else {
		g.Phase = PhaseAwaitingNextPlayer
	}
	return out, append(events, phaseEvent(g.Phase))
}

func (g *Game) recruit(p *Player, slot int) (Outcome, []Event) {
	card := *g.Window[slot]
	p.Kingdom = append(p.Kingdom, card)
	out := Outcome{Card: &card, Slot: slot, Effect: card.Effect}
	events := []Event{{Type: EventRecruited, Seat: p.Seat, Data: map[string]interface{}{
		"card": card,
		"slot": slot,
	}}}

	if card.Effect != EffectNone && g.Effects != nil {
		if h, err := g.Effects.Get(card.Effect); err == nil {
			events = append(events, h.Apply(g, card)...)
		}
	}

	if loc, ok := g.awardLocation(card.Color); ok {
		p.Kingdom = append(p.Kingdom, loc)
		out.Location = &loc
		events = append(events, Event{Type: EventLocationAwarded, Seat: p.Seat, Data: map[string]interface{}{
			"card": loc,
		}})
	}

	if g.Pending.ExtraCard {
		if n := g.neighborSlot(slot); n >= 0 {
			bonus := *g.Window[n]
			p.Kingdom = append(p.Kingdom, bonus)
			g.Window[n] = g.drawHabitant()
			g.Pending.ExtraCard = false
			out.Bonus = &bonus
			events = append(events, Event{Type: EventBonusCard, Seat: p.Seat, Data: map[string]interface{}{
				"card": bonus,
				"slot": n,
			}})
		}
	}

	g.Window[slot] = g.drawHabitant()
	return out, events
}

func (g *Game) penalize(p *Player) (Outcome, []Event) {
	out := Outcome{Penalty: true, Slot: -1}
	data := map[string]interface{}{}
	if pen, ok := g.PenaltyDeck.Draw(); ok {
		p.Kingdom = append(p.Kingdom, pen)
		if pen.Transferable {
			g.Pending.TransferPenalty = true
		}
		out.Card = &pen
		data["card"] = pen
	}
	events := []Event{{Type: EventPenalized, Seat: p.Seat, Data: data}}

	discarded := g.slideWindow()
	slid := map[string]interface{}{}
	if discarded != nil {
		slid["discarded"] = *discarded
	}
	if g.Window[0] != nil {
		slid["drawn"] = *g.Window[0]
	}
	return out, append(events, Event{Type: EventWindowSlid, Data: slid})
}

// awardLocation takes the top of the first non-empty pile of the color.
func (g *Game) awardLocation(color Color) (Card, bool) {
	for _, pile := range g.Piles {
		if pile.Color == color && !pile.Empty() {
			return pile.Take()
		}
	}
	return Card{}, false
}

// neighborSlot picks the right neighbor of slot, else the left, skipping
// empty slots. It returns -1 when neither holds a card.
func (g *Game) neighborSlot(slot int) int {
	if r := slot + 1; r < len(g.Window) && g.Window[r] != nil {
		return r
	}
	if l := slot - 1; l >= 0 && g.Window[l] != nil {
		return l
	}
	return -1
}

// slideWindow discards the rightmost slot, shifts the window right and
// draws into the leftmost slot. It returns the discarded card, if any.
func (g *Game) slideWindow() *Card {
	last := g.Window[len(g.Window)-1]
	if last != nil {
		g.Habitants.Discard(*last)
	}
	copy(g.Window[1:], g.Window[:len(g.Window)-1])
	g.Window[0] = g.drawHabitant()
	return last
}
