package effects

import "roicompagnie/internal/engine"

// ExtraRoll: the recruiting player gets one more roll on their next turn.
type ExtraRoll struct{}

func (ExtraRoll) Effect() engine.Effect { return engine.EffectExtraRoll }

func (ExtraRoll) Apply(g *engine.Game, card engine.Card) []engine.Event {
	p := g.CurrentPlayer()
	p.BonusRolls++
	return []engine.Event{
		{Type: engine.EventEffectTriggered, Seat: p.Seat, Data: map[string]interface{}{
			"effect": engine.EffectExtraRoll.String(), "card": card.Name, "bonus_rolls": p.BonusRolls,
		}},
	}
}
