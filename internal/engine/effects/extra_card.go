package effects

import "roicompagnie/internal/engine"

// ExtraCardDraw: a habitant next to the recruited one is awarded as well.
// The award itself happens during the same resolution.
type ExtraCardDraw struct{}

func (ExtraCardDraw) Effect() engine.Effect { return engine.EffectExtraCardDraw }

func (ExtraCardDraw) Apply(g *engine.Game, card engine.Card) []engine.Event {
	g.Pending.ExtraCard = true
	return []engine.Event{
		{Type: engine.EventEffectTriggered, Seat: g.Current, Data: map[string]interface{}{
			"effect": engine.EffectExtraCardDraw.String(), "card": card.Name,
		}},
	}
}
