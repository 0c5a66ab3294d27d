package effects

import "roicompagnie/internal/engine"

// ExtraTurn: the recruiting player plays again once the turn is passed.
type ExtraTurn struct{}

func (ExtraTurn) Effect() engine.Effect { return engine.EffectExtraTurn }

func (ExtraTurn) Apply(g *engine.Game, card engine.Card) []engine.Event {
	g.Pending.ExtraTurn = true
	return []engine.Event{
		{Type: engine.EventEffectTriggered, Seat: g.Current, Data: map[string]interface{}{
			"effect": engine.EffectExtraTurn.String(), "card": card.Name,
		}},
	}
}
