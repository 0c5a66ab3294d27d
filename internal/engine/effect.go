package engine

import "fmt"

// Effect identifies a habitant's special effect, triggered when recruited.
type Effect int

const (
	EffectNone          Effect = 0
	EffectExtraRoll     Effect = 1
	EffectExtraTurn     Effect = 2
	EffectExtraCardDraw Effect = 3
)

var effectNames = map[Effect]string{
	EffectNone:          "none",
	EffectExtraRoll:     "extra_roll",
	EffectExtraTurn:     "extra_turn",
	EffectExtraCardDraw: "extra_card_draw",
}

func (e Effect) String() string {
	if s, ok := effectNames[e]; ok {
		return s
	}
	return "unknown"
}

func (e Effect) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Effect) UnmarshalText(b []byte) error {
	for eff, name := range effectNames {
		if name == string(b) {
			*e = eff
			return nil
		}
	}
	return fmt.Errorf("unknown effect %q", b)
}

// AllEffects returns the effects that have a handler, in order.
func AllEffects() []Effect {
	return []Effect{EffectExtraRoll, EffectExtraTurn, EffectExtraCardDraw}
}

// EffectHandler applies one special effect to the game.
type EffectHandler interface {
	Effect() Effect
	// Apply runs when a habitant carrying the effect is recruited by the
	// current player. It may only touch pending-effect state.
	Apply(g *Game, card Card) []Event
}

// EffectRegistry maps effects to their handlers.
type EffectRegistry struct {
	handlers map[Effect]EffectHandler
}

func NewEffectRegistry() *EffectRegistry {
	return &EffectRegistry{handlers: make(map[Effect]EffectHandler)}
}

func (r *EffectRegistry) Register(h EffectHandler) {
	r.handlers[h.Effect()] = h
}

func (r *EffectRegistry) Get(e Effect) (EffectHandler, error) {
	h, ok := r.handlers[e]
	if !ok {
		return nil, fmt.Errorf("no handler registered for effect %s", e)
	}
	return h, nil
}
