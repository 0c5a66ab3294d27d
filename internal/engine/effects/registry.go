// Package effects holds the habitant effect handlers.
package effects

import "roicompagnie/internal/engine"

// NewRegistry returns a registry with every effect handler registered.
func NewRegistry() *engine.EffectRegistry {
	r := engine.NewEffectRegistry()
	r.Register(ExtraRoll{})
	r.Register(ExtraTurn{})
	r.Register(ExtraCardDraw{})
	return r
}
