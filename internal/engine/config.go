package engine

import "fmt"

const (
	MinPlayers = 1
	MaxPlayers = 6
)

// GameConfig holds the rules a match is created with.
type GameConfig struct {
	Habitants []HabitantDef // habitant deck contents
	Penalties []PenaltyDef  // penalty deck contents
	Locations []LocationDef // locations in play, in award order

	LocationTiers  []int // tiers stacked in each pile (default 2, 3, 4)
	LocationCopies int   // copies of each tier per pile

	DiceColors []Color
	WindowSize int
	BaseRolls  int

	HabitantPolicy DrawPolicy
	PenaltyPolicy  DrawPolicy

	// Seed feeds the match randomness. Source, when set, is used instead.
	Seed   uint64
	Source Source
}

func DefaultConfig() GameConfig {
	return GameConfig{
		Habitants:      Habitants(),
		Penalties:      Penalties(),
		Locations:      Locations()[:3],
		LocationTiers:  []int{2, 3, 4},
		LocationCopies: 2,
		DiceColors:     DefaultDiceColors(),
		WindowSize:     5,
		BaseRolls:      3,
		HabitantPolicy: PolicyHardStop,
		PenaltyPolicy:  PolicyHardStop,
	}
}

// Validate checks the config for a match with the given number of players.
func (c GameConfig) Validate(players int) error {
	switch {
	case players < MinPlayers || players > MaxPlayers:
		return fmt.Errorf("%w: %d players, want %d-%d", ErrInvalidConfig, players, MinPlayers, MaxPlayers)
	case len(c.Habitants) == 0:
		return fmt.Errorf("%w: no habitants", ErrInvalidConfig)
	case len(c.Penalties) == 0:
		return fmt.Errorf("%w: no penalties", ErrInvalidConfig)
	case len(c.Locations) == 0:
		return fmt.Errorf("%w: no locations", ErrInvalidConfig)
	case len(c.LocationTiers) == 0:
		return fmt.Errorf("%w: no location tiers", ErrInvalidConfig)
	case len(c.DiceColors) == 0:
		return fmt.Errorf("%w: no dice", ErrInvalidConfig)
	case c.WindowSize < 1:
		return fmt.Errorf("%w: window size %d", ErrInvalidConfig, c.WindowSize)
	case c.BaseRolls < 1:
		return fmt.Errorf("%w: base rolls %d", ErrInvalidConfig, c.BaseRolls)
	}
	for _, t := range c.LocationTiers {
		if t < 1 {
			return fmt.Errorf("%w: location tier %d", ErrInvalidConfig, t)
		}
	}
	return nil
}

func (c GameConfig) source() Source {
	if c.Source != nil {
		return c.Source
	}
	return NewSource(c.Seed)
}
