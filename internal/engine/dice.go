package engine

import "math/rand/v2"

// Source is the randomness a match draws from. *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewSource returns a deterministic Source for the given seed.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Die is one colored six-sided die. Value is 0 until the first roll.
type Die struct {
	Color  Color `json:"color"`
	Value  int   `json:"value"`
	Locked bool  `json:"locked"`
}

// DiceSet is a fixed, ordered set of dice.
type DiceSet struct {
	dice []Die
	src  Source
}

// DefaultDiceColors is two dice of each card color.
func DefaultDiceColors() []Color {
	return []Color{ColorRed, ColorRed, ColorGreen, ColorGreen, ColorBlue, ColorBlue}
}

func NewDiceSet(colors []Color, src Source) *DiceSet {
	ds := &DiceSet{dice: make([]Die, len(colors)), src: src}
	for i, c := range colors {
		ds.dice[i].Color = c
	}
	return ds
}

// RollAll redraws every unlocked die and returns all values.
func (ds *DiceSet) RollAll() []int {
	for i := range ds.dice {
		if !ds.dice[i].Locked {
			ds.dice[i].Value = rollDie(ds.src, dieSides)
		}
	}
	return ds.Values()
}

func rollDie(src Source, sides int) int {
	return src.IntN(sides) + 1
}

func (ds *DiceSet) Lock(i int) {
	if i >= 0 && i < len(ds.dice) {
		ds.dice[i].Locked = true
	}
}

func (ds *DiceSet) Unlock(i int) {
	if i >= 0 && i < len(ds.dice) {
		ds.dice[i].Locked = false
	}
}

// Toggle flips a die's lock. Out-of-range indices are ignored.
func (ds *DiceSet) Toggle(i int) {
	if i >= 0 && i < len(ds.dice) {
		ds.dice[i].Locked = !ds.dice[i].Locked
	}
}

func (ds *DiceSet) UnlockAll() {
	for i := range ds.dice {
		ds.dice[i].Locked = false
	}
}

// Clear forgets every value and lock, as before a turn's first roll.
func (ds *DiceSet) Clear() {
	for i := range ds.dice {
		ds.dice[i].Value = 0
		ds.dice[i].Locked = false
	}
}

// Values returns face values; unrolled dice read 0.
func (ds *DiceSet) Values() []int {
	out := make([]int, len(ds.dice))
	for i, d := range ds.dice {
		out[i] = d.Value
	}
	return out
}

func (ds *DiceSet) Colors() []Color {
	out := make([]Color, len(ds.dice))
	for i, d := range ds.dice {
		out[i] = d.Color
	}
	return out
}

func (ds *DiceSet) LockedIndices() []int {
	var out []int
	for i, d := range ds.dice {
		if d.Locked {
			out = append(out, i)
		}
	}
	return out
}

// Color returns the color of die i, or ColorNone when out of range.
func (ds *DiceSet) Color(i int) Color {
	if i < 0 || i >= len(ds.dice) {
		return ColorNone
	}
	return ds.dice[i].Color
}

// Rolled reports whether every die shows a value.
func (ds *DiceSet) Rolled() bool {
	for _, d := range ds.dice {
		if d.Value == 0 {
			return false
		}
	}
	return len(ds.dice) > 0
}

func (ds *DiceSet) Len() int {
	return len(ds.dice)
}

// Dice returns a copy of the dice.
func (ds *DiceSet) Dice() []Die {
	out := make([]Die, len(ds.dice))
	copy(out, ds.dice)
	return out
}
