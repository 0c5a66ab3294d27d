package engine

import "fmt"

// Color is the color shared by dice, habitants and locations.
type Color int

const (
	ColorNone  Color = 0
	ColorRed   Color = 1
	ColorGreen Color = 2
	ColorBlue  Color = 3
)

var colorNames = map[Color]string{
	ColorNone:  "none",
	ColorRed:   "red",
	ColorGreen: "green",
	ColorBlue:  "blue",
}

func (c Color) String() string {
	if s, ok := colorNames[c]; ok {
		return s
	}
	return "unknown"
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor is the inverse of Color.String.
func ParseColor(s string) (Color, error) {
	for c, name := range colorNames {
		if name == s {
			return c, nil
		}
	}
	return ColorNone, fmt.Errorf("unknown color %q", s)
}

// CardColors lists the colors a habitant or location can carry.
func CardColors() []Color {
	return []Color{ColorRed, ColorGreen, ColorBlue}
}

// CardKind discriminates the Card variants.
type CardKind int

const (
	KindHabitant CardKind = 1
	KindLocation CardKind = 2
	KindPenalty  CardKind = 3
)

var kindNames = map[CardKind]string{
	KindHabitant: "habitant",
	KindLocation: "location",
	KindPenalty:  "penalty",
}

func (k CardKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

func (k CardKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *CardKind) UnmarshalText(b []byte) error {
	parsed, err := ParseCardKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseCardKind is the inverse of CardKind.String.
func ParseCardKind(s string) (CardKind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown card kind %q", s)
}

// Card is a habitant, location or penalty card. Only the fields of its
// Kind are meaningful. Cards are values and are never mutated once built.
type Card struct {
	Kind   CardKind `json:"kind"`
	Name   string   `json:"name"`
	Color  Color    `json:"color"`
	Points int      `json:"points"`

	// Habitant
	Combo          Combo  `json:"-"`
	VariablePoints bool   `json:"variable_points,omitempty"`
	Effect         Effect `json:"effect,omitempty"`

	// Location
	Tier int `json:"tier,omitempty"`

	// Penalty
	Penalty      int  `json:"penalty,omitempty"`
	Transferable bool `json:"transferable,omitempty"`
}

func (c Card) String() string {
	return fmt.Sprintf("<%s %s (%s)>", c.Kind, c.Name, c.Color)
}

// IsComboMet reports whether the dice outcome satisfies a habitant's combo.
func (c Card) IsComboMet(values []int, colors []Color) bool {
	if c.Kind != KindHabitant {
		return false
	}
	return c.Combo.Met(values, colors)
}

// CalculatePoints returns the card's contribution to the score of the
// kingdom holding it. Variable-point habitants score the square of the
// number of same-named cards in that kingdom.
func (c Card) CalculatePoints(kingdom []Card) int {
	switch c.Kind {
	case KindPenalty:
		return -c.Penalty
	case KindHabitant:
		if c.VariablePoints {
			n := countNamed(kingdom, c.Name)
			return n * n
		}
	}
	return c.Points
}

func countNamed(cards []Card, name string) int {
	n := 0
	for _, c := range cards {
		if c.Name == name {
			n++
		}
	}
	return n
}
