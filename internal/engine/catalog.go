package engine

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// HabitantDef is a row of the habitant definition table.
type HabitantDef struct {
	Name           string
	Color          Color
	Points         int
	Combo          Combo
	Effect         Effect
	VariablePoints bool
	Copies         int
}

// Card builds one habitant card from the definition.
func (d HabitantDef) Card() Card {
	return Card{
		Kind:           KindHabitant,
		Name:           d.Name,
		Color:          d.Color,
		Points:         d.Points,
		Combo:          d.Combo,
		Effect:         d.Effect,
		VariablePoints: d.VariablePoints,
	}
}

// LocationDef is a row of the location definition table.
type LocationDef struct {
	Name  string
	Color Color
}

// Card builds a location card of the given tier. A location is worth its tier.
func (d LocationDef) Card(tier int) Card {
	return Card{Kind: KindLocation, Name: d.Name, Color: d.Color, Points: tier, Tier: tier}
}

// PenaltyDef is a row of the penalty definition table.
type PenaltyDef struct {
	Name         string
	Penalty      int
	Transferable bool
	Copies       int
}

func (d PenaltyDef) Card() Card {
	return Card{
		Kind:         KindPenalty,
		Name:         d.Name,
		Color:        ColorNone,
		Points:       -d.Penalty,
		Penalty:      d.Penalty,
		Transferable: d.Transferable,
	}
}

// DragonName is the transferable penalty.
const DragonName = "Dragon"

var habitantTable = []HabitantDef{
	{Name: "Chevalier", Color: ColorRed, Points: 2, Combo: FaceCount(6, 3), Copies: 1},
	{Name: "Marchand", Color: ColorBlue, Points: 1, Combo: Faces(map[int]int{5: 2, 2: 1}), Effect: EffectExtraCardDraw, Copies: 1},
	{Name: "Forgeron", Color: ColorGreen, Points: 2, Combo: FaceCount(4, 3), Copies: 1},
	{Name: "Pêcheur", Color: ColorBlue, Points: 2, Combo: Faces(map[int]int{1: 2, 3: 2}), Copies: 1},
	{Name: "Alchimiste", Color: ColorGreen, Points: 2, Combo: FaceCount(2, 3), Effect: EffectExtraRoll, Copies: 1},
	{Name: "Moine", Color: ColorRed, Points: 3, Combo: FaceCount(1, 4), Copies: 1},
	{Name: "Paysan", Color: ColorGreen, Points: 1, Combo: Faces(map[int]int{3: 2, 4: 1}), VariablePoints: true, Copies: 3},
	{Name: "Barde", Color: ColorBlue, Points: 1, Combo: Faces(map[int]int{2: 1, 6: 1}), Effect: EffectExtraRoll, Copies: 1},
	{Name: "Apothicaire", Color: ColorGreen, Points: 2, Combo: FaceCount(5, 3), Copies: 1},
	{Name: "Charpentier", Color: ColorRed, Points: 1, Combo: Faces(map[int]int{2: 2, 4: 1}), Copies: 1},
	{Name: "Messager", Color: ColorRed, Points: 2, Combo: Straight(4), Effect: EffectExtraTurn, Copies: 1},
	{Name: "Artisan", Color: ColorBlue, Points: 2, Combo: FaceCount(3, 3), Copies: 1},
	{Name: "Jardinier", Color: ColorGreen, Points: 1, Combo: Faces(map[int]int{4: 2, 1: 1}), Copies: 1},
	{Name: "Cuisinier", Color: ColorRed, Points: 1, Combo: SumAtMost(14), Copies: 1},
	{Name: "Écuyer", Color: ColorRed, Points: 1, Combo: Faces(map[int]int{6: 2, 5: 1}), Copies: 1},
	{Name: "Scribe", Color: ColorBlue, Points: 2, Combo: SameParity(), Copies: 1},
	{Name: "Guerrier", Color: ColorGreen, Points: 2, Combo: Groups(3, 2), Copies: 1},
	{Name: "Sorcière", Color: ColorRed, Points: 1, Combo: Faces(map[int]int{5: 1, 1: 1, 6: 1}), Effect: EffectExtraCardDraw, Copies: 1},
	{Name: "Géant", Color: ColorBlue, Points: 2, Combo: SumAtLeast(27), Copies: 1},
	{Name: "Héraut", Color: ColorGreen, Points: 2, Combo: Rainbow(), Effect: EffectExtraTurn, Copies: 1},
	{Name: "Capitaine", Color: ColorRed, Points: 3, Combo: All(ColorCount(ColorRed, 2, 5), SumAtLeast(22)), Copies: 1},
}

var locationTable = []LocationDef{
	{Name: "Château", Color: ColorRed},
	{Name: "Forge", Color: ColorGreen},
	{Name: "Port", Color: ColorBlue},
	{Name: "Abbaye", Color: ColorRed},
	{Name: "Jardin Royal", Color: ColorGreen},
	{Name: "Académie", Color: ColorBlue},
}

var penaltyTable = []PenaltyDef{
	{Name: "Inondation", Penalty: 1, Copies: 1},
	{Name: "Peste", Penalty: 2, Copies: 1},
	{Name: "Sécheresse", Penalty: 1, Copies: 1},
	{Name: "Tempête", Penalty: 2, Copies: 1},
	{Name: "Famine", Penalty: 3, Copies: 1},
	{Name: "Épidémie", Penalty: 2, Copies: 1},
	{Name: "Éruption", Penalty: 3, Copies: 1},
	{Name: "Raid Barbare", Penalty: 2, Copies: 1},
	{Name: DragonName, Penalty: 3, Transferable: true, Copies: 2},
}

// Habitants returns a copy of the habitant definition table.
func Habitants() []HabitantDef {
	out := make([]HabitantDef, len(habitantTable))
	copy(out, habitantTable)
	return out
}

// Locations returns a copy of the location definition table.
func Locations() []LocationDef {
	out := make([]LocationDef, len(locationTable))
	copy(out, locationTable)
	return out
}

// Penalties returns a copy of the penalty definition table.
func Penalties() []PenaltyDef {
	out := make([]PenaltyDef, len(penaltyTable))
	copy(out, penaltyTable)
	return out
}

// cardKey normalizes a card name so composed and decomposed accents match.
func cardKey(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// LookupHabitant resolves a habitant definition by name.
func LookupHabitant(name string) (HabitantDef, bool) {
	return findHabitant(habitantTable, name)
}

// LookupLocation resolves a location definition by name.
func LookupLocation(name string) (LocationDef, bool) {
	return findLocation(locationTable, name)
}

// LookupPenalty resolves a penalty definition by name.
func LookupPenalty(name string) (PenaltyDef, bool) {
	return findPenalty(penaltyTable, name)
}

func findHabitant(defs []HabitantDef, name string) (HabitantDef, bool) {
	key := cardKey(name)
	for _, d := range defs {
		if cardKey(d.Name) == key {
			return d, true
		}
	}
	return HabitantDef{}, false
}

func findLocation(defs []LocationDef, name string) (LocationDef, bool) {
	key := cardKey(name)
	for _, d := range defs {
		if cardKey(d.Name) == key {
			return d, true
		}
	}
	return LocationDef{}, false
}

func findPenalty(defs []PenaltyDef, name string) (PenaltyDef, bool) {
	key := cardKey(name)
	for _, d := range defs {
		if cardKey(d.Name) == key {
			return d, true
		}
	}
	return PenaltyDef{}, false
}

// BuildHabitants expands definitions into cards, honoring Copies.
func BuildHabitants(defs []HabitantDef) []Card {
	var cards []Card
	for _, d := range defs {
		for i := 0; i < max(d.Copies, 1); i++ {
			cards = append(cards, d.Card())
		}
	}
	return cards
}

// BuildPenalties expands definitions into cards, honoring Copies.
func BuildPenalties(defs []PenaltyDef) []Card {
	var cards []Card
	for _, d := range defs {
		for i := 0; i < max(d.Copies, 1); i++ {
			cards = append(cards, d.Card())
		}
	}
	return cards
}
