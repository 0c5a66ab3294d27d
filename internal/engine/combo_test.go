package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roicompagnie/internal/engine"
)

var sixColors = engine.DefaultDiceColors()

func TestComboPrimitives(t *testing.T) {
	tests := []struct {
		name   string
		combo  engine.Combo
		values []int
		want   bool
	}{
		{"three sixes", engine.FaceCount(6, 3), []int{6, 6, 6, 2, 3, 5}, true},
		{"two sixes", engine.FaceCount(6, 3), []int{6, 6, 1, 2, 3, 5}, false},
		{"faces", engine.Faces(map[int]int{5: 2, 2: 1}), []int{5, 1, 5, 2, 3, 3}, true},
		{"faces missing one", engine.Faces(map[int]int{5: 2, 2: 1}), []int{5, 1, 5, 1, 3, 3}, false},
		{"red high", engine.ColorCount(engine.ColorRed, 2, 5), []int{5, 6, 1, 1, 1, 1}, true},
		{"red low", engine.ColorCount(engine.ColorRed, 2, 5), []int{5, 4, 6, 6, 6, 6}, false},
		{"straight 4", engine.Straight(4), []int{3, 1, 4, 2, 6, 6}, true},
		{"broken straight", engine.Straight(4), []int{1, 2, 3, 5, 6, 6}, false},
		{"all even", engine.SameParity(), []int{2, 4, 6, 2, 4, 6}, true},
		{"all odd", engine.SameParity(), []int{1, 3, 5, 1, 3, 5}, true},
		{"mixed parity", engine.SameParity(), []int{1, 3, 5, 1, 3, 4}, false},
		{"two triples", engine.Groups(2, 3), []int{2, 2, 2, 5, 5, 5}, true},
		{"three pairs", engine.Groups(3, 2), []int{1, 1, 4, 4, 6, 6}, true},
		{"two pairs", engine.Groups(3, 2), []int{1, 1, 4, 4, 6, 5}, false},
		{"sum at most", engine.SumAtMost(14), []int{1, 1, 2, 2, 3, 5}, true},
		{"sum too high", engine.SumAtMost(14), []int{1, 1, 2, 2, 3, 6}, false},
		{"sum at least", engine.SumAtLeast(27), []int{6, 6, 6, 4, 3, 2}, true},
		{"sum too low", engine.SumAtLeast(27), []int{6, 6, 6, 4, 3, 1}, false},
		{"rainbow", engine.Rainbow(), []int{3, 1, 3, 2, 3, 6}, true},
		{"rainbow doubled", engine.Rainbow(), []int{3, 3, 3, 2, 3, 6}, false},
		{"no rainbow", engine.Rainbow(), []int{3, 1, 4, 2, 3, 6}, false},
		{"all", engine.All(engine.ColorCount(engine.ColorRed, 2, 5), engine.SumAtLeast(22)), []int{5, 6, 4, 3, 2, 2}, true},
		{"all fails one", engine.All(engine.ColorCount(engine.ColorRed, 2, 5), engine.SumAtLeast(22)), []int{5, 6, 4, 3, 2, 1}, false},
		{"empty all", engine.All(), []int{1, 1, 1, 1, 1, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.combo.Met(tt.values, sixColors), "%s on %v", tt.combo, tt.values)
		})
	}
}

func TestComboRejectsBadOutcome(t *testing.T) {
	c := engine.SumAtMost(100)
	assert.False(t, c.Met(nil, nil), "empty outcome")
	assert.False(t, c.Met([]int{1, 2}, sixColors), "length mismatch")
	assert.False(t, c.Met([]int{0, 1, 1, 1, 1, 1}, sixColors), "unrolled die")
	assert.False(t, c.Met([]int{7, 1, 1, 1, 1, 1}, sixColors), "out of range die")
}

func TestCatalogCombosAreSatisfiable(t *testing.T) {
	// Every habitant must be recruitable by some roll of the default dice.
	colors := engine.DefaultDiceColors()
	values := make([]int, len(colors))
	found := map[string]bool{}
	var walk func(i int)
	walk = func(i int) {
		if i == len(values) {
			for _, d := range engine.Habitants() {
				if !found[d.Name] && d.Combo.Met(values, colors) {
					found[d.Name] = true
				}
			}
			return
		}
		for v := 1; v <= 6; v++ {
			values[i] = v
			walk(i + 1)
		}
	}
	walk(0)
	for _, d := range engine.Habitants() {
		assert.True(t, found[d.Name], "%s (%s) can never be recruited", d.Name, d.Combo)
	}
}

func TestLookupNormalizesNames(t *testing.T) {
	decomposed := "Pe\u0302cheur"
	d, ok := engine.LookupHabitant(decomposed)
	require.True(t, ok)
	assert.Equal(t, "Pêcheur", d.Name)

	_, ok = engine.LookupPenalty(" Dragon ")
	assert.True(t, ok, "surrounding spaces are trimmed")
	_, ok = engine.LookupLocation("Atlantis")
	assert.False(t, ok)
}

func TestVariablePoints(t *testing.T) {
	paysan, _ := engine.LookupHabitant("Paysan")
	kingdom := []engine.Card{paysan.Card(), paysan.Card(), paysan.Card()}
	assert.Equal(t, 9, kingdom[0].CalculatePoints(kingdom))
	assert.Equal(t, 27, engine.ScoreKingdom(kingdom).HabitantScore)
}

func TestDiceDeterministic(t *testing.T) {
	a := engine.NewDiceSet(engine.DefaultDiceColors(), engine.NewSource(7))
	b := engine.NewDiceSet(engine.DefaultDiceColors(), engine.NewSource(7))
	for i := 0; i < 20; i++ {
		va, vb := a.RollAll(), b.RollAll()
		require.Equal(t, va, vb, "roll %d", i)
		for _, v := range va {
			require.True(t, v >= 1 && v <= 6, "die out of range: %v", va)
		}
	}
	assert.True(t, a.Rolled())
	a.Clear()
	assert.False(t, a.Rolled())
}
