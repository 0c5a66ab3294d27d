package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roicompagnie/internal/engine"
)

func habitants(t *testing.T, names ...string) []engine.HabitantDef {
	t.Helper()
	var defs []engine.HabitantDef
	for _, n := range names {
		d, ok := engine.LookupHabitant(n)
		require.True(t, ok, "habitant %s", n)
		d.Copies = 1
		defs = append(defs, d)
	}
	return defs
}

func location(t *testing.T, name string) engine.LocationDef {
	t.Helper()
	d, ok := engine.LookupLocation(name)
	require.True(t, ok, "location %s", name)
	return d
}

func TestRecruitReplacesSlot(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Locations = []engine.LocationDef{location(t, "Port")}
	g, src := newTestGame(t, 2, cfg)

	src.push(6, 6, 6, 2, 3, 5)
	_, err := g.RollDice(nil)
	require.NoError(t, err)

	out, err := g.RecruitOrPenalize()
	require.NoError(t, err)
	assert.False(t, out.Penalty)
	require.NotNil(t, out.Card)
	assert.Equal(t, "Chevalier", out.Card.Name)
	assert.Equal(t, 0, out.Slot)
	assert.Nil(t, out.Location, "no red pile in play")

	assert.Len(t, g.Players[0].Kingdom, 1)
	require.NotNil(t, g.Window[0])
	assert.Equal(t, "Moine", g.Window[0].Name)
	assert.Len(t, g.Window, 5)
	assert.Equal(t, engine.PhaseAwaitingNextPlayer, g.Phase)
}

func TestRecruitAwardsLocation(t *testing.T) {
	g, src := newTestGame(t, 2, engine.DefaultConfig())
	src.push(6, 6, 6, 2, 3, 5)
	g.RollDice(nil)

	out, err := g.RecruitOrPenalize()
	require.NoError(t, err)
	require.NotNil(t, out.Location)
	assert.Equal(t, "Château", out.Location.Name)
	assert.Equal(t, 2, out.Location.Tier)
	assert.Equal(t, 5, g.Piles[0].Len())
	assert.Equal(t, 4, engine.ScoreKingdom(g.Players[0].Kingdom).Total)
}

func TestFirstMatchWins(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Habitants = habitants(t, "Cuisinier", "Chevalier", "Moine", "Forgeron", "Artisan", "Géant", "Scribe")
	g, src := newTestGame(t, 2, cfg)

	// Cuisinier and Moine both match; the leftmost wins.
	src.push(1, 1, 1, 1, 6, 1)
	g.RollDice(nil)
	out, err := g.RecruitOrPenalize()
	require.NoError(t, err)
	assert.Equal(t, "Cuisinier", out.Card.Name)
	assert.Equal(t, 0, out.Slot)
}

func TestPenaltySlidesWindow(t *testing.T) {
	g, src := newTestGame(t, 2, engine.DefaultConfig())
	before := make([]string, len(g.Window))
	for i, c := range g.Window {
		before[i] = c.Name
	}

	src.push(noMatch...)
	g.RollDice(nil)
	out, err := g.RecruitOrPenalize()
	require.NoError(t, err)

	assert.True(t, out.Penalty)
	require.NotNil(t, out.Card)
	assert.Equal(t, engine.KindPenalty, out.Card.Kind)
	assert.Equal(t, []engine.Card{*out.Card}, g.Players[0].Kingdom)

	require.Len(t, g.Window, 5)
	assert.Equal(t, "Moine", g.Window[0].Name)
	for i := 1; i < 5; i++ {
		assert.Equal(t, before[i-1], g.Window[i].Name)
	}
	assert.Equal(t, 1, g.Habitants.DiscardLen())
	assert.Equal(t, before[4], g.Habitants.DiscardCards()[0].Name)
}

func TestGameOverWhenHabitantsRunOut(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Habitants = habitants(t, "Chevalier", "Marchand", "Forgeron", "Pêcheur", "Alchimiste", "Moine")
	g, src := newTestGame(t, 2, cfg)
	require.False(t, g.IsGameOver())

	src.push(6, 6, 6, 2, 3, 5)
	g.RollDice(nil)
	_, err := g.RecruitOrPenalize()
	require.NoError(t, err)

	assert.True(t, g.IsGameOver())
	assert.Equal(t, engine.PhaseGameOver, g.Phase)

	scores := g.CalculateScores()
	require.Len(t, scores, 2)
	assert.Equal(t, 4, scores[0].Total)
	assert.Equal(t, 0, scores[1].Total)
	assert.Equal(t, []int{1}, g.Winners())
	assert.Equal(t, scores, g.Scores)

	_, err = g.RollDice(nil)
	assert.ErrorIs(t, err, engine.ErrGameOver)
	assert.ErrorIs(t, err, engine.ErrIllegalAction)
	_, err = g.RecruitOrPenalize()
	assert.ErrorIs(t, err, engine.ErrGameOver)
	assert.ErrorIs(t, g.NextPlayer(), engine.ErrGameOver)
	assert.Equal(t, scores, g.CalculateScores())
}

func TestGameOverWhenPileRunsOut(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.LocationTiers = []int{2}
	cfg.LocationCopies = 1
	g, src := newTestGame(t, 2, cfg)

	src.push(6, 6, 6, 2, 3, 5)
	g.RollDice(nil)
	out, err := g.RecruitOrPenalize()
	require.NoError(t, err)
	require.NotNil(t, out.Location)
	assert.True(t, g.Piles[0].Empty())
	assert.Equal(t, engine.PhaseGameOver, g.Phase)
}

func TestTransferDragon(t *testing.T) {
	cfg := engine.DefaultConfig()
	dragon, _ := engine.LookupPenalty(engine.DragonName)
	peste, _ := engine.LookupPenalty("Peste")
	cfg.Penalties = []engine.PenaltyDef{dragon, peste}
	g, src := newTestGame(t, 2, cfg)

	src.push(noMatch...)
	g.RollDice(nil)
	out, err := g.RecruitOrPenalize()
	require.NoError(t, err)
	require.NotNil(t, out.Card)
	assert.Equal(t, engine.DragonName, out.Card.Name)
	assert.True(t, g.Pending.TransferPenalty)
	assert.Equal(t, engine.PhaseResolved, g.Phase)
	assert.Equal(t, []int{2}, g.TransferTargets())

	assert.ErrorIs(t, g.TransferPenalty(1), engine.ErrInvalidTarget)
	assert.ErrorIs(t, g.TransferPenalty(3), engine.ErrInvalidTarget)

	require.NoError(t, g.TransferPenalty(2))
	assert.Empty(t, g.Players[0].Kingdom)
	require.Len(t, g.Players[1].Kingdom, 1)
	assert.Equal(t, engine.DragonName, g.Players[1].Kingdom[0].Name)
	assert.False(t, g.Pending.TransferPenalty)
	assert.Equal(t, engine.PhaseAwaitingNextPlayer, g.Phase)

	snap := g.Snapshot()
	err = g.TransferPenalty(2)
	assert.ErrorIs(t, err, engine.ErrNotEligible)
	assert.Equal(t, snap, g.Snapshot())
}

func TestTransferFlagClearedByNextPlayer(t *testing.T) {
	cfg := engine.DefaultConfig()
	dragon, _ := engine.LookupPenalty(engine.DragonName)
	cfg.Penalties = []engine.PenaltyDef{dragon}
	g, src := newTestGame(t, 2, cfg)

	src.push(noMatch...)
	g.RollDice(nil)
	g.RecruitOrPenalize()
	require.True(t, g.Pending.TransferPenalty)

	require.NoError(t, g.NextPlayer())
	assert.False(t, g.Pending.TransferPenalty)
	assert.ErrorIs(t, g.TransferPenalty(1), engine.ErrNotEligible)
	assert.Len(t, g.Players[0].Kingdom, 1)
}

func TestExtraTurn(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Habitants = habitants(t, "Messager", "Forgeron", "Moine", "Artisan", "Géant", "Chevalier", "Pêcheur", "Écuyer", "Jardinier")
	g, src := newTestGame(t, 2, cfg)

	src.push(1, 2, 3, 4, 6, 6)
	g.RollDice(nil)
	out, err := g.RecruitOrPenalize()
	require.NoError(t, err)
	assert.Equal(t, engine.EffectExtraTurn, out.Effect)
	assert.True(t, g.Pending.ExtraTurn)

	require.NoError(t, g.NextPlayer())
	assert.Equal(t, 1, g.Current)
	assert.False(t, g.Pending.ExtraTurn)
	assert.Equal(t, 3, g.RollsLeft)

	src.push(1, 1, 2, 2, 3, 5)
	g.RollDice(nil)
	g.RecruitOrPenalize()
	require.NoError(t, g.NextPlayer())
	assert.Equal(t, 2, g.Current)
}

func TestExtraRoll(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Habitants = habitants(t, "Alchimiste", "Forgeron", "Moine", "Artisan", "Géant", "Chevalier", "Pêcheur", "Cuisinier")
	g, src := newTestGame(t, 2, cfg)

	src.push(2, 2, 2, 5, 6, 1)
	g.RollDice(nil)
	out, err := g.RecruitOrPenalize()
	require.NoError(t, err)
	assert.Equal(t, engine.EffectExtraRoll, out.Effect)
	assert.Equal(t, 1, g.Players[0].BonusRolls)

	require.NoError(t, g.NextPlayer())
	assert.Equal(t, 3, g.RollsLeft, "bonus belongs to seat 1")

	src.push(1, 1, 2, 2, 3, 5)
	g.RollDice(nil)
	g.RecruitOrPenalize()
	require.NoError(t, g.NextPlayer())
	assert.Equal(t, 1, g.Current)
	assert.Equal(t, 4, g.RollsLeft)
	assert.Zero(t, g.Players[0].BonusRolls)
}

func TestExtraCardTakesNeighbor(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Habitants = habitants(t, "Marchand", "Forgeron", "Moine", "Artisan", "Géant", "Chevalier", "Pêcheur", "Cuisinier")
	g, src := newTestGame(t, 2, cfg)

	src.push(5, 5, 2, 1, 1, 3)
	g.RollDice(nil)
	out, err := g.RecruitOrPenalize()
	require.NoError(t, err)

	require.NotNil(t, out.Bonus)
	assert.Equal(t, "Forgeron", out.Bonus.Name)
	require.NotNil(t, out.Location)
	assert.Equal(t, "Port", out.Location.Name)
	assert.False(t, g.Pending.ExtraCard)

	var names []string
	for _, c := range g.Players[0].Kingdom {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Marchand", "Port", "Forgeron"}, names)
	assert.Equal(t, "Chevalier", g.Window[1].Name)
	assert.Equal(t, "Pêcheur", g.Window[0].Name)
}

func TestExtraCardTakesLeftNeighborAtEdge(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Habitants = habitants(t, "Forgeron", "Moine", "Artisan", "Géant", "Marchand", "Chevalier", "Pêcheur", "Cuisinier")
	g, src := newTestGame(t, 2, cfg)

	src.push(5, 5, 2, 1, 1, 3)
	g.RollDice(nil)
	out, err := g.RecruitOrPenalize()
	require.NoError(t, err)
	assert.Equal(t, 4, out.Slot)
	require.NotNil(t, out.Bonus)
	assert.Equal(t, "Géant", out.Bonus.Name)
}

func TestPublicViewIsPure(t *testing.T) {
	g, src := newTestGame(t, 2, engine.DefaultConfig())
	src.push(6, 6, 6, 2, 3, 5)
	g.RollDice(nil)

	snap := g.Snapshot()
	v1 := g.PublicView()
	v2 := g.PublicView()
	assert.Equal(t, v1, v2)
	assert.Equal(t, snap, g.Snapshot())
	assert.Equal(t, 0, v1.MatchingSlot)
	assert.Equal(t, "3×6", v1.Window[0].Combo)
	assert.Equal(t, g.CalculateScores(), g.CalculateScores())
}
