package engine

// PublicViewData is the match state shown to every screen at the table.
type PublicViewData struct {
	Phase     string         `json:"phase"`
	Turn      int            `json:"turn"`
	Current   int            `json:"current"`
	RollsLeft int            `json:"rolls_left"`
	Dice      []Die          `json:"dice"`
	Window    []*WindowCard  `json:"window"`
	Piles     []PileView     `json:"piles"`
	Pending   PendingEffects `json:"pending"`
	Players   []PlayerView   `json:"players"`

	HabitantDeck    int `json:"habitant_deck"`
	HabitantDiscard int `json:"habitant_discard"`
	PenaltyDeck     int `json:"penalty_deck"`

	TransferTargets []int `json:"transfer_targets,omitempty"`
	// MatchingSlot is the slot validation would recruit from, -1 for a penalty.
	MatchingSlot int   `json:"matching_slot"`
	GameOver     bool  `json:"game_over"`
	Winners      []int `json:"winners,omitempty"`
}

// WindowCard is a visible habitant with its combo spelled out.
type WindowCard struct {
	Card
	Combo string `json:"combo"`
}

type PileView struct {
	Name      string `json:"name"`
	Color     Color  `json:"color"`
	Top       *Card  `json:"top,omitempty"`
	Remaining int    `json:"remaining"`
}

type PlayerView struct {
	Seat       int        `json:"seat"`
	Name       string     `json:"name"`
	Kingdom    []Card     `json:"kingdom"`
	BonusRolls int        `json:"bonus_rolls"`
	Score      ScoreEntry `json:"score"`
}

func (g *Game) PublicView() PublicViewData {
	pv := PublicViewData{
		Phase:           g.Phase.String(),
		Turn:            g.Turn,
		Current:         g.Current,
		RollsLeft:       g.RollsLeft,
		Dice:            g.Dice.Dice(),
		Pending:         g.Pending,
		HabitantDeck:    g.Habitants.Len(),
		HabitantDiscard: g.Habitants.DiscardLen(),
		PenaltyDeck:     g.PenaltyDeck.Len(),
		TransferTargets: g.TransferTargets(),
		MatchingSlot:    -1,
		GameOver:        g.Phase == PhaseGameOver,
	}

	for _, c := range g.Window {
		if c == nil {
			pv.Window = append(pv.Window, nil)
			continue
		}
		pv.Window = append(pv.Window, &WindowCard{Card: *c, Combo: c.Combo.String()})
	}

	for _, pile := range g.Piles {
		v := PileView{Name: pile.Name, Color: pile.Color, Remaining: pile.Len()}
		if top, ok := pile.Top(); ok {
			v.Top = &top
		}
		pv.Piles = append(pv.Piles, v)
	}

	scores := g.CalculateScores()
	for i, p := range g.Players {
		pv.Players = append(pv.Players, PlayerView{
			Seat:       p.Seat,
			Name:       p.Name,
			Kingdom:    p.Kingdom,
			BonusRolls: p.BonusRolls,
			Score:      scores[i],
		})
	}

	if g.Phase == PhaseRolled {
		pv.MatchingSlot = g.MatchingSlot(g.Dice.Values(), g.Dice.Colors())
	}
	if pv.GameOver {
		pv.Winners = Winners(scores)
	}
	return pv
}
