package engine

// ScoreEntry holds the scoring breakdown for one seat.
type ScoreEntry struct {
	Seat          int    `json:"seat"`
	PlayerName    string `json:"player_name"`
	HabitantScore int    `json:"habitant_score"`
	LocationScore int    `json:"location_score"`
	PenaltyScore  int    `json:"penalty_score"` // zero or negative
	Total         int    `json:"total"`

	// PenaltyMagnitude is the sum of penalty values, the tie-breaker.
	PenaltyMagnitude int `json:"penalty_magnitude"`
}

// ScoreKingdom scores a kingdom without touching any state.
func ScoreKingdom(kingdom []Card) ScoreEntry {
	var e ScoreEntry
	for _, c := range kingdom {
		pts := c.CalculatePoints(kingdom)
		switch c.Kind {
		case KindHabitant:
			e.HabitantScore += pts
		case KindLocation:
			e.LocationScore += pts
		case KindPenalty:
			e.PenaltyScore += pts
			e.PenaltyMagnitude += c.Penalty
		}
	}
	e.Total = e.HabitantScore + e.LocationScore + e.PenaltyScore
	return e
}

// CalculateScores scores every seat. It may be called at any time.
func (g *Game) CalculateScores() []ScoreEntry {
	entries := make([]ScoreEntry, len(g.Players))
	for i, p := range g.Players {
		e := ScoreKingdom(p.Kingdom)
		e.Seat = p.Seat
		e.PlayerName = p.Name
		entries[i] = e
	}
	return entries
}

// Winners returns the seats with the highest total. Ties go to the lowest
// penalty magnitude; seats still tied are co-winners.
func Winners(entries []ScoreEntry) []int {
	if len(entries) == 0 {
		return nil
	}
	best := entries[0]
	for _, e := range entries[1:] {
		if e.Total > best.Total || (e.Total == best.Total && e.PenaltyMagnitude < best.PenaltyMagnitude) {
			best = e
		}
	}
	var seats []int
	for _, e := range entries {
		if e.Total == best.Total && e.PenaltyMagnitude == best.PenaltyMagnitude {
			seats = append(seats, e.Seat)
		}
	}
	return seats
}

// Winners returns the winning seats for the current kingdoms.
func (g *Game) Winners() []int {
	return Winners(g.CalculateScores())
}
