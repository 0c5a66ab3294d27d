package engine

// RollDice rolls every die not listed in locks. Locks are ignored on the
// first roll of a turn, when no die has a value yet.
func (g *Game) RollDice(locks []int) ([]int, error) {
	switch {
	case g.Phase == PhaseGameOver:
		return nil, ErrGameOver
	case g.Phase.validated():
		return nil, ErrAlreadyResolved
	case g.RollsLeft <= 0:
		return nil, ErrNoRollsLeft
	}

	g.Dice.UnlockAll()
	if g.Phase == PhaseRolled {
		for _, i := range locks {
			g.Dice.Lock(i)
		}
	}
	values := g.Dice.RollAll()
	g.RollsLeft--
	g.Phase = PhaseRolled
	return values, nil
}

// ToggleLock flips the lock of die i between rolls.
func (g *Game) ToggleLock(i int) error {
	if err := g.requireRolled(); err != nil {
		return err
	}
	g.Dice.Toggle(i)
	return nil
}

func (g *Game) requireRolled() error {
	switch {
	case g.Phase == PhaseGameOver:
		return ErrGameOver
	case g.Phase.validated():
		return ErrAlreadyResolved
	case g.Phase != PhaseRolled:
		return ErrNotRolled
	}
	return nil
}

// TransferPenalty moves the current player's newest transferable penalty
// to the target seat.
func (g *Game) TransferPenalty(target int) error {
	_, err := g.transferPenalty(target)
	return err
}

func (g *Game) transferPenalty(target int) (Card, error) {
	if g.Phase == PhaseGameOver {
		return Card{}, ErrGameOver
	}
	if !g.Pending.TransferPenalty {
		return Card{}, ErrNotEligible
	}
	to := g.Player(target)
	if to == nil || target == g.Current {
		return Card{}, ErrInvalidTarget
	}
	from := g.CurrentPlayer()
	idx := from.lastTransferable()
	if idx < 0 {
		return Card{}, ErrNoTransferable
	}

	card := from.removeAt(idx)
	to.Kingdom = append(to.Kingdom, card)
	g.Pending.TransferPenalty = false
	if g.Phase == PhaseResolved {
		g.Phase = PhaseAwaitingNextPlayer
	}
	return card, nil
}

// TransferTargets lists the seats a pending penalty may be handed to.
func (g *Game) TransferTargets() []int {
	if !g.Pending.TransferPenalty || g.Phase == PhaseGameOver {
		return nil
	}
	if g.CurrentPlayer().lastTransferable() < 0 {
		return nil
	}
	var seats []int
	for _, p := range g.Players {
		if p.Seat != g.Current {
			seats = append(seats, p.Seat)
		}
	}
	return seats
}

// NextPlayer passes the turn, or restarts it for the same seat when an
// extra turn is pending.
func (g *Game) NextPlayer() error {
	switch {
	case g.Phase == PhaseGameOver:
		return ErrGameOver
	case !g.Phase.validated():
		return ErrNotResolved
	}
	if !g.Pending.ExtraTurn {
		g.Current = g.Current%len(g.Players) + 1
	}
	g.Pending = PendingEffects{}
	g.startTurn()
	return nil
}

func (g *Game) startTurn() {
	p := g.CurrentPlayer()
	g.RollsLeft = g.Config.BaseRolls + p.BonusRolls
	p.BonusRolls = 0
	g.Dice.Clear()
	g.Phase = PhaseAwaitingRoll
	g.Turn++
}
