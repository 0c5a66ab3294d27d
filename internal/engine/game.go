package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalAction is wrapped by every rejection of a turn action.
	ErrIllegalAction = errors.New("illegal action")

	ErrNoRollsLeft     = fmt.Errorf("%w: no rolls left this turn", ErrIllegalAction)
	ErrNotRolled       = fmt.Errorf("%w: dice have not been rolled", ErrIllegalAction)
	ErrAlreadyResolved = fmt.Errorf("%w: turn already validated", ErrIllegalAction)
	ErrNotResolved     = fmt.Errorf("%w: turn not validated yet", ErrIllegalAction)
	ErrGameOver        = fmt.Errorf("%w: game is over", ErrIllegalAction)
	ErrNotEligible     = fmt.Errorf("%w: no penalty transfer pending", ErrIllegalAction)
	ErrInvalidTarget   = fmt.Errorf("%w: invalid target player", ErrIllegalAction)
	ErrNoTransferable  = fmt.Errorf("%w: no transferable penalty in kingdom", ErrIllegalAction)
	ErrInvalidAction   = fmt.Errorf("%w: unknown action", ErrIllegalAction)

	ErrInvalidConfig = errors.New("invalid game config")
	ErrCorruptSave   = errors.New("corrupt save")
)

// PendingEffects are the one-shot flags set during a resolution.
type PendingEffects struct {
	ExtraTurn       bool `json:"extra_turn"`
	ExtraCard       bool `json:"extra_card"`
	TransferPenalty bool `json:"transfer_penalty"`
}

// Game holds the entire match state. It is not safe for concurrent use.
type Game struct {
	Players []*Player       `json:"players"`
	Config  GameConfig      `json:"-"`
	Effects *EffectRegistry `json:"-"`

	Habitants   *Deck           `json:"-"`
	PenaltyDeck *Deck           `json:"-"`
	Piles       []*LocationPile `json:"-"`
	Dice        *DiceSet        `json:"-"`

	// Window is the row of visible habitants; nil marks an empty slot.
	Window []*Card `json:"window"`

	Current   int            `json:"current"` // seat, 1-based
	Turn      int            `json:"turn"`
	Phase     Phase          `json:"phase"`
	RollsLeft int            `json:"rolls_left"`
	Pending   PendingEffects `json:"pending"`

	Scores []ScoreEntry `json:"scores,omitempty"`
}

// NewGame creates a match with fresh shuffled decks and seat 1 to play.
// A nil effect registry disables habitant effects.
func NewGame(players []*Player, config GameConfig, effects *EffectRegistry) (*Game, error) {
	if err := config.Validate(len(players)); err != nil {
		return nil, err
	}
	for i, p := range players {
		p.Seat = i + 1
		p.Kingdom = nil
		p.BonusRolls = 0
	}

	src := config.source()
	g := &Game{
		Players:     players,
		Config:      config,
		Effects:     effects,
		Habitants:   NewDeck(BuildHabitants(config.Habitants), config.HabitantPolicy, src),
		PenaltyDeck: NewDeck(BuildPenalties(config.Penalties), config.PenaltyPolicy, src),
		Dice:        NewDiceSet(config.DiceColors, src),
		Window:      make([]*Card, config.WindowSize),
		Current:     1,
	}
	g.Habitants.Shuffle()
	g.PenaltyDeck.Shuffle()
	for _, def := range config.Locations {
		g.Piles = append(g.Piles, NewLocationPile(def, config.LocationTiers, config.LocationCopies))
	}
	for i := range g.Window {
		g.Window[i] = g.drawHabitant()
	}

	g.startTurn()
	if g.IsGameOver() {
		g.endGame(nil)
	}
	return g, nil
}

// Apply is the single entry point for player actions. It always acts for
// the current seat.
func (g *Game) Apply(action Action) ([]Event, error) {
	switch action.Type {
	case ActionRoll:
		return g.applyRoll(action)
	case ActionToggleLock:
		return g.applyToggleLock(action)
	case ActionValidate:
		return g.applyValidate()
	case ActionTransferPenalty:
		return g.applyTransferPenalty(action)
	case ActionNextPlayer:
		return g.applyNextPlayer()
	default:
		return nil, ErrInvalidAction
	}
}

func (g *Game) applyRoll(action Action) ([]Event, error) {
	values, err := g.RollDice(action.Locks)
	if err != nil {
		return nil, err
	}
	return []Event{
		{Type: EventDiceRolled, Seat: g.Current, Data: map[string]interface{}{
			"values":     values,
			"locked":     g.Dice.LockedIndices(),
			"rolls_left": g.RollsLeft,
		}},
		phaseEvent(g.Phase),
	}, nil
}

func (g *Game) applyToggleLock(action Action) ([]Event, error) {
	if err := g.ToggleLock(action.Index); err != nil {
		return nil, err
	}
	return []Event{
		{Type: EventLockToggled, Seat: g.Current, Data: map[string]interface{}{
			"index":  action.Index,
			"locked": g.Dice.LockedIndices(),
		}},
	}, nil
}

func (g *Game) applyValidate() ([]Event, error) {
	if err := g.requireRolled(); err != nil {
		return nil, err
	}
	_, events := g.resolve()
	return events, nil
}

func (g *Game) applyTransferPenalty(action Action) ([]Event, error) {
	from := g.Current
	card, err := g.transferPenalty(action.Target)
	if err != nil {
		return nil, err
	}
	return []Event{
		{Type: EventPenaltyTransferred, Seat: from, Data: map[string]interface{}{
			"card":   card,
			"target": action.Target,
		}},
		phaseEvent(g.Phase),
	}, nil
}

func (g *Game) applyNextPlayer() ([]Event, error) {
	prev := g.Current
	if err := g.NextPlayer(); err != nil {
		return nil, err
	}
	return []Event{
		{Type: EventTurnEnd, Seat: prev},
		{Type: EventTurnStart, Seat: g.Current, Data: map[string]interface{}{
			"turn":       g.Turn,
			"rolls_left": g.RollsLeft,
			"extra_turn": prev == g.Current,
		}},
		phaseEvent(g.Phase),
	}, nil
}

// Player returns the player in the given 1-based seat, or nil.
func (g *Game) Player(seat int) *Player {
	if seat < 1 || seat > len(g.Players) {
		return nil
	}
	return g.Players[seat-1]
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() *Player {
	return g.Player(g.Current)
}

// IsGameOver reports whether a required supply has run out.
func (g *Game) IsGameOver() bool {
	if g.Phase == PhaseGameOver {
		return true
	}
	if g.Habitants.Exhausted() || g.PenaltyDeck.Exhausted() {
		return true
	}
	for _, p := range g.Piles {
		if p.Empty() {
			return true
		}
	}
	return false
}

func (g *Game) endGame(events []Event) []Event {
	g.Phase = PhaseGameOver
	g.Scores = g.CalculateScores()
	events = append(events, Event{
		Type: EventGameOver,
		Data: map[string]interface{}{"scores": g.Scores, "winners": Winners(g.Scores)},
	})
	events = append(events, phaseEvent(PhaseGameOver))
	return events
}

func (g *Game) drawHabitant() *Card {
	c, ok := g.Habitants.Draw()
	if !ok {
		return nil
	}
	return &c
}
