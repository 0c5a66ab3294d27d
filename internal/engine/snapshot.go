package engine

import "fmt"

// SnapshotVersion is bumped when the saved layout changes.
const SnapshotVersion = 1

// CardRecord is the persisted form of a card. Cards are re-resolved by
// name on restore; a record whose other fields disagree with the
// resolved card is rejected.
type CardRecord struct {
	Kind         CardKind `json:"kind"`
	Name         string   `json:"name"`
	Color        Color    `json:"color"`
	Points       int      `json:"points"`
	Tier         int      `json:"tier,omitempty"`
	Penalty      int      `json:"penalty,omitempty"`
	Transferable bool     `json:"transferable,omitempty"`
}

func recordOf(c Card) CardRecord {
	return CardRecord{
		Kind:         c.Kind,
		Name:         c.Name,
		Color:        c.Color,
		Points:       c.Points,
		Tier:         c.Tier,
		Penalty:      c.Penalty,
		Transferable: c.Transferable,
	}
}

func recordsOf(cards []Card) []CardRecord {
	out := make([]CardRecord, len(cards))
	for i, c := range cards {
		out[i] = recordOf(c)
	}
	return out
}

type PlayerRecord struct {
	Seat       int          `json:"seat"`
	Name       string       `json:"name"`
	BonusRolls int          `json:"bonus_rolls"`
	Kingdom    []CardRecord `json:"kingdom"`
}

type DeckRecord struct {
	Policy  string       `json:"policy"`
	Draw    []CardRecord `json:"draw"`
	Discard []CardRecord `json:"discard"`
}

type PileRecord struct {
	Name  string       `json:"name"`
	Color Color        `json:"color"`
	Cards []CardRecord `json:"cards"`
}

// Snapshot is the full persisted state of a match. Dice values and the
// random source are not part of it.
type Snapshot struct {
	Version     int            `json:"version"`
	PlayerCount int            `json:"player_count"`
	Current     int            `json:"current"`
	Turn        int            `json:"turn"`
	Phase       string         `json:"phase"`
	RollsLeft   int            `json:"rolls_left"`
	Pending     PendingEffects `json:"pending"`
	Players     []PlayerRecord `json:"players"`
	Window      []*CardRecord  `json:"window"`
	Habitants   DeckRecord     `json:"habitants"`
	Penalties   DeckRecord     `json:"penalties"`
	Piles       []PileRecord   `json:"piles"`
}

// Snapshot captures the match. A turn in progress is saved as not yet
// rolled, with at least one roll left.
func (g *Game) Snapshot() Snapshot {
	phase, rolls := g.Phase, g.RollsLeft
	if phase == PhaseRolled {
		phase = PhaseAwaitingRoll
		rolls = max(rolls, 1)
	}

	s := Snapshot{
		Version:     SnapshotVersion,
		PlayerCount: len(g.Players),
		Current:     g.Current,
		Turn:        g.Turn,
		Phase:       phase.String(),
		RollsLeft:   rolls,
		Pending:     g.Pending,
		Habitants:   deckRecord(g.Habitants),
		Penalties:   deckRecord(g.PenaltyDeck),
	}
	for _, p := range g.Players {
		s.Players = append(s.Players, PlayerRecord{
			Seat:       p.Seat,
			Name:       p.Name,
			BonusRolls: p.BonusRolls,
			Kingdom:    recordsOf(p.Kingdom),
		})
	}
	for _, c := range g.Window {
		if c == nil {
			s.Window = append(s.Window, nil)
			continue
		}
		rec := recordOf(*c)
		s.Window = append(s.Window, &rec)
	}
	for _, pile := range g.Piles {
		s.Piles = append(s.Piles, PileRecord{Name: pile.Name, Color: pile.Color, Cards: recordsOf(pile.Cards())})
	}
	return s
}

func deckRecord(d *Deck) DeckRecord {
	return DeckRecord{
		Policy:  d.Policy().String(),
		Draw:    recordsOf(d.Cards()),
		Discard: recordsOf(d.DiscardCards()),
	}
}

func corrupt(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrCorruptSave, fmt.Sprintf(format, args...))
}

// Restore rebuilds a match from a snapshot. Card definitions come from
// config; every record is checked before anything is built, and any
// inconsistency fails the whole restore with ErrCorruptSave.
func Restore(s Snapshot, config GameConfig, effects *EffectRegistry) (*Game, error) {
	if s.Version != SnapshotVersion {
		return nil, corrupt("version %d", s.Version)
	}
	if s.PlayerCount < MinPlayers || s.PlayerCount > MaxPlayers || len(s.Players) != s.PlayerCount {
		return nil, corrupt("player count %d with %d players", s.PlayerCount, len(s.Players))
	}
	if err := config.Validate(s.PlayerCount); err != nil {
		return nil, err
	}
	if s.Current < 1 || s.Current > s.PlayerCount {
		return nil, corrupt("current seat %d", s.Current)
	}
	phase, err := ParsePhase(s.Phase)
	if err != nil {
		return nil, corrupt("%v", err)
	}
	if phase == PhaseRolled {
		phase = PhaseAwaitingRoll
	}
	if s.RollsLeft < 0 {
		return nil, corrupt("rolls left %d", s.RollsLeft)
	}
	if len(s.Window) == 0 {
		return nil, corrupt("empty window")
	}
	if len(s.Piles) == 0 {
		return nil, corrupt("no location piles")
	}

	r := resolver{config: config}
	players := make([]*Player, s.PlayerCount)
	for i, pr := range s.Players {
		if pr.Seat != i+1 {
			return nil, corrupt("player %d has seat %d", i+1, pr.Seat)
		}
		if pr.BonusRolls < 0 {
			return nil, corrupt("seat %d bonus rolls %d", pr.Seat, pr.BonusRolls)
		}
		kingdom, err := r.cards(pr.Kingdom, 0)
		if err != nil {
			return nil, fmt.Errorf("seat %d kingdom: %w", pr.Seat, err)
		}
		players[i] = &Player{Seat: pr.Seat, Name: pr.Name, BonusRolls: pr.BonusRolls, Kingdom: kingdom}
	}

	window := make([]*Card, len(s.Window))
	for i, rec := range s.Window {
		if rec == nil {
			continue
		}
		c, err := r.card(*rec, KindHabitant)
		if err != nil {
			return nil, fmt.Errorf("window slot %d: %w", i, err)
		}
		window[i] = &c
	}

	src := config.source()
	habitants, err := r.deck(s.Habitants, KindHabitant, src)
	if err != nil {
		return nil, fmt.Errorf("habitant deck: %w", err)
	}
	penalties, err := r.deck(s.Penalties, KindPenalty, src)
	if err != nil {
		return nil, fmt.Errorf("penalty deck: %w", err)
	}

	var piles []*LocationPile
	for _, pr := range s.Piles {
		def, ok := findLocation(config.Locations, pr.Name)
		if !ok {
			return nil, corrupt("unknown location pile %q", pr.Name)
		}
		cards, err := r.cards(pr.Cards, KindLocation)
		if err != nil {
			return nil, fmt.Errorf("pile %s: %w", def.Name, err)
		}
		for _, c := range cards {
			if c.Name != def.Name {
				return nil, corrupt("card %q in pile %s", c.Name, def.Name)
			}
		}
		piles = append(piles, &LocationPile{Name: def.Name, Color: def.Color, cards: cards})
	}

	config.WindowSize = len(window)
	if err := checkSupply(config, players, window, habitants, penalties, piles); err != nil {
		return nil, err
	}
	g := &Game{
		Players:     players,
		Config:      config,
		Effects:     effects,
		Habitants:   habitants,
		PenaltyDeck: penalties,
		Piles:       piles,
		Dice:        NewDiceSet(config.DiceColors, src),
		Window:      window,
		Current:     s.Current,
		Turn:        s.Turn,
		Phase:       phase,
		RollsLeft:   s.RollsLeft,
		Pending:     s.Pending,
	}
	if g.Phase == PhaseAwaitingRoll && g.RollsLeft < 1 {
		g.RollsLeft = 1
	}
	if g.IsGameOver() {
		g.endGame(nil)
	}
	return g, nil
}

// resolver turns records back into cards using the config's tables.
type resolver struct {
	config GameConfig
}

// card resolves one record; want restricts the kind unless zero.
func (r resolver) card(rec CardRecord, want CardKind) (Card, error) {
	c, err := r.lookup(rec, want)
	if err != nil {
		return Card{}, err
	}
	if rec.Color != c.Color || rec.Points != c.Points || rec.Penalty != c.Penalty || rec.Transferable != c.Transferable {
		return Card{}, corrupt("%s %q does not match its definition", c.Kind, rec.Name)
	}
	return c, nil
}

func (r resolver) lookup(rec CardRecord, want CardKind) (Card, error) {
	if want != 0 && rec.Kind != want {
		return Card{}, corrupt("%q is a %s, want %s", rec.Name, rec.Kind, want)
	}
	switch rec.Kind {
	case KindHabitant:
		def, ok := findHabitant(r.config.Habitants, rec.Name)
		if !ok {
			return Card{}, corrupt("unknown habitant %q", rec.Name)
		}
		return def.Card(), nil
	case KindLocation:
		def, ok := findLocation(r.config.Locations, rec.Name)
		if !ok {
			def, ok = LookupLocation(rec.Name)
		}
		if !ok {
			return Card{}, corrupt("unknown location %q", rec.Name)
		}
		if rec.Tier < 1 {
			return Card{}, corrupt("location %q tier %d", rec.Name, rec.Tier)
		}
		return def.Card(rec.Tier), nil
	case KindPenalty:
		def, ok := findPenalty(r.config.Penalties, rec.Name)
		if !ok {
			return Card{}, corrupt("unknown penalty %q", rec.Name)
		}
		return def.Card(), nil
	}
	return Card{}, corrupt("card %q has no kind", rec.Name)
}

func (r resolver) cards(recs []CardRecord, want CardKind) ([]Card, error) {
	out := make([]Card, 0, len(recs))
	for _, rec := range recs {
		c, err := r.card(rec, want)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r resolver) deck(rec DeckRecord, kind CardKind, src Source) (*Deck, error) {
	var policy DrawPolicy
	switch rec.Policy {
	case PolicyHardStop.String():
		policy = PolicyHardStop
	case PolicyReshuffle.String():
		policy = PolicyReshuffle
	default:
		return nil, corrupt("draw policy %q", rec.Policy)
	}
	draw, err := r.cards(rec.Draw, kind)
	if err != nil {
		return nil, err
	}
	discard, err := r.cards(rec.Discard, kind)
	if err != nil {
		return nil, err
	}
	return restoreDeck(draw, discard, policy, src), nil
}

// checkSupply rejects a save holding more copies of a card than the
// tables deal out. Locations allow the configured copies of each tier.
func checkSupply(config GameConfig, players []*Player, window []*Card, habitants, penalties *Deck, piles []*LocationPile) error {
	limit := make(map[string]int)
	for _, c := range BuildHabitants(config.Habitants) {
		limit[supplyKey(c)]++
	}
	for _, c := range BuildPenalties(config.Penalties) {
		limit[supplyKey(c)]++
	}
	tiers := make(map[int]bool)
	for _, t := range config.LocationTiers {
		tiers[t] = true
	}

	seen := make(map[string]int)
	take := func(cards ...Card) error {
		for _, c := range cards {
			key := supplyKey(c)
			seen[key]++
			allowed := limit[key]
			if c.Kind == KindLocation && tiers[c.Tier] {
				allowed = max(config.LocationCopies, 1)
			}
			if seen[key] > allowed {
				return corrupt("too many copies of %s %q", c.Kind, c.Name)
			}
		}
		return nil
	}

	for _, p := range players {
		if err := take(p.Kingdom...); err != nil {
			return err
		}
	}
	for _, c := range window {
		if c == nil {
			continue
		}
		if err := take(*c); err != nil {
			return err
		}
	}
	for _, d := range []*Deck{habitants, penalties} {
		if err := take(d.Cards()...); err != nil {
			return err
		}
		if err := take(d.DiscardCards()...); err != nil {
			return err
		}
	}
	for _, pile := range piles {
		if err := take(pile.Cards()...); err != nil {
			return err
		}
	}
	return nil
}

func supplyKey(c Card) string {
	return fmt.Sprintf("%s/%s/%d", c.Kind, cardKey(c.Name), c.Tier)
}
