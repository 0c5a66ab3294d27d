package lobby

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrStarted      = errors.New("game already started")
	ErrNotStarted   = errors.New("game not started")
	ErrPlayerCount  = errors.New("invalid player count")
	ErrSeat         = errors.New("invalid seat")
	ErrNameRequired = errors.New("player name required")
)

const maxNameLen = 24

// PlayerInfo holds a seat at the table before the match is built.
type PlayerInfo struct {
	Seat int
	Name string
}

// Lobby is a hot-seat table being set up: how many players sit at it and
// what they are called. One device plays for everyone.
type Lobby struct {
	mu         sync.Mutex
	ID         string
	Players    []*PlayerInfo
	MaxPlayers int
	MinPlayers int
	Started    bool
}

// NewLobby creates a table with the minimum number of seats.
func NewLobby(id string) *Lobby {
	l := &Lobby{
		ID:         id,
		MaxPlayers: 4,
		MinPlayers: 2,
	}
	l.resize(l.MinPlayers)
	return l
}

func defaultName(seat int) string {
	return fmt.Sprintf("Joueur %d", seat)
}

func (l *Lobby) resize(n int) {
	for len(l.Players) < n {
		seat := len(l.Players) + 1
		l.Players = append(l.Players, &PlayerInfo{Seat: seat, Name: defaultName(seat)})
	}
	l.Players = l.Players[:n]
}

// SetPlayerCount picks how many seats are in play. Existing names are kept.
func (l *Lobby) SetPlayerCount(n int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return ErrStarted
	}
	if n < l.MinPlayers || n > l.MaxPlayers {
		return fmt.Errorf("%w: %d, want %d-%d", ErrPlayerCount, n, l.MinPlayers, l.MaxPlayers)
	}
	l.resize(n)
	return nil
}

// SetName renames a seat.
func (l *Lobby) SetName(seat int, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return ErrStarted
	}
	if seat < 1 || seat > len(l.Players) {
		return fmt.Errorf("%w: %d", ErrSeat, seat)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameRequired
	}
	if len([]rune(name)) > maxNameLen {
		name = string([]rune(name)[:maxNameLen])
	}
	l.Players[seat-1].Name = name
	return nil
}

// Start marks the table as playing.
func (l *Lobby) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return ErrStarted
	}
	if len(l.Players) < l.MinPlayers {
		return ErrPlayerCount
	}
	l.Started = true
	return nil
}

// Seat replaces the seats, as when a saved match is loaded, and marks the
// table as playing.
func (l *Lobby) Seat(names []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.Players = nil
	for i, name := range names {
		l.Players = append(l.Players, &PlayerInfo{Seat: i + 1, Name: name})
	}
	l.Started = true
}

// Reset returns the table to setup, keeping its seats.
func (l *Lobby) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Started = false
}

func (l *Lobby) IsStarted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Started
}

// GetPlayers returns a copy of the player list.
func (l *Lobby) GetPlayers() []PlayerInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]PlayerInfo, len(l.Players))
	for i, p := range l.Players {
		out[i] = *p
	}
	return out
}
