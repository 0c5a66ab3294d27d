package lobby

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewLobbyDefaults(t *testing.T) {
	l := NewLobby("t1")
	players := l.GetPlayers()
	if len(players) != 2 {
		t.Fatalf("expected 2 seats, got %d", len(players))
	}
	if players[1].Seat != 2 || players[1].Name != "Joueur 2" {
		t.Errorf("unexpected seat 2: %+v", players[1])
	}
}

func TestSetPlayerCount(t *testing.T) {
	l := NewLobby("t1")
	if err := l.SetName(1, "Ada"); err != nil {
		t.Fatal(err)
	}
	if err := l.SetPlayerCount(4); err != nil {
		t.Fatal(err)
	}
	players := l.GetPlayers()
	if len(players) != 4 || players[0].Name != "Ada" || players[3].Name != "Joueur 4" {
		t.Fatalf("unexpected seats: %+v", players)
	}
	if err := l.SetPlayerCount(3); err != nil {
		t.Fatal(err)
	}
	if got := len(l.GetPlayers()); got != 3 {
		t.Fatalf("expected 3 seats, got %d", got)
	}
	for _, n := range []int{1, 5} {
		if err := l.SetPlayerCount(n); !errors.Is(err, ErrPlayerCount) {
			t.Errorf("count %d: got %v, want ErrPlayerCount", n, err)
		}
	}
}

func TestSetName(t *testing.T) {
	l := NewLobby("t1")
	if err := l.SetName(3, "X"); !errors.Is(err, ErrSeat) {
		t.Errorf("seat 3: got %v, want ErrSeat", err)
	}
	if err := l.SetName(1, "   "); !errors.Is(err, ErrNameRequired) {
		t.Errorf("blank name: got %v, want ErrNameRequired", err)
	}
	if err := l.SetName(2, "  Blaise  "); err != nil {
		t.Fatal(err)
	}
	if got := l.GetPlayers()[1].Name; got != "Blaise" {
		t.Errorf("name: got %q", got)
	}
}

func TestStartAndReset(t *testing.T) {
	l := NewLobby("t1")
	if err := l.Start(); err != nil {
		t.Fatal(err)
	}
	if err := l.Start(); !errors.Is(err, ErrStarted) {
		t.Errorf("second start: got %v", err)
	}
	if err := l.SetPlayerCount(3); !errors.Is(err, ErrStarted) {
		t.Errorf("resize while playing: got %v", err)
	}
	l.Reset()
	if l.IsStarted() {
		t.Fatal("reset table should be in setup")
	}
	if err := l.SetPlayerCount(3); err != nil {
		t.Fatal(err)
	}
}

func TestSeat(t *testing.T) {
	l := NewLobby("t1")
	l.Seat([]string{"A", "B", "C"})
	players := l.GetPlayers()
	if len(players) != 3 || players[2].Seat != 3 || !l.IsStarted() {
		t.Fatalf("unexpected table after seat: %+v", players)
	}
}

func TestManager(t *testing.T) {
	m := NewManager()
	id := m.Create()
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("table id %q is not a uuid: %v", id, err)
	}
	if m.Get(id) == nil {
		t.Fatal("created table not found")
	}
	if ids := m.IDs(); len(ids) != 1 || ids[0] != id {
		t.Fatalf("ids: %v", ids)
	}
	m.Remove(id)
	if m.Get(id) != nil {
		t.Fatal("removed table still present")
	}
}
