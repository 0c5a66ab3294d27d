package engine

import "fmt"

// Phase is the turn state machine's current state.
type Phase int

const (
	PhaseAwaitingRoll       Phase = iota // turn started, dice not rolled yet
	PhaseRolled                          // at least one roll made, not validated
	PhaseResolved                        // validated, a penalty transfer is still possible
	PhaseAwaitingNextPlayer              // validated, waiting for the turn to pass
	PhaseGameOver                        // a supply ran out; scoring only
)

var phaseNames = map[Phase]string{
	PhaseAwaitingRoll:       "AwaitingRoll",
	PhaseRolled:             "Rolled",
	PhaseResolved:           "Resolved",
	PhaseAwaitingNextPlayer: "AwaitingNextPlayer",
	PhaseGameOver:           "GameOver",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "Unknown"
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, error) {
	for p, name := range phaseNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", s)
}

// validated reports whether the current turn has been resolved.
func (p Phase) validated() bool {
	return p == PhaseResolved || p == PhaseAwaitingNextPlayer
}
