package engine

// ActionType identifies player actions sent to Game.Apply.
type ActionType string

const (
	ActionRoll            ActionType = "roll"
	ActionToggleLock      ActionType = "toggle_lock"
	ActionValidate        ActionType = "validate"
	ActionTransferPenalty ActionType = "transfer_penalty"
	ActionNextPlayer      ActionType = "next_player"
)

// Action is a player's action input.
type Action struct {
	Type ActionType `json:"type"`
	// roll: dice indices to keep
	Locks []int `json:"locks,omitempty"`
	// toggle_lock: die index
	Index int `json:"index,omitempty"`
	// transfer_penalty: target seat
	Target int `json:"target,omitempty"`
}

// EventType identifies events emitted by the engine.
type EventType string

const (
	EventTurnStart          EventType = "turn_start"
	EventDiceRolled         EventType = "dice_rolled"
	EventLockToggled        EventType = "lock_toggled"
	EventRecruited          EventType = "recruited"
	EventLocationAwarded    EventType = "location_awarded"
	EventBonusCard          EventType = "bonus_card"
	EventEffectTriggered    EventType = "effect_triggered"
	EventPenalized          EventType = "penalized"
	EventWindowSlid         EventType = "window_slid"
	EventPenaltyTransferred EventType = "penalty_transferred"
	EventTurnEnd            EventType = "turn_end"
	EventGameOver           EventType = "game_over"
	EventPhaseChange        EventType = "phase_change"
)

// Event is emitted by the engine after state changes.
type Event struct {
	Type EventType   `json:"type"`
	Seat int         `json:"seat,omitempty"`
	Data interface{} `json:"data,omitempty"`
}

func phaseEvent(p Phase) Event {
	return Event{Type: EventPhaseChange, Data: map[string]interface{}{"phase": p.String()}}
}
