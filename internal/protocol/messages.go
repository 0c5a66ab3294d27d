package protocol

// Message types: Server → Client
const (
	MsgTableUpdate = "table_update"
	MsgGameState   = "game_state"
	MsgEvent       = "event"
	MsgSaved       = "saved"
	MsgSaveList    = "save_list"
	MsgLoaded      = "loaded"
	MsgError       = "error"
)

// Message types: Client → Server
const (
	MsgSetup      = "setup"
	MsgStartGame  = "start_game"
	MsgReset      = "reset"
	MsgNewGame    = "new_game"
	MsgSave       = "save"
	MsgLoad       = "load"
	MsgListSaves  = "list_saves"
	MsgDeleteSave = "delete_save"
	// In-game actions use the same names as engine ActionType
	MsgRoll            = "roll"
	MsgToggleLock      = "toggle_lock"
	MsgValidate        = "validate"
	MsgTransferPenalty = "transfer_penalty"
	MsgNextPlayer      = "next_player"
)

// TableUpdate is sent to all clients when the table setup changes.
type TableUpdate struct {
	TableID string        `json:"table_id"`
	Players []TablePlayer `json:"players"`
	Started bool          `json:"started"`
	// Controller is false for spectator connections.
	Controller bool `json:"controller"`
}

type TablePlayer struct {
	Seat int    `json:"seat"`
	Name string `json:"name"`
}

// SetupMsg picks the number of players and, optionally, their names.
type SetupMsg struct {
	PlayerCount int      `json:"player_count" mapstructure:"player_count"`
	Names       []string `json:"names,omitempty" mapstructure:"names"`
}

// SaveMsg names a save for save, load and delete_save. An empty name on
// save means a timestamped default.
type SaveMsg struct {
	Name string `json:"name" mapstructure:"name"`
}

// SaveInfo describes one stored save.
type SaveInfo struct {
	Name    string `json:"name"`
	SavedAt string `json:"saved_at"`
	Players int    `json:"players"`
	Turn    int    `json:"turn"`
}

// SaveList answers list_saves, newest first.
type SaveList struct {
	Saves []SaveInfo `json:"saves"`
}

// ErrorMsg is sent to a client on error.
type ErrorMsg struct {
	Message string `json:"message"`
	// Illegal is set when the engine refused a move; the state is unchanged.
	Illegal bool `json:"illegal,omitempty"`
}
