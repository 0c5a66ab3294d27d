package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"roicompagnie/internal/engine"
	"roicompagnie/internal/engine/effects"
	"roicompagnie/internal/lobby"
	"roicompagnie/internal/protocol"
	"roicompagnie/internal/random"
	"roicompagnie/internal/store"
)

var ErrHubClosed = errors.New("table closed")

const defaultStoreTimeout = 5 * time.Second

// TableState is a point-in-time view of a table for HTTP readers.
type TableState struct {
	TableID string                  `json:"table_id"`
	Players []protocol.TablePlayer  `json:"players"`
	Started bool                    `json:"started"`
	Game    *engine.PublicViewData `json:"game,omitempty"`
}

// HubOptions holds what a table needs beyond its lobby.
type HubOptions struct {
	Store        store.Store
	Rules        engine.GameConfig
	Seed         uint64 // 0 draws a fresh seed per match
	StoreTimeout time.Duration
	Logger       *logrus.Entry
}

// Hub manages WebSocket connections and the match for one table. Every
// engine call happens on the Run goroutine.
type Hub struct {
	mu      sync.Mutex
	tableID string
	lobby   *lobby.Lobby
	game    *engine.Game
	store   store.Store
	rules   engine.GameConfig
	seed    uint64
	timeout time.Duration
	log     *logrus.Entry

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	states     chan chan TableState
	quit       chan struct{}
	stopOnce   sync.Once
}

func NewHub(tableID string, lob *lobby.Lobby, opts HubOptions) *Hub {
	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	timeout := opts.StoreTimeout
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return &Hub{
		tableID:    tableID,
		lobby:      lob,
		store:      opts.Store,
		rules:      opts.Rules,
		seed:       opts.Seed,
		timeout:    timeout,
		log:        log.WithField("table", tableID),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		incoming:   make(chan IncomingMessage, 256),
		states:     make(chan chan TableState),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			client.log.Info("client connected")
			h.sendTableUpdate(client)
			h.sendStateToClient(client)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			client.log.Info("client disconnected")

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case reply := <-h.states:
			reply <- h.state()

		case <-h.quit:
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Register hands a new connection to the hub.
func (h *Hub) Register(c *Client) error {
	select {
	case h.register <- c:
		return nil
	case <-h.quit:
		return ErrHubClosed
	}
}

// Stop ends Run and disconnects every client.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// State returns the table as seen by a spectator.
func (h *Hub) State(ctx context.Context) (TableState, error) {
	reply := make(chan TableState, 1)
	select {
	case h.states <- reply:
	case <-h.quit:
		return TableState{}, ErrHubClosed
	case <-ctx.Done():
		return TableState{}, ctx.Err()
	}
	select {
	case s := <-reply:
		return s, nil
	case <-ctx.Done():
		return TableState{}, ctx.Err()
	}
}

func (h *Hub) state() TableState {
	s := TableState{
		TableID: h.tableID,
		Players: tablePlayers(h.lobby.GetPlayers()),
		Started: h.lobby.IsStarted(),
	}
	if h.game != nil {
		pv := h.game.PublicView()
		s.Game = &pv
	}
	return s
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	// Messages queued before an unregister must not reach a closed send channel.
	h.mu.Lock()
	connected := h.clients[msg.Client]
	h.mu.Unlock()
	if !connected {
		return
	}

	if msg.Client.Role != RoleController && msg.Envelope.Type != protocol.MsgListSaves {
		h.sendError(msg.Client, "spectators cannot play", false)
		return
	}

	switch msg.Envelope.Type {
	case protocol.MsgSetup:
		h.handleSetup(msg)
	case protocol.MsgStartGame:
		h.handleStartGame(msg)
	case protocol.MsgReset:
		h.handleReset(msg)
	case protocol.MsgNewGame:
		h.handleNewGame(msg)
	case protocol.MsgSave:
		h.handleSave(msg)
	case protocol.MsgLoad:
		h.handleLoad(msg)
	case protocol.MsgListSaves:
		h.handleListSaves(msg)
	case protocol.MsgDeleteSave:
		h.handleDeleteSave(msg)
	default:
		h.handleGameAction(msg)
	}
}

func (h *Hub) handleSetup(msg IncomingMessage) {
	var setup protocol.SetupMsg
	if err := msg.Envelope.DecodePayload(&setup, "mapstructure"); err != nil {
		h.sendError(msg.Client, err.Error(), false)
		return
	}
	if setup.PlayerCount != 0 {
		if err := h.lobby.SetPlayerCount(setup.PlayerCount); err != nil {
			h.sendError(msg.Client, err.Error(), false)
			return
		}
	}
	for i, name := range setup.Names {
		if name == "" {
			continue
		}
		if err := h.lobby.SetName(i+1, name); err != nil {
			h.sendError(msg.Client, err.Error(), false)
			return
		}
	}
	h.broadcastTableUpdate()
}

func (h *Hub) handleStartGame(msg IncomingMessage) {
	if err := h.lobby.Start(); err != nil {
		h.sendError(msg.Client, err.Error(), false)
		return
	}
	if err := h.startMatch(); err != nil {
		h.lobby.Reset()
		h.sendError(msg.Client, err.Error(), false)
		return
	}
	h.broadcastTableUpdate()
	h.broadcastState()
}

// handleNewGame deals a fresh match for the same seats.
func (h *Hub) handleNewGame(msg IncomingMessage) {
	if !h.lobby.IsStarted() {
		h.sendError(msg.Client, lobby.ErrNotStarted.Error(), false)
		return
	}
	if err := h.startMatch(); err != nil {
		h.sendError(msg.Client, err.Error(), false)
		return
	}
	h.broadcastState()
}

// handleReset drops the match and returns the table to setup.
func (h *Hub) handleReset(msg IncomingMessage) {
	h.game = nil
	h.lobby.Reset()
	h.log.Info("table reset")
	h.broadcastTableUpdate()
}

func (h *Hub) startMatch() error {
	seats := h.lobby.GetPlayers()
	players := make([]*engine.Player, len(seats))
	for i, s := range seats {
		players[i] = engine.NewPlayer(s.Seat, s.Name)
	}
	cfg, err := h.matchConfig()
	if err != nil {
		return err
	}
	game, err := engine.NewGame(players, cfg, effects.NewRegistry())
	if err != nil {
		return err
	}
	h.game = game
	h.log.WithFields(logrus.Fields{"players": len(players), "seed": cfg.Seed}).Info("match started")
	return nil
}

func (h *Hub) matchConfig() (engine.GameConfig, error) {
	seed, err := random.SeedOr(h.seed)
	if err != nil {
		return engine.GameConfig{}, err
	}
	cfg := h.rules
	cfg.Seed = seed
	return cfg, nil
}

func (h *Hub) handleGameAction(msg IncomingMessage) {
	if h.game == nil {
		h.sendError(msg.Client, lobby.ErrNotStarted.Error(), false)
		return
	}

	action, err := h.parseAction(msg.Envelope)
	if err != nil {
		h.sendError(msg.Client, err.Error(), false)
		return
	}

	events, err := h.game.Apply(action)
	if err != nil {
		h.log.WithFields(logrus.Fields{"action": action.Type, "seat": h.game.Current}).WithError(err).Debug("action refused")
		h.sendError(msg.Client, err.Error(), errors.Is(err, engine.ErrIllegalAction))
		return
	}
	h.log.WithFields(logrus.Fields{"action": action.Type, "seat": h.game.Current, "phase": h.game.Phase}).Debug("action applied")

	h.broadcastEvents(events)
	h.broadcastState()
}

func (h *Hub) parseAction(env protocol.Envelope) (engine.Action, error) {
	var action engine.Action
	if err := env.DecodePayload(&action, "json"); err != nil {
		return engine.Action{}, err
	}
	action.Type = engine.ActionType(env.Type)
	// A roll without explicit locks keeps the dice locked with toggle_lock.
	if action.Type == engine.ActionRoll && action.Locks == nil {
		action.Locks = h.game.Dice.LockedIndices()
	}
	return action, nil
}

func (h *Hub) storeContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), h.timeout)
}

func (h *Hub) handleSave(msg IncomingMessage) {
	if h.game == nil {
		h.sendError(msg.Client, lobby.ErrNotStarted.Error(), false)
		return
	}
	if h.store == nil {
		h.sendError(msg.Client, "saving is disabled", false)
		return
	}
	var req protocol.SaveMsg
	if err := msg.Envelope.DecodePayload(&req, "mapstructure"); err != nil {
		h.sendError(msg.Client, err.Error(), false)
		return
	}
	if req.Name == "" {
		req.Name = store.DefaultName(time.Now())
	}

	ctx, cancel := h.storeContext()
	defer cancel()
	info, err := h.store.Save(ctx, req.Name, h.game.Snapshot())
	if err != nil {
		h.log.WithError(err).Error("save failed")
		h.sendError(msg.Client, fmt.Sprintf("save failed: %v", err), false)
		return
	}
	h.log.WithField("save", info.Name).Info("match saved")
	msg.Client.SendEnvelope(protocol.MustEnvelope(protocol.MsgSaved, saveInfo(info)))
}

func (h *Hub) handleLoad(msg IncomingMessage) {
	if h.store == nil {
		h.sendError(msg.Client, "saving is disabled", false)
		return
	}
	var req protocol.SaveMsg
	if err := msg.Envelope.DecodePayload(&req, "mapstructure"); err != nil {
		h.sendError(msg.Client, err.Error(), false)
		return
	}

	ctx, cancel := h.storeContext()
	defer cancel()
	snap, err := h.store.Load(ctx, req.Name)
	if err != nil {
		h.sendError(msg.Client, fmt.Sprintf("load failed: %v", err), false)
		return
	}
	cfg, err := h.matchConfig()
	if err != nil {
		h.sendError(msg.Client, err.Error(), false)
		return
	}
	game, err := engine.Restore(snap, cfg, effects.NewRegistry())
	if err != nil {
		h.log.WithField("save", req.Name).WithError(err).Warn("load rejected")
		h.sendError(msg.Client, fmt.Sprintf("load failed: %v", err), false)
		return
	}

	h.game = game
	names := make([]string, len(game.Players))
	for i, p := range game.Players {
		names[i] = p.Name
	}
	h.lobby.Seat(names)
	h.log.WithField("save", req.Name).Info("match loaded")

	msg.Client.SendEnvelope(protocol.MustEnvelope(protocol.MsgLoaded, protocol.SaveInfo{
		Name:    req.Name,
		Players: snap.PlayerCount,
		Turn:    snap.Turn,
	}))
	h.broadcastTableUpdate()
	h.broadcastState()
}

func (h *Hub) handleListSaves(msg IncomingMessage) {
	if h.store == nil {
		msg.Client.SendEnvelope(protocol.MustEnvelope(protocol.MsgSaveList, protocol.SaveList{}))
		return
	}
	ctx, cancel := h.storeContext()
	defer cancel()
	infos, err := h.store.List(ctx)
	if err != nil {
		h.sendError(msg.Client, fmt.Sprintf("list saves failed: %v", err), false)
		return
	}
	list := protocol.SaveList{Saves: make([]protocol.SaveInfo, 0, len(infos))}
	for _, info := range infos {
		list.Saves = append(list.Saves, saveInfo(info))
	}
	msg.Client.SendEnvelope(protocol.MustEnvelope(protocol.MsgSaveList, list))
}

func (h *Hub) handleDeleteSave(msg IncomingMessage) {
	if h.store == nil {
		h.sendError(msg.Client, "saving is disabled", false)
		return
	}
	var req protocol.SaveMsg
	if err := msg.Envelope.DecodePayload(&req, "mapstructure"); err != nil {
		h.sendError(msg.Client, err.Error(), false)
		return
	}
	ctx, cancel := h.storeContext()
	defer cancel()
	if err := h.store.Delete(ctx, req.Name); err != nil {
		h.sendError(msg.Client, fmt.Sprintf("delete failed: %v", err), false)
		return
	}
	h.handleListSaves(msg)
}

func saveInfo(info store.Info) protocol.SaveInfo {
	return protocol.SaveInfo{
		Name:    info.Name,
		SavedAt: info.SavedAt.Format(time.RFC3339),
		Players: info.Players,
		Turn:    info.Turn,
	}
}

func tablePlayers(players []lobby.PlayerInfo) []protocol.TablePlayer {
	out := make([]protocol.TablePlayer, len(players))
	for i, p := range players {
		out[i] = protocol.TablePlayer{Seat: p.Seat, Name: p.Name}
	}
	return out
}

func (h *Hub) broadcastEvents(events []engine.Event) {
	for _, ev := range events {
		env := protocol.MustEnvelope(protocol.MsgEvent, ev)
		h.broadcastAll(env)
	}
}

func (h *Hub) broadcastState() {
	if h.game == nil {
		return
	}
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgGameState, h.game.PublicView()))
}

func (h *Hub) sendStateToClient(client *Client) {
	if h.game == nil {
		return
	}
	client.SendEnvelope(protocol.MustEnvelope(protocol.MsgGameState, h.game.PublicView()))
}

func (h *Hub) tableUpdate(client *Client) protocol.Envelope {
	return protocol.MustEnvelope(protocol.MsgTableUpdate, protocol.TableUpdate{
		TableID:    h.tableID,
		Players:    tablePlayers(h.lobby.GetPlayers()),
		Started:    h.lobby.IsStarted(),
		Controller: client.Role == RoleController,
	})
}

func (h *Hub) sendTableUpdate(client *Client) {
	client.SendEnvelope(h.tableUpdate(client))
}

func (h *Hub) broadcastTableUpdate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.SendEnvelope(h.tableUpdate(client))
	}
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(env)
	if err != nil {
		h.log.WithError(err).Error("broadcast marshal error")
		return
	}
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			client.log.Warn("send buffer full")
		}
	}
}

func (h *Hub) sendError(client *Client, message string, illegal bool) {
	env := protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message, Illegal: illegal})
	client.SendEnvelope(env)
}
