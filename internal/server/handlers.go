package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"roicompagnie/internal/engine"
	"roicompagnie/internal/lobby"
	qr "roicompagnie/internal/qrcode"
	"roicompagnie/internal/store"
)

const stateTimeout = 3 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	LobbyMgr  *lobby.Manager
	Store     store.Store
	Rules     engine.GameConfig
	Seed      uint64
	PublicURL string
	log       *logrus.Entry

	mu   sync.Mutex
	hubs map[string]*Hub
}

func NewHandlers(opts Options) *Handlers {
	return &Handlers{
		LobbyMgr:  lobby.NewManager(),
		Store:     opts.Store,
		Rules:     opts.Rules,
		Seed:      opts.Seed,
		PublicURL: opts.PublicURL,
		log:       opts.logger(),
		hubs:      make(map[string]*Hub),
	}
}

func (h *Handlers) hub(id string) (*Hub, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	hub, ok := h.hubs[id]
	return hub, ok
}

// CreateTable opens a new table and starts its hub.
func (h *Handlers) CreateTable(c *gin.Context) {
	id := h.LobbyMgr.Create()
	hub := NewHub(id, h.LobbyMgr.Get(id), HubOptions{
		Store:  h.Store,
		Rules:  h.Rules,
		Seed:   h.Seed,
		Logger: h.log,
	})

	h.mu.Lock()
	h.hubs[id] = hub
	h.mu.Unlock()
	go hub.Run()

	h.log.WithField("table", id).Info("table created")
	c.JSON(http.StatusCreated, gin.H{
		"table_id":  id,
		"ws":        "/ws?table=" + id + "&role=controller",
		"spectator": qr.SpectatorURL(h.baseURL(c), id),
	})
}

func (h *Handlers) ListTables(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tables": h.LobbyMgr.IDs()})
}

// GetTable returns the seats of a table.
func (h *Handlers) GetTable(c *gin.Context) {
	state, ok := h.tableState(c)
	if !ok {
		return
	}
	state.Game = nil
	c.JSON(http.StatusOK, state)
}

// GetState returns the table with its public game view.
func (h *Handlers) GetState(c *gin.Context) {
	state, ok := h.tableState(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *Handlers) tableState(c *gin.Context) (TableState, bool) {
	hub, ok := h.hub(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
		return TableState{}, false
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), stateTimeout)
	defer cancel()
	state, err := hub.State(ctx)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return TableState{}, false
	}
	return state, true
}

// CloseTable stops a table's hub and forgets it.
func (h *Handlers) CloseTable(c *gin.Context) {
	id := c.Param("id")
	h.mu.Lock()
	hub, ok := h.hubs[id]
	delete(h.hubs, id)
	h.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
		return
	}
	hub.Stop()
	h.LobbyMgr.Remove(id)
	h.log.WithField("table", id).Info("table closed")
	c.Status(http.StatusNoContent)
}

// QR renders a PNG linking to a table's spectator view.
func (h *Handlers) QR(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.hub(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))
	png, err := qr.Generate(qr.SpectatorURL(h.baseURL(c), id), size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "QR generation failed"})
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handlers) baseURL(c *gin.Context) string {
	if h.PublicURL != "" {
		return h.PublicURL
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}

func (h *Handlers) ListSaves(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusOK, gin.H{"saves": []store.Info{}})
		return
	}
	infos, err := h.Store.List(c.Request.Context())
	if err != nil {
		h.log.WithError(err).Error("list saves failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"saves": infos})
}

func (h *Handlers) DeleteSave(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": store.ErrNotFound.Error()})
		return
	}
	err := h.Store.Delete(c.Request.Context(), c.Param("name"))
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrInvalidName):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusNoContent)
	}
}

// WS upgrades a table connection. role=controller plays the table;
// anything else only watches.
func (h *Handlers) WS(c *gin.Context) {
	id := c.Query("table")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing table parameter"})
		return
	}
	hub, ok := h.hub(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "table not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("ws upgrade error")
		return
	}

	client := NewClient(hub, conn, ParseClientRole(c.Query("role")))
	if err := hub.Register(client); err != nil {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

func (h *Handlers) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Shutdown stops every hub.
func (h *Handlers) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, hub := range h.hubs {
		hub.Stop()
		delete(h.hubs, id)
	}
}
