package ws

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"power-store/service"
	"power-store/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	FramePublic  = "public"
	FramePrivate = "private"
	FrameInit    = "init"
)

// Frame is every message the server sends.
type Frame struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	PlayerID int64  `json:"playerId,omitempty"`
}

type playerConn struct {
	id       string
	playerID int64
	conn     *websocket.Conn
}

// Hub keeps every open connection by player and implements
// service.Notifier. All writes happen under mu, which also serializes them
// per connection as gorilla requires.
type Hub struct {
	engine *service.Engine
	tokens *utils.TokenIssuer
	logger *zap.Logger

	mu    sync.Mutex
	conns map[int64][]*playerConn
}

func NewHub(engine *service.Engine, tokens *utils.TokenIssuer, logger *zap.Logger) *Hub {
	return &Hub{
		engine: engine,
		tokens: tokens,
		logger: logger,
		conns:  make(map[int64][]*playerConn),
	}
}

func (h *Hub) Public(text string) {
	msg := buildMessage(FramePublic, text)
	h.mu.Lock()
	defer h.mu.Unlock()
	for playerID := range h.conns {
		h.writeLocked(playerID, msg)
	}
}

func (h *Hub) Private(playerID int64, text string) {
	msg := buildMessage(FramePrivate, text)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.writeLocked(playerID, msg)
}

// writeLocked sends msg to every connection of the player and drops the ones
// that fail.
func (h *Hub) writeLocked(playerID int64, msg []byte) {
	alive := h.conns[playerID][:0]
	for _, pc := range h.conns[playerID] {
		if err := pc.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.logger.Debug("write failed, dropping connection",
				zap.Int64("player", playerID), zap.String("conn", pc.id), zap.Error(err))
			pc.conn.Close()
			continue
		}
		alive = append(alive, pc)
	}
	if len(alive) == 0 {
		delete(h.conns, playerID)
		return
	}
	h.conns[playerID] = alive
}

// Connections is the number of open connections.
func (h *Hub) Connections() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, list := range h.conns {
		n += len(list)
	}
	return n
}

func (h *Hub) join(pc *playerConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[pc.playerID] = append(h.conns[pc.playerID], pc)
	data, _ := json.Marshal(Frame{Type: FrameInit, PlayerID: pc.playerID})
	if err := pc.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.logger.Debug("init frame failed", zap.String("conn", pc.id), zap.Error(err))
	}
}

func (h *Hub) leave(pc *playerConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	list := h.conns[pc.playerID]
	kept := make([]*playerConn, 0, len(list))
	for _, other := range list {
		if other != pc {
			kept = append(kept, other)
		}
	}
	if len(kept) == 0 {
		delete(h.conns, pc.playerID)
	} else {
		h.conns[pc.playerID] = kept
	}
	h.logger.Info("websocket closed", zap.Int64("player", pc.playerID), zap.String("conn", pc.id))
}

// HandleWebSocket authenticates with ?token= and then serves one connection
// until it closes.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	claims, err := h.tokens.Parse(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	pc := &playerConn{id: uuid.NewString(), playerID: claims.PlayerID, conn: conn}
	h.join(pc)
	defer h.leave(pc)
	h.logger.Info("websocket opened", zap.Int64("player", pc.playerID), zap.String("conn", pc.id))

	h.listen(c, pc)
}

func buildMessage(frameType, text string) []byte {
	msg, _ := json.Marshal(Frame{Type: frameType, Text: text})
	return msg
}
