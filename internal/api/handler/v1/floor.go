package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	clientSendSize = 64
	broadcastSize  = 256
)

var errFeedSaturated = errors.New("floor feed is saturated")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type floorClient struct {
	conn *websocket.Conn
	send chan []byte
}

// FloorHandler pushes table and session events to every connected floor screen.
type FloorHandler struct {
	clients    map[*floorClient]struct{}
	broadcast  chan []byte
	register   chan *floorClient
	unregister chan *floorClient
	done       chan struct{}
	connected  atomic.Int64
}

func NewFloorHandler() *FloorHandler {
	return &FloorHandler{
		clients:    make(map[*floorClient]struct{}),
		broadcast:  make(chan []byte, broadcastSize),
		register:   make(chan *floorClient),
		unregister: make(chan *floorClient),
		done:       make(chan struct{}),
	}
}

// Run owns the client set until ctx is cancelled.
func (h *FloorHandler) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.connected.Store(0)
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					zap.L().Warn("dropping slow floor client")
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
		h.connected.Store(int64(len(h.clients)))
	}
}

// Connected returns the number of registered floor clients.
func (h *FloorHandler) Connected() int {
	return int(h.connected.Load())
}

// Publish queues an event for broadcast. It never blocks on slow clients.
func (h *FloorHandler) Publish(_ context.Context, event domain.Event) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	select {
	case h.broadcast <- message:
		return nil
	default:
		return errFeedSaturated
	}
}

// HandleWebSocket godoc
// @Summary      Floor event feed
// @Description  Upgrades to a WebSocket that streams table.status_changed, table.moved, session.opened, session.closed and order.submitted events
// @Tags         floor
// @Param        token  query     string  false  "Bearer token for clients that cannot set headers"
// @Success      101    {string}  string  "Switching Protocols to WebSocket"
// @Failure      401    {object}  response.Err
// @Router       /floor/ws [get]
// @Security BearerAuth
func (h *FloorHandler) HandleWebSocket(ctx *gin.Context) {
	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &floorClient{
		conn: conn,
		send: make(chan []byte, clientSendSize),
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(h)
}

func (c *floorClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards client messages and detects disconnects.
func (c *floorClient) readPump(h *FloorHandler) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Info(fmt.Sprintf("floor client closed: %v", err))
			}
			return
		}
	}
}
