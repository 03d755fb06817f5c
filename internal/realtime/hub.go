package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

// OrderEvent は新規注文の通知
type OrderEvent struct {
	Type  string      `json:"type"`
	Order model.Order `json:"order"`
}

type client struct {
	conn     *websocket.Conn
	farmerID string
	send     chan []byte
}

// Hub は /ws/orders の接続を持ち、新規注文を配信する。
// farmerID 付きの接続にはその農家宛ての注文だけを送る。
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// DI
func NewHub(allowedOrigin string, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients: map[*client]struct{}{},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowedOrigin == "" || origin == allowedOrigin
			},
		},
		log: log,
	}
}

// ServeWS は接続をアップグレードし、切断されるまでブロックする
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, farmerID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	c := &client{conn: conn, farmerID: farmerID, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writeLoop(c)
	}()

	// 受信は読み捨て。エラー（切断）で抜ける
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(c)
	<-done
	return conn.Close()
}

func (h *Hub) writeLoop(c *client) {
	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Debug("ws write failed", zap.Error(err))
			// 残りは捨てる（remove で send が閉じられるまで読む）
			for range c.send {
			}
			return
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// PublishOrder は対象の接続に注文を送る。詰まっている接続には送らない。
func (h *Hub) PublishOrder(o model.Order) {
	data, err := json.Marshal(OrderEvent{Type: "order.created", Order: o})
	if err != nil {
		h.log.Warn("order event marshal failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if c.farmerID != "" && c.farmerID != o.FarmerID {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.log.Warn("ws client too slow, dropping order event", zap.String("order_id", o.ID))
		}
	}
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close は全接続を閉じる（ServeWS 側の読み込みがエラーで抜ける）
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		_ = c.conn.Close()
	}
}
