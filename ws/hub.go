// file: ws/hub.go
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Hub 管理端实时推送中心，实现 services.Notifier。
// 推送尽力而为：慢客户端发送缓冲满了直接踢掉，不阻塞业务流程。
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]bool

	upgrader websocket.Upgrader
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Envelope 推送消息的统一外层
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
	At    time.Time   `json:"at"`
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// 管理端通过 Token 鉴权，跨域交给反向代理处理
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Emit 向所有在线管理端广播事件，无送达保证
func (h *Hub) Emit(event string, payload interface{}) {
	data, err := json.Marshal(Envelope{Event: event, Data: payload, At: time.Now()})
	if err != nil {
		log.Printf("ws: marshal %s event failed: %v", event, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// 发送缓冲已满，异步剔除
			go h.drop(c)
		}
	}
}

// HandleWS 升级连接并注册客户端，配合管理员鉴权中间件使用
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws: upgrade failed: %v", err)
		return
	}

	cl := &client{conn: conn, send: make(chan []byte, 64)}
	h.mu.Lock()
	h.clients[cl] = true
	h.mu.Unlock()
	log.Printf("ws: admin client connected (%d online)", h.count())

	go h.writeLoop(cl)
	go h.readLoop(cl)
}

func (h *Hub) writeLoop(cl *client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case msg, ok := <-cl.send:
			if !ok {
				return
			}
			cl.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.drop(cl)
				return
			}
		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.drop(cl)
				return
			}
		}
	}
}

// readLoop 只消费控制帧与断连，客户端不向服务端发业务消息
func (h *Hub) readLoop(cl *client) {
	cl.conn.SetReadLimit(1024)
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			h.drop(cl)
			return
		}
	}
}

func (h *Hub) drop(cl *client) {
	h.mu.Lock()
	if _, ok := h.clients[cl]; ok {
		delete(h.clients, cl)
		close(cl.send)
		cl.conn.Close()
	}
	h.mu.Unlock()
}

func (h *Hub) count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
