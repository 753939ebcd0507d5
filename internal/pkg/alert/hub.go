package alert

import (
	"context"
	"sync"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Hub 把提醒实时推给已连接的 WebSocket 客户端
// 本身实现 Channel，接入 Dispatcher 即可广播
type Hub struct {
	mu      sync.Mutex
	nextID  int
	clients map[int]chan []byte
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int]chan []byte)}
}

// Subscribe 注册一个客户端，返回消息通道和注销函数
func (h *Hub) Subscribe() (<-chan []byte, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	ch := make(chan []byte, 16)
	h.clients[id] = ch

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.clients[id]; ok {
			delete(h.clients, id)
			close(c)
		}
	}
}

// ClientCount 当前连接数
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) Name() string { return "websocket" }

// Send 序列化后广播，慢客户端直接丢弃本条消息
func (h *Hub) Send(_ context.Context, a *Alert) error {
	data, err := json.Marshal(a)
	if err != nil {
		return errors.Wrap(err, "提醒序列化失败")
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.clients {
		select {
		case ch <- data:
		default:
		}
	}
	return nil
}
