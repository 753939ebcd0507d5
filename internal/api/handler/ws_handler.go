package handler

import (
	"ContentStudio/internal/pkg/alert"
	log "log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WsHandler struct {
	hub *alert.Hub
}

func NewWsHandler(hub *alert.Hub) *WsHandler {
	return &WsHandler{hub: hub}
}

// Connect 升级为 WebSocket，实时推送提醒
func (h *WsHandler) Connect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WS 协议升级失败", "err", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	msgCh, cancel := h.hub.Subscribe()
	defer cancel()

	log.Info("提醒 WS 连接已建立", "clients", h.hub.ClientCount())

	stopChan := make(chan struct{})

	// 读循环：监听客户端主动断开
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(stopChan)
				return
			}
		}
	}()

	// 写循环：把广播的提醒推给客户端
	for {
		select {
		case msg, ok := <-msgCh:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Error("WS 推送失败", "err", err)
				return
			}
		case <-stopChan:
			log.Info("提醒 WS 连接已断开")
			return
		}
	}
}
