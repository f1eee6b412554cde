package push

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/focusboard/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	subscribeNotifications = "subscribe:notifications"
)

// TokenParser 把令牌解析为用户 ID
type TokenParser interface {
	ParseToken(token string) (uint, error)
}

// Handler 升级 websocket 连接并加入对应用户房间
// 令牌缺失或无效时仍允许连接，但只进入匿名房间
func (h *Hub) Handler(tokens TokenParser, allowedOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowedOrigin == "" || allowedOrigin == "*" || origin == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		userID := resolveUser(c.Request, tokens)

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "err", err)
			return
		}

		cl := h.subscribe(Room(userID))
		logger.Debug("websocket connected", "conn", cl.id, "room", cl.room)

		go h.writePump(conn, cl)
		h.readPump(conn, cl)
	}
}

func resolveUser(r *http.Request, tokens TokenParser) uint {
	if tokens == nil {
		return 0
	}
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		header := r.Header.Get("Authorization")
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			token = strings.TrimSpace(parts[1])
		}
	}
	if token == "" {
		return 0
	}
	userID, err := tokens.ParseToken(token)
	if err != nil {
		logger.Debug("websocket token rejected, joining anonymous room", "err", err)
		return 0
	}
	return userID
}

// readPump 处理客户端消息，连接断开时退出并注销
func (h *Hub) readPump(conn *websocket.Conn, cl *client) {
	defer func() {
		h.unsubscribe(cl)
		conn.Close()
		logger.Debug("websocket disconnected", "conn", cl.id, "room", cl.room)
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("websocket read failed", "conn", cl.id, "err", err)
			}
			return
		}
		if clientEvent(message) == subscribeNotifications {
			h.greet(cl)
		}
	}
}

// clientEvent 接受纯文本事件名或 {"event": "..."} 形式
func clientEvent(message []byte) string {
	text := strings.TrimSpace(string(message))
	if !strings.HasPrefix(text, "{") {
		return text
	}
	var frame struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal(message, &frame); err != nil {
		return ""
	}
	return frame.Event
}

func (h *Hub) greet(cl *client) {
	data, err := h.encode("notification", Event{
		Type:    "info",
		Message: "Connected to real-time notifications",
	})
	if err != nil {
		return
	}
	deliver(cl, data)
}

// writePump 是连接上唯一的写者
func (h *Hub) writePump(conn *websocket.Conn, cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case data, ok := <-cl.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
