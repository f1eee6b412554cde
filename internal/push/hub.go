// Package push fans out realtime events to websocket clients grouped in
// per-user rooms.
package push

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/focusboard/internal/logger"
	"github.com/focusboard/internal/metrics"
	"github.com/google/uuid"
)

// AnonymousRoom 收容未认证或令牌无效的连接
const AnonymousRoom = "user:anonymous"

// defaultBuffer 为每个连接的待发送队列长度，满了就丢弃
const defaultBuffer = 32

// Event 是推送给客户端的一条通知
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Action    string      `json:"action,omitempty"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// Envelope 是写到 websocket 上的帧，Event 字段对应客户端监听的事件名
type Envelope struct {
	Event   string `json:"event"`
	Payload Event  `json:"payload"`
}

// Publisher 由 Hub 实现，服务层只依赖这个接口
type Publisher interface {
	Publish(userID uint, event Event)
}

// Nop 丢弃所有事件
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(uint, Event) {}

type client struct {
	id   string
	room string
	send chan []byte
}

// Hub 维护 room -> 连接集合
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*client]struct{}
	buffer int
	now    func() time.Time
}

// NewHub 创建空的 Hub
func NewHub() *Hub {
	return &Hub{
		rooms:  make(map[string]map[*client]struct{}),
		buffer: defaultBuffer,
		now:    time.Now,
	}
}

// Room 返回用户对应的房间名，0 表示匿名
func Room(userID uint) string {
	if userID == 0 {
		return AnonymousRoom
	}
	return fmt.Sprintf("user:%d", userID)
}

// Subscribe 把一个新连接加入房间，返回接收通道和取消函数
func (h *Hub) Subscribe(room string) (<-chan []byte, func()) {
	c := h.subscribe(room)
	return c.send, func() { h.unsubscribe(c) }
}

func (h *Hub) subscribe(room string) *client {
	c := &client{id: uuid.NewString(), room: room, send: make(chan []byte, h.buffer)}

	h.mu.Lock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[*client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
	h.mu.Unlock()

	metrics.PushConnections.Inc()
	return c
}

func (h *Hub) unsubscribe(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	members, ok := h.rooms[c.room]
	if !ok {
		return
	}
	if _, ok := members[c]; !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(h.rooms, c.room)
	}
	close(c.send)
	metrics.PushConnections.Dec()
}

// Publish 向用户房间广播事件，不阻塞调用方；慢客户端直接丢弃消息
func (h *Hub) Publish(userID uint, event Event) {
	h.publishRoom(Room(userID), "notification", event)
}

func (h *Hub) publishRoom(room, name string, event Event) {
	data, err := h.encode(name, event)
	if err != nil {
		logger.Warn("push encode failed", "room", room, "type", event.Type, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[room] {
		deliver(c, data)
	}
}

func (h *Hub) encode(name string, event Event) ([]byte, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp == "" {
		event.Timestamp = h.now().UTC().Format(time.RFC3339Nano)
	}
	return json.Marshal(Envelope{Event: name, Payload: event})
}

func deliver(c *client, data []byte) {
	select {
	case c.send <- data:
		metrics.PushMessages.WithLabelValues("delivered").Inc()
	default:
		metrics.PushMessages.WithLabelValues("dropped").Inc()
		logger.Debug("push dropped for slow client", "conn", c.id, "room", c.room)
	}
}

// ClientCount 返回房间内的连接数
func (h *Hub) ClientCount(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
