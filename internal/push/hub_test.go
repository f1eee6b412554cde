package push

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/focusboard/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func init() {
	logger.Discard()
}

func decode(t *testing.T, data []byte) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	return env
}

func TestRoomNames(t *testing.T) {
	if got := Room(12); got != "user:12" {
		t.Fatalf("expected user:12, got %s", got)
	}
	if got := Room(0); got != AnonymousRoom {
		t.Fatalf("expected anonymous room, got %s", got)
	}
}

func TestPublishReachesOnlyTargetRoom(t *testing.T) {
	hub := NewHub()
	mine, unsubMine := hub.Subscribe(Room(1))
	defer unsubMine()
	other, unsubOther := hub.Subscribe(Room(2))
	defer unsubOther()

	hub.Publish(1, Event{Type: "task", Action: "created", Message: "New task created: write"})

	select {
	case data := <-mine:
		env := decode(t, data)
		if env.Event != "notification" || env.Payload.Type != "task" || env.Payload.Action != "created" {
			t.Fatalf("unexpected envelope %+v", env)
		}
		if env.Payload.ID == "" || env.Payload.Timestamp == "" {
			t.Fatal("expected id and timestamp to be filled")
		}
	default:
		t.Fatal("expected message for user 1")
	}

	select {
	case data := <-other:
		t.Fatalf("user 2 should not receive anything, got %s", data)
	default:
	}
}

func TestPublishDropsForSlowClient(t *testing.T) {
	hub := NewHub()
	hub.buffer = 1
	ch, unsub := hub.Subscribe(Room(3))
	defer unsub()

	hub.Publish(3, Event{Type: "goal", Message: "first"})
	hub.Publish(3, Event{Type: "goal", Message: "second"})

	env := decode(t, <-ch)
	if env.Payload.Message != "first" {
		t.Fatalf("expected first message kept, got %q", env.Payload.Message)
	}
	select {
	case data := <-ch:
		t.Fatalf("expected second message dropped, got %s", data)
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	ch, unsub := hub.Subscribe(Room(4))
	if hub.ClientCount(Room(4)) != 1 {
		t.Fatalf("expected 1 client, got %d", hub.ClientCount(Room(4)))
	}
	unsub()
	unsub()

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}
	if hub.ClientCount(Room(4)) != 0 {
		t.Fatal("expected room to be empty")
	}
	hub.Publish(4, Event{Type: "task"})
}

func TestClientEvent(t *testing.T) {
	cases := map[string]string{
		"subscribe:notifications":             subscribeNotifications,
		`{"event":"subscribe:notifications"}`: subscribeNotifications,
		`  {"event":"ping"} `:                 "ping",
		`{broken`:                             "",
	}
	for in, want := range cases {
		if got := clientEvent([]byte(in)); got != want {
			t.Fatalf("clientEvent(%q) = %q, want %q", in, got, want)
		}
	}
}

type fakeTokens map[string]uint

func (f fakeTokens) ParseToken(token string) (uint, error) {
	if id, ok := f[token]; ok {
		return id, nil
	}
	return 0, errors.New("bad token")
}

func dialHub(t *testing.T, hub *Hub, query string) *websocket.Conn {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", hub.Handler(fakeTokens{"good": 5}, "*"))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) Envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return decode(t, data)
}

func TestWebsocketGreetingAndDelivery(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, "?token=good")

	if err := conn.WriteMessage(websocket.TextMessage, []byte(subscribeNotifications)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	greeting := readEnvelope(t, conn)
	if greeting.Payload.Type != "info" || greeting.Payload.Message != "Connected to real-time notifications" {
		t.Fatalf("unexpected greeting %+v", greeting)
	}
	if hub.ClientCount(Room(5)) != 1 {
		t.Fatalf("expected connection in user:5, got %d", hub.ClientCount(Room(5)))
	}

	hub.Publish(5, Event{Type: "productivity", Action: "task_completed", Message: "Task completed"})
	env := readEnvelope(t, conn)
	if env.Payload.Type != "productivity" || env.Payload.Action != "task_completed" {
		t.Fatalf("unexpected event %+v", env)
	}
}

func TestWebsocketInvalidTokenJoinsAnonymous(t *testing.T) {
	hub := NewHub()
	conn := dialHub(t, hub, "?token=forged")

	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"subscribe:notifications"}`)); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	readEnvelope(t, conn)

	if hub.ClientCount(AnonymousRoom) != 1 {
		t.Fatalf("expected anonymous connection, got %d", hub.ClientCount(AnonymousRoom))
	}
	if hub.ClientCount(Room(5)) != 0 {
		t.Fatal("forged token must not join a user room")
	}
}
