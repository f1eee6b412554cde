package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/focusboard/internal/push"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events map[uint][]push.Event
}

func (r *recordingPublisher) Publish(userID uint, event push.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.events == nil {
		r.events = make(map[uint][]push.Event)
	}
	r.events[userID] = append(r.events[userID], event)
}

func TestNotificationServiceCreatePushes(t *testing.T) {
	publisher := &recordingPublisher{}
	svc := NewNotificationService(setupServiceTestDB(t), publisher)

	n, err := svc.Create(1, NotificationInput{Title: "提醒", Message: "该喝水了", Data: map[string]interface{}{"habit_id": 3}})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if n.Type != "info" || n.IsRead {
		t.Fatalf("unexpected notification %+v", n)
	}

	events := publisher.events[1]
	if len(events) != 1 || events[0].Action != "new_notification" || events[0].Message != "该喝水了" {
		t.Fatalf("expected one pushed event, got %+v", events)
	}

	if _, err := svc.Create(1, NotificationInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestNotificationServiceReadState(t *testing.T) {
	svc := NewNotificationService(setupServiceTestDB(t), nil)
	readAt := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return readAt }

	var ids []uint
	for _, msg := range []string{"a", "b", "c"} {
		n, err := svc.Create(1, NotificationInput{Message: msg})
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		ids = append(ids, n.ID)
	}

	limited, _ := svc.List(1, NotificationFilter{Limit: 2})
	if len(limited) != 2 || limited[0].Message != "c" {
		t.Fatalf("expected newest two, got %+v", limited)
	}

	marked, err := svc.MarkRead(1, ids[0])
	if err != nil {
		t.Fatalf("MarkRead returned error: %v", err)
	}
	if !marked.IsRead || marked.ReadAt == nil || !marked.ReadAt.Equal(readAt) {
		t.Fatalf("unexpected read state %+v", marked)
	}

	unread, _ := svc.List(1, NotificationFilter{UnreadOnly: true})
	if len(unread) != 2 {
		t.Fatalf("expected 2 unread, got %d", len(unread))
	}

	count, err := svc.MarkAllRead(1)
	if err != nil || count != 2 {
		t.Fatalf("expected 2 marked, got %d (%v)", count, err)
	}
	unread, _ = svc.List(1, NotificationFilter{UnreadOnly: true})
	if len(unread) != 0 {
		t.Fatalf("expected none unread, got %d", len(unread))
	}

	if _, err := svc.MarkRead(2, ids[0]); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("expected ErrNotificationNotFound, got %v", err)
	}
	if err := svc.Delete(1, ids[1]); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
}
