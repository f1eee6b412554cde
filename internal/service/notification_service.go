package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/focusboard/internal/db"
	"github.com/focusboard/internal/push"
	"gorm.io/gorm"
)

const (
	defaultNotificationLimit = 50
	maxNotificationLimit     = 200
)

// NotificationService 持久化站内通知，并通过实时通道推送新通知
type NotificationService struct {
	db        *gorm.DB
	publisher push.Publisher
	now       func() time.Time
}

// NotificationFilter 列表查询条件
type NotificationFilter struct {
	Limit      int
	UnreadOnly bool
}

// NotificationInput 新建通知
type NotificationInput struct {
	Type    string
	Title   string
	Message string
	Data    map[string]interface{}
}

// NewNotificationService 构造 NotificationService，publisher 为空时不推送
func NewNotificationService(gdb *gorm.DB, publisher push.Publisher) *NotificationService {
	if publisher == nil {
		publisher = push.Nop{}
	}
	return &NotificationService{db: gdb, publisher: publisher, now: time.Now}
}

// WithContext 返回绑定请求上下文的副本
func (s *NotificationService) WithContext(ctx context.Context) *NotificationService {
	return &NotificationService{db: s.db.WithContext(ctx), publisher: s.publisher, now: s.now}
}

// Create 保存通知并推送 new_notification 事件，推送失败不影响返回
func (s *NotificationService) Create(userID uint, input NotificationInput) (*db.Notification, error) {
	kind := strings.TrimSpace(input.Type)
	if kind == "" {
		kind = "info"
	}
	if strings.TrimSpace(input.Message) == "" && strings.TrimSpace(input.Title) == "" {
		return nil, invalidInput("Title or message is required")
	}

	notification := db.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   strings.TrimSpace(input.Title),
		Message: strings.TrimSpace(input.Message),
		Data:    input.Data,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return nil, storeError("create notification", err)
	}

	s.publisher.Publish(userID, push.Event{
		Type:    "notification",
		Action:  "new_notification",
		Message: notification.Message,
		Data: map[string]interface{}{
			"id":         notification.ID,
			"type":       notification.Type,
			"title":      notification.Title,
			"message":    notification.Message,
			"data":       notification.Data,
			"is_read":    notification.IsRead,
			"created_at": notification.CreatedAt.UTC().Format(time.RFC3339),
		},
	})
	return &notification, nil
}

// List 按时间倒序返回通知
func (s *NotificationService) List(userID uint, filter NotificationFilter) ([]db.Notification, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	if limit > maxNotificationLimit {
		limit = maxNotificationLimit
	}

	query := s.db.Where("user_id = ?", userID)
	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []db.Notification
	if err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, storeError("list notifications", err)
	}
	return notifications, nil
}

// MarkRead 标记单条通知为已读
func (s *NotificationService) MarkRead(userID, id uint) (*db.Notification, error) {
	var notification db.Notification
	if err := s.db.Where("user_id = ?", userID).First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, storeError("get notification", err)
	}

	if !notification.IsRead {
		readAt := s.now()
		notification.IsRead = true
		notification.ReadAt = &readAt
		if err := s.db.Model(&notification).Select("is_read", "read_at", "updated_at").Updates(&notification).Error; err != nil {
			return nil, storeError("mark notification read", err)
		}
	}
	return &notification, nil
}

// MarkAllRead 标记全部未读通知为已读，返回受影响条数
func (s *NotificationService) MarkAllRead(userID uint) (int64, error) {
	result := s.db.Model(&db.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": s.now()})
	if result.Error != nil {
		return 0, storeError("mark all notifications read", result.Error)
	}
	return result.RowsAffected, nil
}

// Delete 删除通知
func (s *NotificationService) Delete(userID, id uint) error {
	result := s.db.Where("user_id = ?", userID).Delete(&db.Notification{}, id)
	if result.Error != nil {
		return storeError("delete notification", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
