package db

import (
	"time"

	"gorm.io/gorm"
)

// Event 表示日历事件，Date 为 YYYY-MM-DD，Time 为可选的 HH:MM
type Event struct {
	gorm.Model
	UserID      uint    `gorm:"index:idx_events_user_date;not null"`
	Title       string  `gorm:"size:255;not null"`
	Date        string  `gorm:"size:10;index:idx_events_user_date;not null"`
	Time        *string `gorm:"size:5"`
	Description *string `gorm:"type:text"`
}

// Notification 是持久化的站内通知，同时会通过实时通道推送
type Notification struct {
	gorm.Model
	UserID  uint                   `gorm:"index;not null"`
	Type    string                 `gorm:"size:32;not null"`
	Title   string                 `gorm:"size:255"`
	Message string                 `gorm:"type:text"`
	Data    map[string]interface{} `gorm:"type:text;serializer:json"`
	IsRead  bool                   `gorm:"not null;default:false;index"`
	ReadAt  *time.Time
}
