package db

import "gorm.io/gorm"

// JournalEntry 保存 Markdown 格式的日记正文
type JournalEntry struct {
	gorm.Model
	UserID  uint    `gorm:"index;not null"`
	Content string  `gorm:"type:text;not null"`
	Mood    *string `gorm:"size:64;index"`
}

// TableName 自定义表名
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// MoodLog 记录一次心情打点
type MoodLog struct {
	gorm.Model
	UserID uint   `gorm:"index;not null"`
	Mood   string `gorm:"size:64;not null"`
}

// TableName 自定义表名
func (MoodLog) TableName() string {
	return "mood_logs"
}
