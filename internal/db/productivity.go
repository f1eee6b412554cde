package db

import "gorm.io/gorm"

// Productivity 是每个用户唯一的生产力汇总记录
// DailyCounts 只保存计数大于零的日期；Version 用于乐观并发控制，每次写入递增
type Productivity struct {
	gorm.Model
	UserID         uint           `gorm:"uniqueIndex;not null"`
	CompletedDays  []string       `gorm:"type:text;serializer:json"`
	DailyCounts    map[string]int `gorm:"type:text;serializer:json"`
	TasksCompleted int            `gorm:"not null;default:0"`
	GoalsCompleted int            `gorm:"not null;default:0"`
	TotalGoals     int            `gorm:"not null;default:0"`
	FocusSessions  int            `gorm:"not null;default:0"`
	UnlockedBadges []string       `gorm:"type:text;serializer:json"`
	Version        int            `gorm:"not null;default:0"`
}

// TableName 与既有数据表保持一致
func (Productivity) TableName() string {
	return "user_productivity"
}
