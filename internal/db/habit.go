package db

import "gorm.io/gorm"

// Habit 定义了习惯模型
// Streak 为连续打卡天数，CompletedToday 标记当天是否已完成
// LastCompletedDate 以 YYYY-MM-DD 保存最近一次完成日期，从未完成时为 NULL
type Habit struct {
	gorm.Model
	UserID            uint    `gorm:"index;not null"`
	HabitName         string  `gorm:"size:255;not null"`
	Frequency         string  `gorm:"size:64;not null"`
	Streak            int     `gorm:"not null;default:0"`
	CompletedToday    bool    `gorm:"not null;default:false"`
	LastCompletedDate *string `gorm:"size:10"`
}
