package db

import "gorm.io/gorm"

// Task 表示用户待办事项，Priority 取值 low/medium/high
type Task struct {
	gorm.Model
	UserID      uint    `gorm:"index;not null"`
	Title       string  `gorm:"size:255;not null"`
	Description *string `gorm:"type:text"`
	DueDate     *string `gorm:"size:10"`
	Priority    string  `gorm:"size:16;not null;default:medium"`
	Completed   bool    `gorm:"not null;default:false"`
}
