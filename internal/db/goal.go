package db

import "gorm.io/gorm"

// Goal 表示一个可量化的目标，CurrentValue 达到 TargetValue 视为完成
type Goal struct {
	gorm.Model
	UserID       uint    `gorm:"index;not null"`
	Title        string  `gorm:"size:255;not null"`
	TargetValue  float64 `gorm:"not null"`
	CurrentValue float64 `gorm:"not null;default:0"`
	Deadline     *string `gorm:"size:10"`
}

// Reached 判断目标是否达成
func (g Goal) Reached() bool {
	return g.TargetValue > 0 && g.CurrentValue >= g.TargetValue
}
