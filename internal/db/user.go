package db

import "gorm.io/gorm"

// User 定义了用户模型，Password 保存 bcrypt 哈希
type User struct {
	gorm.Model
	Email    string `gorm:"size:255;uniqueIndex;not null"`
	Name     string `gorm:"size:255;not null"`
	Password string `gorm:"not null"`
}
