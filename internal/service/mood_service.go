package service

import (
	"context"
	"strings"

	"github.com/focusboard/internal/db"
	"gorm.io/gorm"
)

// MoodService 记录心情打点
type MoodService struct {
	db *gorm.DB
}

// NewMoodService 构造 MoodService
func NewMoodService(gdb *gorm.DB) *MoodService {
	return &MoodService{db: gdb}
}

// WithContext 返回绑定请求上下文的副本
func (s *MoodService) WithContext(ctx context.Context) *MoodService {
	return &MoodService{db: s.db.WithContext(ctx)}
}

// Log 记录一次心情
func (s *MoodService) Log(userID uint, mood string) (*db.MoodLog, error) {
	mood = strings.TrimSpace(mood)
	if mood == "" {
		return nil, invalidInput("Mood is required")
	}

	entry := db.MoodLog{UserID: userID, Mood: mood}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, storeError("log mood", err)
	}
	return &entry, nil
}

// List 按时间倒序返回心情记录
func (s *MoodService) List(userID uint) ([]db.MoodLog, error) {
	var logs []db.MoodLog
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&logs).Error; err != nil {
		return nil, storeError("list mood logs", err)
	}
	return logs, nil
}

// Delete 删除心情记录
func (s *MoodService) Delete(userID, id uint) error {
	result := s.db.Where("user_id = ?", userID).Delete(&db.MoodLog{}, id)
	if result.Error != nil {
		return storeError("delete mood log", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrMoodNotFound
	}
	return nil
}
