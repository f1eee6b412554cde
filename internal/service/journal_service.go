package service

import (
	"context"
	"errors"
	"strings"

	"github.com/focusboard/internal/db"
	"gorm.io/gorm"
)

// JournalService 负责日记的增删改查，正文以 Markdown 保存
type JournalService struct {
	db *gorm.DB
}

// JournalUpdate 描述部分更新，至少需要一个字段
type JournalUpdate struct {
	Content *string
	Mood    *string
}

// NewJournalService 构造 JournalService
func NewJournalService(gdb *gorm.DB) *JournalService {
	return &JournalService{db: gdb}
}

// WithContext 返回绑定请求上下文的副本
func (s *JournalService) WithContext(ctx context.Context) *JournalService {
	return &JournalService{db: s.db.WithContext(ctx)}
}

// Create 新建日记
func (s *JournalService) Create(userID uint, content string, mood *string) (*db.JournalEntry, error) {
	if strings.TrimSpace(content) == "" {
		return nil, invalidInput("Content is required")
	}

	entry := db.JournalEntry{
		UserID:  userID,
		Content: content,
		Mood:    trimmedOrNil(mood),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, storeError("create journal entry", err)
	}
	return &entry, nil
}

// List 按创建时间倒序返回日记，mood 非空时按心情过滤
func (s *JournalService) List(userID uint, mood string) ([]db.JournalEntry, error) {
	query := s.db.Where("user_id = ?", userID)
	if mood = strings.TrimSpace(mood); mood != "" {
		query = query.Where("mood = ?", mood)
	}

	var entries []db.JournalEntry
	if err := query.Order("created_at DESC").Order("id DESC").Find(&entries).Error; err != nil {
		return nil, storeError("list journal entries", err)
	}
	return entries, nil
}

// Update 更新日记内容或心情
func (s *JournalService) Update(userID, id uint, input JournalUpdate) (*db.JournalEntry, error) {
	if input.Content == nil && input.Mood == nil {
		return nil, invalidInput("At least one field (content or mood) is required to update")
	}
	if input.Content != nil && strings.TrimSpace(*input.Content) == "" {
		return nil, invalidInput("Content cannot be empty")
	}

	entry, err := s.get(userID, id)
	if err != nil {
		return nil, err
	}
	if input.Content != nil {
		entry.Content = *input.Content
	}
	if input.Mood != nil {
		entry.Mood = trimmedOrNil(input.Mood)
	}

	if err := s.db.Save(entry).Error; err != nil {
		return nil, storeError("update journal entry", err)
	}
	return entry, nil
}

// Delete 删除日记
func (s *JournalService) Delete(userID, id uint) error {
	result := s.db.Where("user_id = ?", userID).Delete(&db.JournalEntry{}, id)
	if result.Error != nil {
		return storeError("delete journal entry", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrJournalNotFound
	}
	return nil
}

func (s *JournalService) get(userID, id uint) (*db.JournalEntry, error) {
	var entry db.JournalEntry
	if err := s.db.Where("user_id = ?", userID).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJournalNotFound
		}
		return nil, storeError("get journal entry", err)
	}
	return &entry, nil
}
