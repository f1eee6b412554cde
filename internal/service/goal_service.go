package service

import (
	"context"
	"errors"
	"strings"

	"github.com/focusboard/internal/db"
	"gorm.io/gorm"
)

// GoalService 负责可量化目标的增删改查
type GoalService struct {
	db *gorm.DB
}

// GoalInput 定义创建目标时的字段，TargetValue 必填
type GoalInput struct {
	Title        string
	TargetValue  *float64
	CurrentValue *float64
	Deadline     *string
}

// GoalUpdate 描述部分更新
type GoalUpdate struct {
	Title        *string
	TargetValue  *float64
	CurrentValue *float64
	Deadline     *string
}

// NewGoalService 构造 GoalService
func NewGoalService(gdb *gorm.DB) *GoalService {
	return &GoalService{db: gdb}
}

// WithContext 返回绑定请求上下文的副本
func (s *GoalService) WithContext(ctx context.Context) *GoalService {
	return &GoalService{db: s.db.WithContext(ctx)}
}

// Create 新建目标
func (s *GoalService) Create(userID uint, input GoalInput) (*db.Goal, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, invalidInput("Title is required")
	}
	if input.TargetValue == nil {
		return nil, invalidInput("Target value is required")
	}
	if *input.TargetValue <= 0 {
		return nil, invalidInput("Target value must be positive")
	}
	deadline, err := optionalDay(input.Deadline, "Deadline must be in YYYY-MM-DD format")
	if err != nil {
		return nil, err
	}

	goal := db.Goal{
		UserID:      userID,
		Title:       title,
		TargetValue: *input.TargetValue,
		Deadline:    deadline,
	}
	if input.CurrentValue != nil {
		if *input.CurrentValue < 0 {
			return nil, invalidInput("Current value cannot be negative")
		}
		goal.CurrentValue = *input.CurrentValue
	}

	if err := s.db.Create(&goal).Error; err != nil {
		return nil, storeError("create goal", err)
	}
	return &goal, nil
}

// List 按创建时间倒序返回目标
func (s *GoalService) List(userID uint) ([]db.Goal, error) {
	var goals []db.Goal
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&goals).Error; err != nil {
		return nil, storeError("list goals", err)
	}
	return goals, nil
}

// Get 返回单个目标
func (s *GoalService) Get(userID, id uint) (*db.Goal, error) {
	var goal db.Goal
	if err := s.db.Where("user_id = ?", userID).First(&goal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, storeError("get goal", err)
	}
	return &goal, nil
}

// Update 部分更新目标，justReached 表示本次更新让目标首次达成
func (s *GoalService) Update(userID, id uint, input GoalUpdate) (goal *db.Goal, justReached bool, err error) {
	goal, err = s.Get(userID, id)
	if err != nil {
		return nil, false, err
	}
	wasReached := goal.Reached()

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, false, invalidInput("Title cannot be empty")
		}
		goal.Title = title
	}
	if input.TargetValue != nil {
		if *input.TargetValue <= 0 {
			return nil, false, invalidInput("Target value must be positive")
		}
		goal.TargetValue = *input.TargetValue
	}
	if input.CurrentValue != nil {
		if *input.CurrentValue < 0 {
			return nil, false, invalidInput("Current value cannot be negative")
		}
		goal.CurrentValue = *input.CurrentValue
	}
	if input.Deadline != nil {
		deadline, err := optionalDay(input.Deadline, "Deadline must be in YYYY-MM-DD format")
		if err != nil {
			return nil, false, err
		}
		goal.Deadline = deadline
	}

	if err := s.db.Save(goal).Error; err != nil {
		return nil, false, storeError("update goal", err)
	}
	return goal, !wasReached && goal.Reached(), nil
}

// Delete 删除目标并返回被删除的记录
func (s *GoalService) Delete(userID, id uint) (*db.Goal, error) {
	goal, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(goal).Error; err != nil {
		return nil, storeError("delete goal", err)
	}
	return goal, nil
}
