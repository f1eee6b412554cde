package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/focusboard/internal/calendar"
	"github.com/focusboard/internal/db"
	"github.com/focusboard/internal/metrics"
	"github.com/focusboard/internal/streak"
	"gorm.io/gorm"
)

// habitStateColumns 是跨天检查和完成切换会改动的列
var habitStateColumns = []string{"streak", "completed_today", "last_completed_date", "updated_at"}

// HabitService 负责习惯的增删改查，并在读写时调用连胜引擎
// 所有查询都限定在 user_id 范围内，越权访问一律视为不存在
type HabitService struct {
	db  *gorm.DB
	now func() time.Time
	loc *time.Location
}

// HabitInput 定义创建习惯时的必填字段
type HabitInput struct {
	HabitName string
	Frequency string
}

// HabitUpdate 描述一次部分更新，nil 表示未提供
type HabitUpdate struct {
	HabitName      *string
	Frequency      *string
	CompletedToday *bool
	Streak         *int
}

// NewHabitService 构造 HabitService，默认按 UTC 计算"今天"
func NewHabitService(gdb *gorm.DB) *HabitService {
	return &HabitService{db: gdb, now: time.Now, loc: time.UTC}
}

// WithContext 返回绑定请求上下文的副本
func (s *HabitService) WithContext(ctx context.Context) *HabitService {
	return &HabitService{db: s.db.WithContext(ctx), now: s.now, loc: s.loc}
}

// SetClock 替换时钟与时区，主要用于测试与配置 TIMEZONE
func (s *HabitService) SetClock(now func() time.Time, loc *time.Location) {
	if now != nil {
		s.now = now
	}
	if loc != nil {
		s.loc = loc
	}
}

// Today 返回服务所在时区的当前日期
func (s *HabitService) Today() calendar.Day {
	return calendar.Today(s.now(), s.loc)
}

// Create 新建习惯，初始连胜为 0
func (s *HabitService) Create(userID uint, input HabitInput) (*db.Habit, error) {
	name := strings.TrimSpace(input.HabitName)
	if name == "" {
		return nil, invalidInput("Habit name is required")
	}
	frequency := strings.TrimSpace(input.Frequency)
	if frequency == "" {
		return nil, invalidInput("Frequency is required")
	}

	habit := db.Habit{
		UserID:    userID,
		HabitName: name,
		Frequency: frequency,
	}
	if err := s.db.Create(&habit).Error; err != nil {
		return nil, storeError("create habit", err)
	}
	return &habit, nil
}

// List 返回用户的全部习惯，逐个执行跨天检查并持久化有变化的记录
func (s *HabitService) List(userID uint) ([]db.Habit, error) {
	var habits []db.Habit
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&habits).Error; err != nil {
		return nil, storeError("list habits", err)
	}

	today := s.Today()
	for i := range habits {
		before := stateOf(habits[i])
		next, changed := streak.Evaluate(before, today)
		if !changed {
			continue
		}

		applyState(&habits[i], next)
		if err := s.db.Model(&habits[i]).Select(habitStateColumns).Updates(&habits[i]).Error; err != nil {
			return nil, storeError("roll over habit", err)
		}

		outcome := "kept"
		if next.Streak != before.Streak {
			outcome = "reset"
		}
		metrics.HabitRollovers.WithLabelValues(outcome).Inc()
	}

	return habits, nil
}

// Get 根据 ID 获取当前用户的习惯
func (s *HabitService) Get(userID, id uint) (*db.Habit, error) {
	var habit db.Habit
	if err := s.db.Where("user_id = ?", userID).First(&habit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHabitNotFound
		}
		return nil, storeError("get habit", err)
	}
	return &habit, nil
}

// Update 部分更新习惯
// 提供 CompletedToday 时交给连胜引擎计算；只提供 Streak 时直接覆盖
func (s *HabitService) Update(userID, id uint, input HabitUpdate) (*db.Habit, error) {
	if input.HabitName != nil && strings.TrimSpace(*input.HabitName) == "" {
		return nil, invalidInput("Habit name cannot be empty")
	}
	if input.Frequency != nil && strings.TrimSpace(*input.Frequency) == "" {
		return nil, invalidInput("Frequency cannot be empty")
	}

	habit, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if input.HabitName != nil {
		habit.HabitName = strings.TrimSpace(*input.HabitName)
	}
	if input.Frequency != nil {
		habit.Frequency = strings.TrimSpace(*input.Frequency)
	}

	switch {
	case input.CompletedToday != nil:
		applyState(habit, streak.SetCompletion(stateOf(*habit), s.Today(), *input.CompletedToday, input.Streak))
	case input.Streak != nil:
		applyState(habit, streak.Override(stateOf(*habit), *input.Streak))
	}

	if err := s.db.Save(habit).Error; err != nil {
		return nil, storeError("update habit", err)
	}
	return habit, nil
}

// Delete 删除习惯
func (s *HabitService) Delete(userID, id uint) error {
	result := s.db.Where("user_id = ?", userID).Delete(&db.Habit{}, id)
	if result.Error != nil {
		return storeError("delete habit", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrHabitNotFound
	}
	return nil
}

func stateOf(habit db.Habit) streak.State {
	return streak.State{
		Streak:         habit.Streak,
		CompletedToday: habit.CompletedToday,
		LastCompleted:  calendar.FromPtr(habit.LastCompletedDate),
	}
}

func applyState(habit *db.Habit, state streak.State) {
	habit.Streak = state.Streak
	habit.CompletedToday = state.CompletedToday
	habit.LastCompletedDate = state.LastCompleted.Ptr()
}
