package service

import (
	"context"
	"errors"
	"strings"

	"github.com/focusboard/internal/calendar"
	"github.com/focusboard/internal/db"
	"gorm.io/gorm"
)

const defaultTaskPriority = "medium"

var taskPriorities = map[string]struct{}{"low": {}, "medium": {}, "high": {}}

// TaskService 负责待办事项的增删改查
type TaskService struct {
	db *gorm.DB
}

// TaskInput 定义创建待办时可配置字段
type TaskInput struct {
	Title       string
	Description *string
	DueDate     *string
	Priority    string
}

// TaskUpdate 描述部分更新，nil 表示未提供
type TaskUpdate struct {
	Title       *string
	Description *string
	DueDate     *string
	Priority    *string
	Completed   *bool
}

// Empty 判断更新是否没有任何字段
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.DueDate == nil && u.Priority == nil && u.Completed == nil
}

// NewTaskService 构造 TaskService
func NewTaskService(gdb *gorm.DB) *TaskService {
	return &TaskService{db: gdb}
}

// WithContext 返回绑定请求上下文的副本
func (s *TaskService) WithContext(ctx context.Context) *TaskService {
	return &TaskService{db: s.db.WithContext(ctx)}
}

// Create 新建待办，优先级缺省为 medium
func (s *TaskService) Create(userID uint, input TaskInput) (*db.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, invalidInput("Title is required")
	}
	priority, err := normalizePriority(input.Priority)
	if err != nil {
		return nil, err
	}
	dueDate, err := optionalDay(input.DueDate, "Due date must be in YYYY-MM-DD format")
	if err != nil {
		return nil, err
	}

	task := db.Task{
		UserID:      userID,
		Title:       title,
		Description: trimmedOrNil(input.Description),
		DueDate:     dueDate,
		Priority:    priority,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, storeError("create task", err)
	}
	return &task, nil
}

// List 按创建时间倒序返回用户的待办
func (s *TaskService) List(userID uint) ([]db.Task, error) {
	var tasks []db.Task
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Order("id DESC").Find(&tasks).Error; err != nil {
		return nil, storeError("list tasks", err)
	}
	return tasks, nil
}

// Get 返回单个待办
func (s *TaskService) Get(userID, id uint) (*db.Task, error) {
	var task db.Task
	if err := s.db.Where("user_id = ?", userID).First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, storeError("get task", err)
	}
	return &task, nil
}

// Update 部分更新待办，返回更新后的记录以及 completed 是否由未完成变为完成
func (s *TaskService) Update(userID, id uint, input TaskUpdate) (task *db.Task, justCompleted bool, err error) {
	task, err = s.Get(userID, id)
	if err != nil {
		return nil, false, err
	}
	if input.Empty() {
		return task, false, nil
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, false, invalidInput("Title cannot be empty")
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = trimmedOrNil(input.Description)
	}
	if input.DueDate != nil {
		dueDate, err := optionalDay(input.DueDate, "Due date must be in YYYY-MM-DD format")
		if err != nil {
			return nil, false, err
		}
		task.DueDate = dueDate
	}
	if input.Priority != nil {
		priority, err := normalizePriority(*input.Priority)
		if err != nil {
			return nil, false, err
		}
		task.Priority = priority
	}
	if input.Completed != nil {
		justCompleted = *input.Completed && !task.Completed
		task.Completed = *input.Completed
	}

	if err := s.db.Save(task).Error; err != nil {
		return nil, false, storeError("update task", err)
	}
	return task, justCompleted, nil
}

// Delete 删除待办并返回被删除的记录，用于推送
func (s *TaskService) Delete(userID, id uint) (*db.Task, error) {
	task, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Delete(task).Error; err != nil {
		return nil, storeError("delete task", err)
	}
	return task, nil
}

func normalizePriority(raw string) (string, error) {
	priority := strings.ToLower(strings.TrimSpace(raw))
	if priority == "" {
		return defaultTaskPriority, nil
	}
	if _, ok := taskPriorities[priority]; !ok {
		return "", invalidInput("Priority must be one of low, medium, high")
	}
	return priority, nil
}

// trimmedOrNil 把空白字符串视为未填写
func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// optionalDay 校验可空的日期字段，空字符串表示清除
func optionalDay(value *string, message string) (*string, error) {
	trimmed := trimmedOrNil(value)
	if trimmed == nil {
		return nil, nil
	}
	day, err := calendar.Parse(*trimmed)
	if err != nil {
		return nil, invalidInput(message)
	}
	return day.Ptr(), nil
}
