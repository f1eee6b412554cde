package service

import (
	"errors"
	"fmt"
)

// 基础错误分类，handler 通过 errors.Is 映射为 HTTP 状态码
var (
	// ErrNotFound 记录不存在或不属于当前用户
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput 缺少必填字段或取值非法，在任何写入前返回
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict 唯一约束冲突，例如邮箱已注册
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized 凭据错误
	ErrUnauthorized = errors.New("unauthorized")
	// ErrStoreUnavailable 存储读写失败，写路径上从不吞掉
	ErrStoreUnavailable = errors.New("store unavailable")
)

var (
	// ErrHabitNotFound 在指定习惯不存在时返回
	ErrHabitNotFound = fmt.Errorf("habit %w", ErrNotFound)
	// ErrProductivityNotFound 用户尚未初始化生产力记录
	ErrProductivityNotFound = fmt.Errorf("productivity record %w", ErrNotFound)
	// ErrTaskNotFound 待办不存在
	ErrTaskNotFound = fmt.Errorf("task %w", ErrNotFound)
	// ErrGoalNotFound 目标不存在
	ErrGoalNotFound = fmt.Errorf("goal %w", ErrNotFound)
	// ErrJournalNotFound 日记不存在
	ErrJournalNotFound = fmt.Errorf("journal entry %w", ErrNotFound)
	// ErrMoodNotFound 心情记录不存在
	ErrMoodNotFound = fmt.Errorf("mood log %w", ErrNotFound)
	// ErrEventNotFound 日历事件不存在
	ErrEventNotFound = fmt.Errorf("event %w", ErrNotFound)
	// ErrNotificationNotFound 通知不存在
	ErrNotificationNotFound = fmt.Errorf("notification %w", ErrNotFound)
	// ErrUserExists 邮箱已被注册
	ErrUserExists = fmt.Errorf("user already exists: %w", ErrConflict)
	// ErrInvalidCredentials 邮箱或密码错误
	ErrInvalidCredentials = fmt.Errorf("invalid email or password: %w", ErrUnauthorized)
)

// invalidInput 包装一条面向用户的校验错误
func invalidInput(message string) error {
	return &InputError{Message: message}
}

// InputError 携带可直接返回给客户端的提示
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// Unwrap 让 errors.Is(err, ErrInvalidInput) 成立
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// storeError 把底层存储错误归类为 ErrStoreUnavailable，同时保留原始信息
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
