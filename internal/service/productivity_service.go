package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/focusboard/internal/calendar"
	"github.com/focusboard/internal/db"
	"github.com/focusboard/internal/metrics"
	"github.com/focusboard/internal/productivity"
	"gorm.io/gorm"
)

// maxWriteAttempts 为一次读改写在版本冲突时的最大尝试次数，每次都重新读取
const maxWriteAttempts = 3

var productivityColumns = []string{
	"completed_days",
	"daily_counts",
	"tasks_completed",
	"goals_completed",
	"total_goals",
	"focus_sessions",
	"unlocked_badges",
	"version",
	"updated_at",
}

// ProductivityService 持久化每个用户唯一的生产力记录
// 计算交给 productivity 包，写入使用 version 列做比较并交换
type ProductivityService struct {
	db *gorm.DB
}

// NewProductivityService 构造 ProductivityService
func NewProductivityService(gdb *gorm.DB) *ProductivityService {
	return &ProductivityService{db: gdb}
}

// WithContext 返回绑定请求上下文的副本
func (s *ProductivityService) WithContext(ctx context.Context) *ProductivityService {
	return &ProductivityService{db: s.db.WithContext(ctx)}
}

// Get 返回用户的生产力记录，未初始化时返回 ErrProductivityNotFound
func (s *ProductivityService) Get(userID uint) (*db.Productivity, error) {
	row, err := s.load(userID)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Initialize 幂等创建记录；已存在时原样返回，created 为 false
func (s *ProductivityService) Initialize(userID uint) (row *db.Productivity, created bool, err error) {
	existing, err := s.load(userID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrProductivityNotFound) {
		return nil, false, err
	}

	fresh := db.Productivity{UserID: userID}
	toRow(&fresh, productivity.New())
	if err := s.db.Create(&fresh).Error; err != nil {
		// 并发初始化时唯一索引冲突，以已有记录为准
		if existing, loadErr := s.load(userID); loadErr == nil {
			return existing, false, nil
		}
		return nil, false, storeError("initialize productivity", err)
	}
	metrics.ProductivityOps.WithLabelValues("initialize", "ok").Inc()
	return &fresh, true, nil
}

// CompleteTask 记录某日完成一个任务
func (s *ProductivityService) CompleteTask(userID uint, date string) (*db.Productivity, error) {
	day, err := parseTaskDate(date)
	if err != nil {
		return nil, err
	}
	return s.mutate(userID, "complete_task", func(r productivity.Record) (productivity.Record, error) {
		return r.CompleteTask(day), nil
	})
}

// UncompleteTask 撤销某日的一次任务完成
func (s *ProductivityService) UncompleteTask(userID uint, date string) (*db.Productivity, error) {
	day, err := parseTaskDate(date)
	if err != nil {
		return nil, err
	}
	return s.mutate(userID, "uncomplete_task", func(r productivity.Record) (productivity.Record, error) {
		return r.UncompleteTask(day), nil
	})
}

// CompleteGoal 累加已完成目标数
func (s *ProductivityService) CompleteGoal(userID uint) (*db.Productivity, error) {
	return s.mutate(userID, "complete_goal", func(r productivity.Record) (productivity.Record, error) {
		return r.CompleteGoal(), nil
	})
}

// CompleteFocusSession 累加专注次数
func (s *ProductivityService) CompleteFocusSession(userID uint) (*db.Productivity, error) {
	return s.mutate(userID, "complete_focus", func(r productivity.Record) (productivity.Record, error) {
		return r.CompleteFocusSession(), nil
	})
}

// SetTotalGoals 设置目标总数
func (s *ProductivityService) SetTotalGoals(userID uint, count int) (*db.Productivity, error) {
	if count < 0 {
		return nil, invalidInput("Count must be a non-negative number")
	}
	return s.mutate(userID, "set_total_goals", func(r productivity.Record) (productivity.Record, error) {
		next, err := r.SetTotalGoals(count)
		if err != nil {
			return r, invalidInput("Count must be a non-negative number")
		}
		return next, nil
	})
}

// UnlockBadge 解锁徽章，已解锁时不写库并返回 unlocked=false
func (s *ProductivityService) UnlockBadge(userID uint, badgeID string) (row *db.Productivity, unlocked bool, err error) {
	badgeID = strings.TrimSpace(badgeID)
	if badgeID == "" {
		return nil, false, invalidInput("Badge ID is required")
	}

	row, err = s.mutate(userID, "unlock_badge", func(r productivity.Record) (productivity.Record, error) {
		next, ok := r.UnlockBadge(badgeID)
		if !ok {
			return r, errBadgeAlreadyUnlocked
		}
		return next, nil
	})
	if errors.Is(err, errBadgeAlreadyUnlocked) {
		existing, loadErr := s.load(userID)
		if loadErr != nil {
			return nil, false, loadErr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return row, true, nil
}

// errBadgeAlreadyUnlocked 让 mutate 在无变化时跳过写入
var errBadgeAlreadyUnlocked = errors.New("badge already unlocked")

// mutate 执行读改写：读取当前记录、计算新状态、按版本号条件写回
// 版本冲突时重新读取再计算，超过 maxWriteAttempts 返回 ErrStoreUnavailable
func (s *ProductivityService) mutate(userID uint, op string, apply func(productivity.Record) (productivity.Record, error)) (*db.Productivity, error) {
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		row, err := s.load(userID)
		if err != nil {
			recordOp(op, err)
			return nil, err
		}

		next, err := apply(fromRow(*row))
		if err != nil {
			if !errors.Is(err, errBadgeAlreadyUnlocked) {
				recordOp(op, err)
			}
			return nil, err
		}

		expected := row.Version
		toRow(row, next)
		row.Version = expected + 1

		result := s.db.Model(row).Where("version = ?", expected).Select(productivityColumns).Updates(row)
		if result.Error != nil {
			err := storeError(strings.ReplaceAll(op, "_", " "), result.Error)
			recordOp(op, err)
			return nil, err
		}
		if result.RowsAffected == 1 {
			recordOp(op, nil)
			return row, nil
		}
		metrics.StoreConflicts.Inc()
	}

	err := fmt.Errorf("%s: version conflict after %d attempts: %w", strings.ReplaceAll(op, "_", " "), maxWriteAttempts, ErrStoreUnavailable)
	recordOp(op, err)
	return nil, err
}

func (s *ProductivityService) load(userID uint) (*db.Productivity, error) {
	var row db.Productivity
	if err := s.db.Where("user_id = ?", userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductivityNotFound
		}
		return nil, storeError("load productivity", err)
	}
	return &row, nil
}

func parseTaskDate(raw string) (calendar.Day, error) {
	if strings.TrimSpace(raw) == "" {
		return "", invalidInput("Date is required")
	}
	day, err := calendar.Parse(raw)
	if err != nil {
		return "", invalidInput("Date must be in YYYY-MM-DD format")
	}
	return day, nil
}

func fromRow(row db.Productivity) productivity.Record {
	r := productivity.Record{
		CompletedDays:  row.CompletedDays,
		DailyCounts:    row.DailyCounts,
		TasksCompleted: row.TasksCompleted,
		GoalsCompleted: row.GoalsCompleted,
		FocusSessions:  row.FocusSessions,
		TotalGoals:     row.TotalGoals,
		UnlockedBadges: row.UnlockedBadges,
	}
	if r.CompletedDays == nil {
		r.CompletedDays = []string{}
	}
	if r.DailyCounts == nil {
		r.DailyCounts = map[string]int{}
	}
	if r.UnlockedBadges == nil {
		r.UnlockedBadges = []string{}
	}
	return r
}

func toRow(row *db.Productivity, r productivity.Record) {
	row.CompletedDays = r.CompletedDays
	row.DailyCounts = r.DailyCounts
	row.TasksCompleted = r.TasksCompleted
	row.GoalsCompleted = r.GoalsCompleted
	row.FocusSessions = r.FocusSessions
	row.TotalGoals = r.TotalGoals
	row.UnlockedBadges = r.UnlockedBadges
}

func recordOp(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case errors.Is(err, ErrInvalidInput):
		result = "invalid"
	default:
		result = "error"
	}
	metrics.ProductivityOps.WithLabelValues(op, result).Inc()
}
