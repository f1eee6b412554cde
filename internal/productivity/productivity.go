// Package productivity 维护每个用户的生产力汇总：按日完成数、累计任务/目标/专注次数以及已解锁徽章。
package productivity

import (
	"errors"
	"slices"

	"github.com/focusboard/internal/calendar"
)

// ErrNegativeTotal 在设置的目标总数为负时返回
var ErrNegativeTotal = errors.New("total goals must be a non-negative number")

// Record 是单个用户的汇总状态，由调用方负责读取与持久化
type Record struct {
	CompletedDays  []string
	DailyCounts    map[string]int
	TasksCompleted int
	GoalsCompleted int
	FocusSessions  int
	TotalGoals     int
	UnlockedBadges []string
}

// New 返回计数为零、集合为空的记录
func New() Record {
	return Record{
		CompletedDays:  []string{},
		DailyCounts:    map[string]int{},
		UnlockedBadges: []string{},
	}
}

// Clone 深拷贝，避免调用方共享底层切片和 map
func (r Record) Clone() Record {
	out := r
	out.CompletedDays = slices.Clone(r.CompletedDays)
	if out.CompletedDays == nil {
		out.CompletedDays = []string{}
	}
	out.UnlockedBadges = slices.Clone(r.UnlockedBadges)
	if out.UnlockedBadges == nil {
		out.UnlockedBadges = []string{}
	}
	out.DailyCounts = make(map[string]int, len(r.DailyCounts))
	for day, count := range r.DailyCounts {
		out.DailyCounts[day] = count
	}
	return out
}

// CompleteTask 记录 day 当天完成了一项任务
func (r Record) CompleteTask(day calendar.Day) Record {
	next := r.Clone()
	key := day.String()
	if !slices.Contains(next.CompletedDays, key) {
		next.CompletedDays = append(next.CompletedDays, key)
	}
	next.DailyCounts[key]++
	next.TasksCompleted++
	return next
}

// UncompleteTask 撤销 day 当天的一次任务完成。
// 计数归零时删除该日期键；CompletedDays 保留，表示该日曾经有过活动。
func (r Record) UncompleteTask(day calendar.Day) Record {
	next := r.Clone()
	key := day.String()
	if count, ok := next.DailyCounts[key]; ok {
		count--
		if count <= 0 {
			delete(next.DailyCounts, key)
		} else {
			next.DailyCounts[key] = count
		}
	}
	next.TasksCompleted = max(0, next.TasksCompleted-1)
	return next
}

// CompleteGoal 累加已完成目标数
func (r Record) CompleteGoal() Record {
	next := r.Clone()
	next.GoalsCompleted++
	return next
}

// CompleteFocusSession 累加专注次数
func (r Record) CompleteFocusSession() Record {
	next := r.Clone()
	next.FocusSessions++
	return next
}

// SetTotalGoals 直接设置目标总数（非增量）
func (r Record) SetTotalGoals(count int) (Record, error) {
	if count < 0 {
		return r, ErrNegativeTotal
	}
	next := r.Clone()
	next.TotalGoals = count
	return next, nil
}

// UnlockBadge 解锁徽章；已解锁时不改变状态并返回 false
func (r Record) UnlockBadge(badgeID string) (Record, bool) {
	if slices.Contains(r.UnlockedBadges, badgeID) {
		return r, false
	}
	next := r.Clone()
	next.UnlockedBadges = append(next.UnlockedBadges, badgeID)
	return next, true
}

// HasBadge 判断徽章是否已解锁
func (r Record) HasBadge(badgeID string) bool {
	return slices.Contains(r.UnlockedBadges, badgeID)
}

// CountOn 返回某日完成数
func (r Record) CountOn(day calendar.Day) int {
	return r.DailyCounts[day.String()]
}
