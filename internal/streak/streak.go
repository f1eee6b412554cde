// Package streak 维护习惯的"今日完成"标记与连续打卡天数。
//
// 所有跨天处理都在读取或写入时惰性计算，不依赖后台定时任务；
// "今天"由调用方传入，包内从不读取系统时钟。
package streak

import "github.com/focusboard/internal/calendar"

// State 是一个习惯中与连胜相关的字段
type State struct {
	Streak         int
	CompletedToday bool
	LastCompleted  calendar.Day
}

// Evaluate 在列表读取时执行跨天检查。
// 若上次完成日不是今天且标记仍为已完成，则清除标记；上次完成日也不是昨天时连胜归零。
// changed 为 true 表示结果需要落库。
func Evaluate(s State, today calendar.Day) (next State, changed bool) {
	if s.LastCompleted == today {
		return s, false
	}
	if !s.CompletedToday {
		return s, false
	}

	next = s
	if s.LastCompleted != today.Yesterday() {
		next.Streak = 0
	}
	next.CompletedToday = false
	return next, true
}

// SetCompletion 处理一次显式的完成/取消完成切换。
// 当天重复标记完成同样会累加连胜，与既有行为保持一致。
// override 非空时覆盖计算出的连胜值，用于手动修正。
func SetCompletion(s State, today calendar.Day, completed bool, override *int) State {
	next := s

	if completed {
		last := s.LastCompleted
		switch {
		case last.IsZero() || last == today:
			next.Streak = s.Streak + 1
		case last == today.Yesterday():
			next.Streak = s.Streak + 1
		default:
			next.Streak = 1
		}
		next.LastCompleted = today
	} else if s.LastCompleted == today {
		next.Streak = max(0, s.Streak-1)
	}

	next.CompletedToday = completed

	if override != nil {
		next.Streak = max(0, *override)
	}
	if next.Streak < 0 {
		next.Streak = 0
	}

	return next
}

// Override 仅应用手动修正的连胜值，不改变完成状态
func Override(s State, value int) State {
	s.Streak = max(0, value)
	return s
}
