package handler

import (
	"github.com/focusboard/internal/db"
	"github.com/focusboard/internal/logger"
	"github.com/gin-gonic/gin"
)

func userToPayload(user db.User) gin.H {
	return gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	}
}

func habitToPayload(habit db.Habit) gin.H {
	return gin.H{
		"id":                  habit.ID,
		"user_id":             habit.UserID,
		"habit_name":          habit.HabitName,
		"frequency":           habit.Frequency,
		"streak":              habit.Streak,
		"completed_today":     habit.CompletedToday,
		"last_completed_date": optionalString(habit.LastCompletedDate),
		"created_at":          formatTime(habit.CreatedAt),
		"updated_at":          formatTime(habit.UpdatedAt),
	}
}

func productivityToPayload(row db.Productivity) gin.H {
	completedDays := row.CompletedDays
	if completedDays == nil {
		completedDays = []string{}
	}
	dailyCounts := row.DailyCounts
	if dailyCounts == nil {
		dailyCounts = map[string]int{}
	}
	badges := row.UnlockedBadges
	if badges == nil {
		badges = []string{}
	}

	return gin.H{
		"id":                row.ID,
		"user_id":           row.UserID,
		"completed_days":    completedDays,
		"productivity_data": dailyCounts,
		"tasks_completed":   row.TasksCompleted,
		"goals_completed":   row.GoalsCompleted,
		"total_goals":       row.TotalGoals,
		"focus_sessions":    row.FocusSessions,
		"unlocked_badges":   badges,
		"version":           row.Version,
		"created_at":        formatTime(row.CreatedAt),
		"updated_at":        formatTime(row.UpdatedAt),
	}
}

func taskToPayload(task db.Task) gin.H {
	return gin.H{
		"id":          task.ID,
		"user_id":     task.UserID,
		"title":       task.Title,
		"description": optionalString(task.Description),
		"due_date":    optionalString(task.DueDate),
		"priority":    task.Priority,
		"completed":   task.Completed,
		"created_at":  formatTime(task.CreatedAt),
		"updated_at":  formatTime(task.UpdatedAt),
	}
}

func goalToPayload(goal db.Goal) gin.H {
	return gin.H{
		"id":            goal.ID,
		"user_id":       goal.UserID,
		"title":         goal.Title,
		"target_value":  goal.TargetValue,
		"current_value": goal.CurrentValue,
		"deadline":      optionalString(goal.Deadline),
		"completed":     goal.Reached(),
		"created_at":    formatTime(goal.CreatedAt),
		"updated_at":    formatTime(goal.UpdatedAt),
	}
}

func journalToPayload(entry db.JournalEntry) gin.H {
	rendered, err := renderMarkdown(entry.Content)
	if err != nil {
		logger.Warn("render journal markdown failed", "entry", entry.ID, "err", err)
	}
	return gin.H{
		"id":           entry.ID,
		"user_id":      entry.UserID,
		"content":      entry.Content,
		"content_html": rendered,
		"mood":         optionalString(entry.Mood),
		"created_at":   formatTime(entry.CreatedAt),
		"updated_at":   formatTime(entry.UpdatedAt),
	}
}

func moodToPayload(log db.MoodLog) gin.H {
	return gin.H{
		"id":         log.ID,
		"user_id":    log.UserID,
		"mood":       log.Mood,
		"created_at": formatTime(log.CreatedAt),
	}
}

func eventToPayload(event db.Event) gin.H {
	return gin.H{
		"id":          event.ID,
		"user_id":     event.UserID,
		"title":       event.Title,
		"date":        event.Date,
		"time":        optionalString(event.Time),
		"description": optionalString(event.Description),
		"created_at":  formatTime(event.CreatedAt),
		"updated_at":  formatTime(event.UpdatedAt),
	}
}

func notificationToPayload(n db.Notification) gin.H {
	item := gin.H{
		"id":         n.ID,
		"user_id":    n.UserID,
		"type":       n.Type,
		"title":      n.Title,
		"message":    n.Message,
		"data":       n.Data,
		"is_read":    n.IsRead,
		"read_at":    nil,
		"created_at": formatTime(n.CreatedAt),
	}
	if n.ReadAt != nil {
		item["read_at"] = formatTime(*n.ReadAt)
	}
	return item
}

func mapPayloads[T any](items []T, fn func(T) gin.H) []gin.H {
	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
