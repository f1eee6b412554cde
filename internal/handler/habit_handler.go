package handler

import (
	"fmt"
	"net/http"

	"github.com/focusboard/internal/service"
	"github.com/gin-gonic/gin"
)

const habitNotFoundMessage = "Habit not found or unauthorized"

// habitPayload 中的指针字段用于区分"未提供"与零值
type habitPayload struct {
	HabitName      *string `json:"habit_name"`
	Frequency      *string `json:"frequency"`
	CompletedToday *bool   `json:"completed_today"`
	Streak         *int    `json:"streak"`
}

// CreateHabit 创建习惯
func (a *API) CreateHabit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var payload habitPayload
	if !bindJSON(c, &payload, "Habit name is required") {
		return
	}

	input := service.HabitInput{}
	if payload.HabitName != nil {
		input.HabitName = *payload.HabitName
	}
	if payload.Frequency != nil {
		input.Frequency = *payload.Frequency
	}

	habit, err := a.habits.WithContext(c.Request.Context()).Create(userID, input)
	if err != nil {
		handleServiceError(c, err, habitNotFoundMessage, "Failed to create habit")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Habit created successfully", "habit": habitToPayload(*habit)})
}

// ListHabits 返回习惯列表，返回前完成跨天检查
func (a *API) ListHabits(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	habits, err := a.habits.WithContext(c.Request.Context()).List(userID)
	if err != nil {
		handleServiceError(c, err, habitNotFoundMessage, "Failed to fetch habits")
		return
	}

	c.JSON(http.StatusOK, gin.H{"habits": mapPayloads(habits, habitToPayload), "count": len(habits)})
}

// UpdateHabit 更新习惯，completed_today 交给连胜引擎处理
func (a *API) UpdateHabit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid habit ID")
		return
	}

	var payload habitPayload
	if !bindOptionalJSON(c, &payload, "Invalid habit payload") {
		return
	}

	habit, err := a.habits.WithContext(c.Request.Context()).Update(userID, id, service.HabitUpdate{
		HabitName:      payload.HabitName,
		Frequency:      payload.Frequency,
		CompletedToday: payload.CompletedToday,
		Streak:         payload.Streak,
	})
	if err != nil {
		handleServiceError(c, err, habitNotFoundMessage, "Failed to update habit")
		return
	}

	body := habitToPayload(*habit)
	if payload.CompletedToday != nil && *payload.CompletedToday {
		a.notify(userID, "habit", "completed", fmt.Sprintf("Habit completed: %s (streak %d)", habit.HabitName, habit.Streak), body)
	} else {
		a.notify(userID, "habit", "updated", fmt.Sprintf("Habit updated: %s", habit.HabitName), body)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Habit updated successfully", "habit": body})
}

// DeleteHabit 删除习惯
func (a *API) DeleteHabit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid habit ID")
		return
	}

	if err := a.habits.WithContext(c.Request.Context()).Delete(userID, id); err != nil {
		handleServiceError(c, err, habitNotFoundMessage, "Failed to delete habit")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Habit deleted successfully"})
}
