package handler

import (
	"fmt"
	"net/http"

	"github.com/focusboard/internal/service"
	"github.com/gin-gonic/gin"
)

const goalNotFoundMessage = "Goal not found or unauthorized"

type goalPayload struct {
	Title        *string  `json:"title"`
	TargetValue  *float64 `json:"target_value"`
	CurrentValue *float64 `json:"current_value"`
	Deadline     *string  `json:"deadline"`
}

// CreateGoal 创建目标
func (a *API) CreateGoal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var payload goalPayload
	if !bindJSON(c, &payload, "Title is required") {
		return
	}

	input := service.GoalInput{
		TargetValue:  payload.TargetValue,
		CurrentValue: payload.CurrentValue,
		Deadline:     payload.Deadline,
	}
	if payload.Title != nil {
		input.Title = *payload.Title
	}

	goal, err := a.goals.WithContext(c.Request.Context()).Create(userID, input)
	if err != nil {
		handleServiceError(c, err, goalNotFoundMessage, "Failed to create goal")
		return
	}

	body := goalToPayload(*goal)
	a.notify(userID, "goal", "created", fmt.Sprintf("New goal created: %s", goal.Title), body)
	c.JSON(http.StatusCreated, gin.H{"message": "Goal created successfully", "goal": body})
}

// ListGoals 返回目标列表
func (a *API) ListGoals(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	goals, err := a.goals.WithContext(c.Request.Context()).List(userID)
	if err != nil {
		handleServiceError(c, err, goalNotFoundMessage, "Failed to fetch goals")
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": mapPayloads(goals, goalToPayload), "count": len(goals)})
}

// UpdateGoal 部分更新目标，首次达成时推送 completed
func (a *API) UpdateGoal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid goal ID")
		return
	}

	var payload goalPayload
	if !bindJSON(c, &payload, "Invalid goal payload") {
		return
	}

	goal, justReached, err := a.goals.WithContext(c.Request.Context()).Update(userID, id, service.GoalUpdate{
		Title:        payload.Title,
		TargetValue:  payload.TargetValue,
		CurrentValue: payload.CurrentValue,
		Deadline:     payload.Deadline,
	})
	if err != nil {
		handleServiceError(c, err, goalNotFoundMessage, "Failed to update goal")
		return
	}

	body := goalToPayload(*goal)
	if justReached {
		a.notify(userID, "goal", "completed", fmt.Sprintf("Goal completed: %s", goal.Title), body)
	} else {
		a.notify(userID, "goal", "updated", fmt.Sprintf("Goal updated: %s", goal.Title), body)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goal updated successfully", "goal": body})
}

// DeleteGoal 删除目标
func (a *API) DeleteGoal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid goal ID")
		return
	}

	goal, err := a.goals.WithContext(c.Request.Context()).Delete(userID, id)
	if err != nil {
		handleServiceError(c, err, goalNotFoundMessage, "Failed to delete goal")
		return
	}

	a.notify(userID, "goal", "deleted", fmt.Sprintf("Goal deleted: %s", goal.Title), gin.H{"id": goal.ID, "title": goal.Title})
	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}
