package handler

import (
	"errors"
	"net/http"

	"github.com/focusboard/internal/db"
	"github.com/focusboard/internal/service"
	"github.com/gin-gonic/gin"
)

type taskDatePayload struct {
	Date string `json:"date"`
}

type totalGoalsPayload struct {
	Count *int `json:"count"`
}

type badgePayload struct {
	BadgeID string `json:"badgeId"`
}

// GetProductivity 返回当前用户的生产力记录
func (a *API) GetProductivity(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	row, err := a.productivity.WithContext(c.Request.Context()).Get(userID)
	if err != nil {
		a.handleProductivityError(c, err, "Failed to fetch productivity data")
		return
	}
	c.JSON(http.StatusOK, productivityToPayload(*row))
}

// InitializeProductivity 幂等创建生产力记录
func (a *API) InitializeProductivity(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	row, created, err := a.productivity.WithContext(c.Request.Context()).Initialize(userID)
	if err != nil {
		a.handleProductivityError(c, err, "Failed to initialize productivity tracking")
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "Productivity record already exists", "id": row.ID})
		return
	}

	body := productivityToPayload(*row)
	a.notify(userID, "productivity", "initialized", "Productivity tracking initialized", body)
	c.JSON(http.StatusCreated, gin.H{"message": "Productivity tracking initialized successfully", "productivity": body})
}

// CompleteTask 记录某日完成一个任务
func (a *API) CompleteTask(c *gin.Context) {
	a.mutateTaskDay(c, "task_completed", "Task completion recorded successfully", (*service.ProductivityService).CompleteTask)
}

// UncompleteTask 撤销某日的一次任务完成
func (a *API) UncompleteTask(c *gin.Context) {
	a.mutateTaskDay(c, "task_uncompleted", "Task uncompletion recorded successfully", (*service.ProductivityService).UncompleteTask)
}

func (a *API) mutateTaskDay(c *gin.Context, action, message string, op func(*service.ProductivityService, uint, string) (*db.Productivity, error)) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var payload taskDatePayload
	if !bindJSON(c, &payload, "Date is required") {
		return
	}

	row, err := op(a.productivity.WithContext(c.Request.Context()), userID, payload.Date)
	if err != nil {
		a.handleProductivityError(c, err, "Failed to update productivity data")
		return
	}
	a.respondProductivity(c, userID, action, message, row)
}

// CompleteGoal 累加已完成目标数
func (a *API) CompleteGoal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	row, err := a.productivity.WithContext(c.Request.Context()).CompleteGoal(userID)
	if err != nil {
		a.handleProductivityError(c, err, "Failed to update productivity data")
		return
	}
	a.respondProductivity(c, userID, "goal_completed", "Goal completion recorded successfully", row)
}

// CompleteFocusSession 累加专注次数
func (a *API) CompleteFocusSession(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	row, err := a.productivity.WithContext(c.Request.Context()).CompleteFocusSession(userID)
	if err != nil {
		a.handleProductivityError(c, err, "Failed to update productivity data")
		return
	}
	a.respondProductivity(c, userID, "focus_completed", "Focus session recorded successfully", row)
}

// UpdateTotalGoals 设置目标总数
func (a *API) UpdateTotalGoals(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var payload totalGoalsPayload
	if !bindJSON(c, &payload, "Count must be a non-negative number") {
		return
	}
	if payload.Count == nil {
		respondError(c, http.StatusBadRequest, "Count is required")
		return
	}

	row, err := a.productivity.WithContext(c.Request.Context()).SetTotalGoals(userID, *payload.Count)
	if err != nil {
		a.handleProductivityError(c, err, "Failed to update total goals")
		return
	}
	a.respondProductivity(c, userID, "total_goals_updated", "Total goals updated successfully", row)
}

// UnlockBadge 解锁徽章，重复解锁返回 200 与提示
func (a *API) UnlockBadge(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var payload badgePayload
	if !bindJSON(c, &payload, "Badge ID is required") {
		return
	}

	row, unlocked, err := a.productivity.WithContext(c.Request.Context()).UnlockBadge(userID, payload.BadgeID)
	if err != nil {
		a.handleProductivityError(c, err, "Failed to unlock badge")
		return
	}
	if !unlocked {
		c.JSON(http.StatusOK, gin.H{"message": "Badge already unlocked", "productivity": productivityToPayload(*row)})
		return
	}
	a.respondProductivity(c, userID, "badge_unlocked", "Badge unlocked successfully", row)
}

func (a *API) respondProductivity(c *gin.Context, userID uint, action, message string, row *db.Productivity) {
	body := productivityToPayload(*row)
	a.notify(userID, "productivity", action, message, body)
	c.JSON(http.StatusOK, gin.H{"message": message, "productivity": body})
}

// handleProductivityError 未初始化时附带提示
func (a *API) handleProductivityError(c *gin.Context, err error, fallback string) {
	if errors.Is(err, service.ErrProductivityNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Productivity record not found",
			"message": "Please initialize productivity tracking first",
		})
		return
	}
	handleServiceError(c, err, "Productivity record not found", fallback)
}
