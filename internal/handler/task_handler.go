package handler

import (
	"fmt"
	"net/http"

	"github.com/focusboard/internal/service"
	"github.com/gin-gonic/gin"
)

const taskNotFoundMessage = "Task not found or unauthorized"

type taskPayload struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date"`
	Priority    *string `json:"priority"`
	Completed   *bool   `json:"completed"`
}

// CreateTask 创建待办
func (a *API) CreateTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var payload taskPayload
	if !bindJSON(c, &payload, "Title is required") {
		return
	}

	input := service.TaskInput{Description: payload.Description, DueDate: payload.DueDate}
	if payload.Title != nil {
		input.Title = *payload.Title
	}
	if payload.Priority != nil {
		input.Priority = *payload.Priority
	}

	task, err := a.tasks.WithContext(c.Request.Context()).Create(userID, input)
	if err != nil {
		handleServiceError(c, err, taskNotFoundMessage, "Failed to create task")
		return
	}

	body := taskToPayload(*task)
	a.notify(userID, "task", "created", fmt.Sprintf("New task created: %s", task.Title), body)
	c.JSON(http.StatusCreated, gin.H{"message": "Task created successfully", "task": body})
}

// ListTasks 返回待办列表
func (a *API) ListTasks(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	tasks, err := a.tasks.WithContext(c.Request.Context()).List(userID)
	if err != nil {
		handleServiceError(c, err, taskNotFoundMessage, "Failed to fetch tasks")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": mapPayloads(tasks, taskToPayload), "count": len(tasks)})
}

// UpdateTask 部分更新待办
func (a *API) UpdateTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var payload taskPayload
	if !bindJSON(c, &payload, "Invalid task payload") {
		return
	}

	update := service.TaskUpdate{
		Title:       payload.Title,
		Description: payload.Description,
		DueDate:     payload.DueDate,
		Priority:    payload.Priority,
		Completed:   payload.Completed,
	}
	task, justCompleted, err := a.tasks.WithContext(c.Request.Context()).Update(userID, id, update)
	if err != nil {
		handleServiceError(c, err, taskNotFoundMessage, "Failed to update task")
		return
	}

	body := taskToPayload(*task)
	if update.Empty() {
		c.JSON(http.StatusOK, gin.H{"message": "No changes to update", "task": body})
		return
	}

	if justCompleted {
		a.notify(userID, "task", "completed", fmt.Sprintf("Task completed: %s", task.Title), body)
	} else {
		a.notify(userID, "task", "updated", fmt.Sprintf("Task updated: %s", task.Title), body)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully", "task": body})
}

// DeleteTask 删除待办
func (a *API) DeleteTask(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid task ID")
		return
	}

	task, err := a.tasks.WithContext(c.Request.Context()).Delete(userID, id)
	if err != nil {
		handleServiceError(c, err, taskNotFoundMessage, "Failed to delete task")
		return
	}

	a.notify(userID, "task", "deleted", fmt.Sprintf("Task deleted: %s", task.Title), gin.H{"id": task.ID, "title": task.Title})
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
