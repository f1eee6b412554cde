package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/focusboard/internal/service"
	"github.com/gin-gonic/gin"
)

const notificationNotFoundMessage = "Notification not found"

type notificationPayload struct {
	Type    string                 `json:"type"`
	Title   string                 `json:"title"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

// ListNotifications 返回通知列表，支持 ?limit= 与 ?unread_only=true
func (a *API) ListNotifications(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	filter := service.NotificationFilter{}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondError(c, http.StatusBadRequest, "Limit must be a positive number")
			return
		}
		filter.Limit = limit
	}
	filter.UnreadOnly = strings.EqualFold(c.Query("unread_only"), "true")

	notifications, err := a.notifications.WithContext(c.Request.Context()).List(userID, filter)
	if err != nil {
		handleServiceError(c, err, notificationNotFoundMessage, "Failed to retrieve notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "Notifications retrieved successfully",
		"notifications": mapPayloads(notifications, notificationToPayload),
	})
}

// CreateNotification 保存一条通知并实时推送
func (a *API) CreateNotification(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var payload notificationPayload
	if !bindJSON(c, &payload, "Title or message is required") {
		return
	}

	notification, err := a.notifications.WithContext(c.Request.Context()).Create(userID, service.NotificationInput{
		Type:    payload.Type,
		Title:   payload.Title,
		Message: payload.Message,
		Data:    payload.Data,
	})
	if err != nil {
		handleServiceError(c, err, notificationNotFoundMessage, "Failed to create notification")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Notification created successfully", "notification": notificationToPayload(*notification)})
}

// MarkNotificationRead 标记单条通知为已读
func (a *API) MarkNotificationRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	notification, err := a.notifications.WithContext(c.Request.Context()).MarkRead(userID, id)
	if err != nil {
		handleServiceError(c, err, notificationNotFoundMessage, "Failed to mark notification as read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read", "notification": notificationToPayload(*notification)})
}

// MarkAllNotificationsRead 标记全部通知为已读
func (a *API) MarkAllNotificationsRead(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	count, err := a.notifications.WithContext(c.Request.Context()).MarkAllRead(userID)
	if err != nil {
		handleServiceError(c, err, notificationNotFoundMessage, "Failed to mark all notifications as read")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read", "updated": count})
}

// DeleteNotification 删除通知
func (a *API) DeleteNotification(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid notification ID")
		return
	}

	if err := a.notifications.WithContext(c.Request.Context()).Delete(userID, id); err != nil {
		handleServiceError(c, err, notificationNotFoundMessage, "Failed to delete notification")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}
