package handler

import (
	"fmt"
	"net/http"

	"github.com/focusboard/internal/service"
	"github.com/gin-gonic/gin"
)

const eventNotFoundMessage = "Event not found"

type eventPayload struct {
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Description *string `json:"description"`
}

// ListEvents 返回全部日历事件
func (a *API) ListEvents(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	events, err := a.events.WithContext(c.Request.Context()).List(userID)
	if err != nil {
		handleServiceError(c, err, eventNotFoundMessage, "Failed to fetch events")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Events retrieved successfully", "events": mapPayloads(events, eventToPayload)})
}

// ListEventsByDate 返回某一天的事件
func (a *API) ListEventsByDate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	events, err := a.events.WithContext(c.Request.Context()).ListByDate(userID, c.Param("date"))
	if err != nil {
		handleServiceError(c, err, eventNotFoundMessage, "Failed to fetch events")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Events retrieved successfully", "events": mapPayloads(events, eventToPayload)})
}

// CreateEvent 创建事件
func (a *API) CreateEvent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var payload eventPayload
	if !bindJSON(c, &payload, "Title and date are required") {
		return
	}

	input := service.EventInput{Time: payload.Time, Description: payload.Description}
	if payload.Title != nil {
		input.Title = *payload.Title
	}
	if payload.Date != nil {
		input.Date = *payload.Date
	}

	event, err := a.events.WithContext(c.Request.Context()).Create(userID, input)
	if err != nil {
		handleServiceError(c, err, eventNotFoundMessage, "Failed to create event")
		return
	}

	body := eventToPayload(*event)
	a.notify(userID, "event", "created", fmt.Sprintf("New event created: %s", event.Title), body)
	c.JSON(http.StatusCreated, gin.H{"message": "Event created successfully", "event": body})
}

// UpdateEvent 部分更新事件
func (a *API) UpdateEvent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid event ID")
		return
	}

	var payload eventPayload
	if !bindJSON(c, &payload, "Invalid event payload") {
		return
	}

	event, err := a.events.WithContext(c.Request.Context()).Update(userID, id, service.EventUpdate{
		Title:       payload.Title,
		Date:        payload.Date,
		Time:        payload.Time,
		Description: payload.Description,
	})
	if err != nil {
		handleServiceError(c, err, eventNotFoundMessage, "Failed to update event")
		return
	}

	body := eventToPayload(*event)
	a.notify(userID, "event", "updated", fmt.Sprintf("Event updated: %s", event.Title), body)
	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully", "event": body})
}

// DeleteEvent 删除事件
func (a *API) DeleteEvent(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid event ID")
		return
	}

	event, err := a.events.WithContext(c.Request.Context()).Delete(userID, id)
	if err != nil {
		handleServiceError(c, err, eventNotFoundMessage, "Failed to delete event")
		return
	}

	a.notify(userID, "event", "deleted", fmt.Sprintf("Event deleted: %s", event.Title), gin.H{"id": event.ID, "title": event.Title})
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
