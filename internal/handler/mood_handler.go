package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const moodNotFoundMessage = "Mood log not found or unauthorized"

// LogMood 记录一次心情
func (a *API) LogMood(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var payload struct {
		Mood string `json:"mood"`
	}
	if !bindJSON(c, &payload, "Mood is required") {
		return
	}

	entry, err := a.moods.WithContext(c.Request.Context()).Log(userID, payload.Mood)
	if err != nil {
		handleServiceError(c, err, moodNotFoundMessage, "Failed to log mood")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Mood logged successfully", "moodLog": moodToPayload(*entry)})
}

// ListMoods 返回心情记录
func (a *API) ListMoods(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	logs, err := a.moods.WithContext(c.Request.Context()).List(userID)
	if err != nil {
		handleServiceError(c, err, moodNotFoundMessage, "Failed to fetch mood logs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"moodLogs": mapPayloads(logs, moodToPayload), "count": len(logs)})
}

// DeleteMood 删除心情记录
func (a *API) DeleteMood(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid mood log ID")
		return
	}

	if err := a.moods.WithContext(c.Request.Context()).Delete(userID, id); err != nil {
		handleServiceError(c, err, moodNotFoundMessage, "Failed to delete mood log")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mood log deleted successfully"})
}
