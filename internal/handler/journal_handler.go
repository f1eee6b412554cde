package handler

import (
	"net/http"

	"github.com/focusboard/internal/service"
	"github.com/gin-gonic/gin"
)

const journalNotFoundMessage = "Journal entry not found or unauthorized"

type journalPayload struct {
	Content *string `json:"content"`
	Mood    *string `json:"mood"`
}

// CreateJournalEntry 新建日记
func (a *API) CreateJournalEntry(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var payload journalPayload
	if !bindJSON(c, &payload, "Content is required") {
		return
	}
	content := ""
	if payload.Content != nil {
		content = *payload.Content
	}

	entry, err := a.journal.WithContext(c.Request.Context()).Create(userID, content, payload.Mood)
	if err != nil {
		handleServiceError(c, err, journalNotFoundMessage, "Failed to create journal entry")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Journal entry created successfully", "entry": journalToPayload(*entry)})
}

// ListJournalEntries 返回日记列表，支持 ?mood= 过滤
func (a *API) ListJournalEntries(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	entries, err := a.journal.WithContext(c.Request.Context()).List(userID, c.Query("mood"))
	if err != nil {
		handleServiceError(c, err, journalNotFoundMessage, "Failed to fetch journal entries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(entries), "entries": mapPayloads(entries, journalToPayload)})
}

// UpdateJournalEntry 更新日记内容或心情
func (a *API) UpdateJournalEntry(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid journal entry ID")
		return
	}

	var payload journalPayload
	if !bindJSON(c, &payload, "At least one field (content or mood) is required to update") {
		return
	}

	entry, err := a.journal.WithContext(c.Request.Context()).Update(userID, id, service.JournalUpdate{Content: payload.Content, Mood: payload.Mood})
	if err != nil {
		handleServiceError(c, err, journalNotFoundMessage, "Failed to update journal entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Journal entry updated successfully", "entry": journalToPayload(*entry)})
}

// DeleteJournalEntry 删除日记
func (a *API) DeleteJournalEntry(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid journal entry ID")
		return
	}

	if err := a.journal.WithContext(c.Request.Context()).Delete(userID, id); err != nil {
		handleServiceError(c, err, journalNotFoundMessage, "Failed to delete journal entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Journal entry deleted successfully"})
}
