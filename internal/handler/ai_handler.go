package handler

import (
	"net/http"

	"github.com/focusboard/internal/service"
	"github.com/gin-gonic/gin"
)

type analyzePayload struct {
	Type string                 `json:"type"`
	Text string                 `json:"text"`
	Data map[string]interface{} `json:"data"`
}

// AnalyzeText 调用 AI 助手，未配置密钥时返回内置回复
func (a *API) AnalyzeText(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	var payload analyzePayload
	if !bindJSON(c, &payload, "Text or data input is required") {
		return
	}

	result, err := a.assistant.Analyze(c.Request.Context(), service.AnalyzeInput{
		Type: payload.Type,
		Text: payload.Text,
		Data: payload.Data,
	})
	if err != nil {
		handleServiceError(c, err, "Not found", "Internal server error")
		return
	}
	c.JSON(http.StatusOK, result)
}
