package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/focusboard/internal/auth"
	"github.com/focusboard/internal/logger"
	"github.com/focusboard/internal/push"
	"github.com/focusboard/internal/service"
	"github.com/gin-gonic/gin"
)

const timestampLayout = time.RFC3339

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// bindOptionalJSON 与 bindJSON 相同，但空请求体视为空对象
func bindOptionalJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// currentUser 读取认证中间件写入的用户，缺失时直接返回 401
func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := auth.UserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Not authorized, no token")
		return 0, false
	}
	return userID, true
}

// handleServiceError 把服务层错误映射为 HTTP 状态码
// 校验错误直接返回服务层的提示，其余使用调用方给出的文案
func handleServiceError(c *gin.Context, err error, notFound, fallback string) {
	var inputErr *service.InputError
	switch {
	case errors.As(err, &inputErr):
		respondError(c, http.StatusBadRequest, inputErr.Message)
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, notFound)
	case errors.Is(err, service.ErrConflict):
		respondError(c, http.StatusConflict, "User already exists")
	case errors.Is(err, service.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrStoreUnavailable):
		logger.Error("store unavailable", "path", c.FullPath(), "err", err)
		respondError(c, http.StatusServiceUnavailable, fallback)
	default:
		logger.Error("request failed", "path", c.FullPath(), "err", err)
		respondError(c, http.StatusInternalServerError, fallback)
	}
}

// notify 在写操作成功后推送事件，失败只记录日志
func (a *API) notify(userID uint, kind, action, message string, data interface{}) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("push failed", "user", userID, "type", kind, "action", action, "panic", r)
		}
	}()
	a.publisher.Publish(userID, push.Event{
		Type:    kind,
		Action:  action,
		Message: message,
		Data:    data,
	})
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}

func optionalString(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
